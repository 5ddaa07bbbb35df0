package main

import (
	"context"

	"github.com/spf13/cobra"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

var (
	articleCategory string
	articleImageURL string
)

func init() {
	ArticleCreateCommand.Flags().StringVar(&articleCategory, "category", "Forex-Fermier", "")
	ArticleCreateCommand.Flags().StringVar(&articleImageURL, "image", "", "")

	ArticleCommand.AddCommand(&ArticleListCommand)
	ArticleCommand.AddCommand(&ArticleSearchCommand)
	ArticleCommand.AddCommand(&ArticleCreateCommand)
	ArticleCommand.AddCommand(&ArticleDeleteCommand)
	ArticleCommand.AddCommand(&ArticleLikeCommand)

	RootCmd.AddCommand(&ArticleCommand)
}

var ArticleCommand = cobra.Command{
	Use:   "article",
	Short: "Publish, browse, like and delete articles",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var ArticleListCommand = cobra.Command{
	Use:   "list",
	Short: "List all articles",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := articleService.List(context.Background())
		if err != nil {
			logger.Fatal(err)
		}
		printArticles(list)
	},
}

var ArticleSearchCommand = cobra.Command{
	Use:   "search <query>",
	Short: "Search articles by title, content or category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, err := articleService.Search(context.Background(), loup.ArticleSearch{Q: args[0]})
		if err != nil {
			logger.Fatal(err)
		}
		printArticles(list)
	},
}

var ArticleCreateCommand = cobra.Command{
	Use:   "create <title> <content>",
	Short: "Publish an article as the logged-in user",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()

		article := loup.Article{
			Title:    args[0],
			Content:  args[1],
			Category: articleCategory,
			ImageURL: articleImageURL,
		}
		created, err := articleService.Create(context.Background(), &article, user)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("published %s (id %s)", created.Title, created.ID)
	},
}

var ArticleDeleteCommand = cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an article you own",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		ctx := context.Background()

		article, err := articleService.Get(ctx, args[0])
		if err != nil {
			logger.Fatal(err)
		}
		if article.UserID != user.ID && !user.IsAdmin {
			logger.Fatal("you cannot delete this article")
		}

		if err := articleService.Delete(ctx, article.ID); err != nil {
			logger.Fatal(err)
		}
		logger.Print("deleted", article.ID)
	},
}

var ArticleLikeCommand = cobra.Command{
	Use:   "like <id>",
	Short: "Toggle your like on an article",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		ctx := context.Background()

		article, err := articleService.Get(ctx, args[0])
		if err != nil {
			logger.Fatal(err)
		}

		// The mirror flips immediately and rolls back if the store
		// refuses the toggle.
		mirror := articles.NewMirror(articleService, article)
		local, err := mirror.Toggle(ctx, user.ID)
		if err != nil {
			if errors.IsRetryable(err) {
				logger.Fatal("the article is busy, try again: ", err)
			}
			logger.Fatal(err)
		}

		if local.LikedByUser(user.ID) {
			logger.Printf("liked %s (%d likes)", local.Title, local.Likes)
		} else {
			logger.Printf("unliked %s (%d likes)", local.Title, local.Likes)
		}
	},
}

func requireUser() *loup.User {
	if err := sessionManager.Restore(context.Background()); err != nil {
		logger.Fatal("could not restore session:", err)
	}

	user := sessionManager.Current()
	if user == nil {
		logger.Fatal("you need to be logged in")
	}
	return user
}

func printArticles(list []*loup.Article) {
	for _, article := range list {
		logger.Printf("%s  [%s]  %s by %s (%d likes)", article.ID, article.Category, article.Title, article.Author, article.Likes)
	}
	logger.Printf("%d article(s)", len(list))
}
