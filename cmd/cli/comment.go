package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	CommentCommand.AddCommand(&CommentAddCommand)
	CommentCommand.AddCommand(&CommentListCommand)

	RootCmd.AddCommand(&CommentCommand)
}

var CommentCommand = cobra.Command{
	Use:   "comment",
	Short: "Comment on articles",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var CommentAddCommand = cobra.Command{
	Use:   "add <article-id> <text>",
	Short: "Comment on an article as the logged-in user",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		ctx := context.Background()

		// Make sure the article still exists before writing.
		if _, err := articleService.Get(ctx, args[0]); err != nil {
			logger.Fatal(err)
		}

		comment, err := commentService.Add(ctx, args[0], user, args[1])
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("commented as %s (id %s)", comment.Author, comment.ID)
	},
}

var CommentListCommand = cobra.Command{
	Use:   "list <article-id>",
	Short: "List the comments of an article, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, err := commentService.ByArticle(context.Background(), args[0])
		if err != nil {
			logger.Fatal(err)
		}

		for _, comment := range list {
			logger.Printf("%s  %s: %s", comment.CreatedAt.Format("2006-01-02 15:04"), comment.Author, comment.Text)
		}
		logger.Printf("%d comment(s)", len(list))
	},
}
