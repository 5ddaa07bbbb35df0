package articles

import (
	"context"
	"fmt"
	"strings"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

type Service struct {
	store loup.ArticleStore
	index loup.ArticleIndex
}

func NewService(store loup.ArticleStore, index loup.ArticleIndex) *Service {
	return &Service{
		store: store,
		index: index,
	}
}

func (s *Service) List(ctx context.Context) ([]*loup.Article, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*loup.Article, error) {
	return s.store.Get(ctx, id)
}

// Create publishes an article owned by author. The author's id and pseudo
// are stamped on the article; the pseudo is a denormalized copy, frozen
// at creation time.
func (s *Service) Create(ctx context.Context, article *loup.Article, author *loup.User) (*loup.Article, error) {
	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" || strings.TrimSpace(article.Content) == "" {
		return nil, errors.New("an article needs a title and a content", errors.BadRequest())
	}
	if !loup.ValidCategory(article.Category) {
		return nil, errors.New(fmt.Sprintf("unknown category %q", article.Category), errors.BadRequest())
	}

	article.UserID = author.ID
	article.Author = author.Pseudo

	if err := s.store.Insert(ctx, article); err != nil {
		return nil, err
	}

	if err := s.index.Index(article); err != nil {
		return nil, errors.New("article saved but could not be indexed", errors.WithCause(err))
	}
	return article, nil
}

// Delete removes an article. Authorization is the caller's concern: the
// handlers decide who may delete what.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	return s.index.Delete(id)
}

func (s *Service) ByAuthor(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.store.ByAuthor(ctx, userID)
}

func (s *Service) LikedBy(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.store.LikedBy(ctx, userID)
}

// ToggleLike flips the caller's like on an article. The store runs the
// whole read-modify-write as one transaction and retries conflicting
// writes itself, so this is a plain delegation.
func (s *Service) ToggleLike(ctx context.Context, articleID, userID string) (*loup.Article, error) {
	return s.store.ToggleLike(ctx, articleID, userID)
}

// Search resolves the index hits against the store. Articles deleted
// since they were indexed are skipped.
func (s *Service) Search(ctx context.Context, search loup.ArticleSearch) ([]*loup.Article, error) {
	ids, err := s.index.Search(search)
	if err != nil {
		return nil, err
	}

	articles := make([]*loup.Article, 0, len(ids))
	for _, id := range ids {
		article, err := s.store.Get(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}
