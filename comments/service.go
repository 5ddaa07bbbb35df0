package comments

import (
	"context"
	"strings"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

type Service struct {
	store loup.CommentStore
}

func NewService(store loup.CommentStore) *Service {
	return &Service{
		store: store,
	}
}

// Add appends a comment to an article, denormalizing the author's pseudo
// and avatar. The store stamps the creation time.
func (s *Service) Add(ctx context.Context, articleID string, author *loup.User, text string) (*loup.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("a comment cannot be empty", errors.BadRequest())
	}

	comment := loup.Comment{
		ArticleID: articleID,
		Author:    author.Pseudo,
		Avatar:    author.Avatar,
		Text:      text,
	}
	if err := s.store.Insert(ctx, &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

// ByArticle returns the comments of an article, newest first.
func (s *Service) ByArticle(ctx context.Context, articleID string) ([]*loup.Comment, error) {
	return s.store.ByArticle(ctx, articleID)
}
