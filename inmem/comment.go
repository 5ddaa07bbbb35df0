package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
)

type CommentStore struct {
	mu       sync.Mutex
	comments []loup.Comment
}

func NewCommentStore() *CommentStore {
	return &CommentStore{
		comments: make([]loup.Comment, 0),
	}
}

func (s *CommentStore) Insert(ctx context.Context, comment *loup.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()

	s.comments = append(s.comments, *comment)
	return nil
}

func (s *CommentStore) ByArticle(ctx context.Context, articleID string) ([]*loup.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := make([]*loup.Comment, 0)
	for i := range s.comments {
		if s.comments[i].ArticleID == articleID {
			comment := s.comments[i]
			comments = append(comments, &comment)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}
