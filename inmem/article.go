package inmem

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

const (
	defaultMaxAttempts = 5
	baseBackoff        = 5 * time.Millisecond
)

type versionedArticle struct {
	article loup.Article
	version uint64
}

// ArticleStore is an in-memory article store with the same contract as
// the bolt one. ToggleLike runs a read-modify-CAS cycle with a bounded
// retry budget: a concurrent commit between the read and the write makes
// the attempt fail and the whole cycle is retried with backoff, until it
// commits or the budget is exhausted.
type ArticleStore struct {
	mu       sync.Mutex
	articles map[string]*versionedArticle

	maxAttempts int

	// beforeCommit runs between the read and the commit of a toggle
	// attempt. Tests use it to force version conflicts.
	beforeCommit func()
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles:    make(map[string]*versionedArticle),
		maxAttempts: defaultMaxAttempts,
	}
}

func (s *ArticleStore) Get(ctx context.Context, id string) (*loup.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.articles[id]
	if !ok {
		return nil, errArticleNotFound(id)
	}

	article := copyArticle(v.article)
	return &article, nil
}

func (s *ArticleStore) List(ctx context.Context) ([]*loup.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles := make([]*loup.Article, 0, len(s.articles))
	for _, v := range s.articles {
		article := copyArticle(v.article)
		articles = append(articles, &article)
	}
	return articles, nil
}

func (s *ArticleStore) Insert(ctx context.Context, article *loup.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	article.ID = uuid.NewString()
	article.Likes = 0
	article.LikedBy = []string{}
	article.CreatedAt = time.Now()

	s.articles[article.ID] = &versionedArticle{article: copyArticle(*article), version: 1}
	return nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.articles, id)
	return nil
}

func (s *ArticleStore) ByAuthor(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.scan(func(article *loup.Article) bool {
		return article.UserID == userID
	}), nil
}

func (s *ArticleStore) LikedBy(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.scan(func(article *loup.Article) bool {
		return article.LikedByUser(userID)
	}), nil
}

// Seed writes an article as-is, keeping its id and like state. It is
// meant for tests and fixtures.
func (s *ArticleStore) Seed(article loup.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles[article.ID] = &versionedArticle{article: copyArticle(article), version: 1}
}

func (s *ArticleStore) ToggleLike(ctx context.Context, articleID, userID string) (*loup.Article, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		article, version, err := s.snapshot(articleID)
		if err != nil {
			return nil, err
		}

		if article.LikedByUser(userID) {
			likedBy := make([]string, 0, len(article.LikedBy)-1)
			for _, id := range article.LikedBy {
				if id != userID {
					likedBy = append(likedBy, id)
				}
			}
			article.LikedBy = likedBy
			article.Likes--
		} else {
			article.LikedBy = append(article.LikedBy, userID)
			article.Likes++
		}

		if s.beforeCommit != nil {
			s.beforeCommit()
		}

		if s.commit(articleID, version, article) {
			returned := copyArticle(article)
			return &returned, nil
		}
	}

	return nil, errors.New(
		fmt.Sprintf("could not toggle like on article %s: too many conflicting writes", articleID),
		errors.Conflict(), errors.Retryable(),
	)
}

func (s *ArticleStore) snapshot(id string) (loup.Article, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.articles[id]
	if !ok {
		return loup.Article{}, 0, errArticleNotFound(id)
	}
	return copyArticle(v.article), v.version, nil
}

// commit writes the mutated article back if nobody else committed since
// the snapshot was taken. It reports whether the write happened.
func (s *ArticleStore) commit(id string, version uint64, article loup.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.articles[id]
	if !ok || v.version != version {
		return false
	}

	v.article = article
	v.version++
	return true
}

func (s *ArticleStore) scan(keep func(*loup.Article) bool) []*loup.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles := make([]*loup.Article, 0)
	for _, v := range s.articles {
		article := copyArticle(v.article)
		if keep(&article) {
			articles = append(articles, &article)
		}
	}
	return articles
}

func copyArticle(article loup.Article) loup.Article {
	likedBy := make([]string, len(article.LikedBy))
	copy(likedBy, article.LikedBy)
	article.LikedBy = likedBy
	return article
}

// sleepBackoff waits before the next toggle attempt: exponential backoff
// with jitter, interrupted by context cancellation.
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := baseBackoff << uint(attempt-1)
	delay += time.Duration(rand.Int63n(int64(delay)))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func errArticleNotFound(id string) error {
	return errors.New(fmt.Sprintf("No article for id %s", id), errors.NotFound())
}
