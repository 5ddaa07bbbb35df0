package articles

import (
	"context"
	"sync"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
)

// Toggler is the authoritative side of a like toggle, typically the
// article service or a store.
type Toggler interface {
	ToggleLike(ctx context.Context, articleID, userID string) (*loup.Article, error)
}

// Mirror keeps a local copy of one article's like state so the interface
// can react before the store answers. Toggle flips the local copy first,
// using the same membership predicate as the store-side transaction,
// then runs the authoritative toggle; when that fails, the local flip is
// compensated and the error returned.
//
// Sharing the predicate matters: a second toggle fired while the first
// one is still in flight sees the already-flipped local state, decides
// the opposite direction, and both directions match what the serialized
// store transactions will decide.
type Mirror struct {
	toggler Toggler

	mu      sync.Mutex
	article loup.Article
}

func NewMirror(toggler Toggler, article *loup.Article) *Mirror {
	m := &Mirror{
		toggler: toggler,
	}
	m.article = copyArticle(*article)
	return m
}

// Article returns a snapshot of the local state.
func (m *Mirror) Article() loup.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyArticle(m.article)
}

// Toggle flips the like optimistically and then for real. The returned
// article is the local state after the flip, or after the compensation
// when the authoritative toggle failed.
func (m *Mirror) Toggle(ctx context.Context, userID string) (loup.Article, error) {
	added := m.flip(userID)

	_, err := m.toggler.ToggleLike(ctx, m.article.ID, userID)
	if err != nil {
		// Roll back exactly what the optimistic flip did. Blindly
		// re-flipping would be wrong if another toggle landed in
		// between.
		m.compensate(userID, added)
		return m.Article(), err
	}

	return m.Article(), nil
}

// flip applies the toggle to the local copy and reports whether the user
// was added (true) or removed (false).
func (m *Mirror) flip(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.article.LikedByUser(userID) {
		m.remove(userID)
		return false
	}
	m.add(userID)
	return true
}

func (m *Mirror) compensate(userID string, added bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if added {
		if m.article.LikedByUser(userID) {
			m.remove(userID)
		}
	} else {
		if !m.article.LikedByUser(userID) {
			m.add(userID)
		}
	}
}

// add and remove keep the count and the set in lockstep. Callers hold
// the lock.

func (m *Mirror) add(userID string) {
	m.article.LikedBy = append(m.article.LikedBy, userID)
	m.article.Likes++
}

func (m *Mirror) remove(userID string) {
	likedBy := make([]string, 0, len(m.article.LikedBy)-1)
	for _, id := range m.article.LikedBy {
		if id != userID {
			likedBy = append(likedBy, id)
		}
	}
	m.article.LikedBy = likedBy
	m.article.Likes--
}

func copyArticle(article loup.Article) loup.Article {
	likedBy := make([]string, len(article.LikedBy))
	copy(likedBy, article.LikedBy)
	article.LikedBy = likedBy
	return article
}
