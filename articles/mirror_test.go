package articles

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/inmem"
)

// blockingToggler delays then delegates, or fails, on demand. It stands
// in for a slow or flaky document store.
type blockingToggler struct {
	delegate Toggler
	release  chan struct{}
	fail     error
}

func (b *blockingToggler) ToggleLike(ctx context.Context, articleID, userID string) (*loup.Article, error) {
	if b.release != nil {
		<-b.release
	}
	if b.fail != nil {
		return nil, b.fail
	}
	return b.delegate.ToggleLike(ctx, articleID, userID)
}

func seededStore() *inmem.ArticleStore {
	store := inmem.NewArticleStore()
	store.Seed(loup.Article{ID: "a1", Likes: 5, LikedBy: []string{"u9"}})
	return store
}

func TestMirror_OptimisticFlipIsImmediate(t *testing.T) {
	store := seededStore()
	release := make(chan struct{})
	toggler := &blockingToggler{delegate: store, release: release}

	article, _ := store.Get(context.Background(), "a1")
	mirror := NewMirror(toggler, article)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := mirror.Toggle(context.Background(), "u1")
		assert.NoError(t, err)
	}()

	// The local state flips before the store answers.
	waitFor(t, func() bool {
		local := mirror.Article()
		return local.Likes == 6 && local.LikedByUser("u1")
	})

	close(release)
	<-done

	stored, err := store.Get(context.Background(), "a1")
	require.NoError(t, err)
	local := mirror.Article()
	assert.Equal(t, stored.Likes, local.Likes, "local and stored state agree once settled")
	assert.Equal(t, stored.LikedByUser("u1"), local.LikedByUser("u1"))
}

func TestMirror_RollbackOnFailure(t *testing.T) {
	store := seededStore()
	failure := errors.New("could not toggle like: too many conflicting writes", errors.Conflict(), errors.Retryable())
	toggler := &blockingToggler{delegate: store, fail: failure}

	article, _ := store.Get(context.Background(), "a1")
	mirror := NewMirror(toggler, article)

	local, err := mirror.Toggle(context.Background(), "u1")
	require.Error(t, err, "the failure must be surfaced, not swallowed")
	assert.True(t, errors.IsRetryable(err))

	// The optimistic flip is compensated.
	assert.Equal(t, 5, local.Likes)
	assert.False(t, local.LikedByUser("u1"))
	assert.True(t, local.LikedByUser("u9"))

	stored, err := store.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Likes, "the store was never touched")
}

func TestMirror_DoubleClickDoesNotDiverge(t *testing.T) {
	store := seededStore()
	release := make(chan struct{})
	toggler := &blockingToggler{delegate: store, release: release}

	article, _ := store.Get(context.Background(), "a1")
	mirror := NewMirror(toggler, article)

	// Two rapid toggles; the first is still in flight when the second
	// fires. The second one sees the flipped local state and goes the
	// other way, like the serialized store transactions will.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := mirror.Toggle(context.Background(), "u1")
		assert.NoError(t, err)
	}()

	// First optimistic flip lands while the store call hangs.
	waitFor(t, func() bool {
		return mirror.Article().Likes == 6
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := mirror.Toggle(context.Background(), "u1")
		assert.NoError(t, err)
	}()

	// Second flip goes the other way before anything committed.
	waitFor(t, func() bool {
		local := mirror.Article()
		return local.Likes == 5 && !local.LikedByUser("u1")
	})

	close(release)
	wg.Wait()

	stored, err := store.Get(context.Background(), "a1")
	require.NoError(t, err)
	local := mirror.Article()

	assert.Equal(t, 5, stored.Likes, "an even number of toggles returns to the original state")
	assert.Equal(t, []string{"u9"}, stored.LikedBy)
	assert.Equal(t, stored.Likes, local.Likes)
	assert.Equal(t, stored.LikedByUser("u1"), local.LikedByUser("u1"))
}

func TestMirror_ParityAgainstStore(t *testing.T) {
	store := seededStore()

	article, _ := store.Get(context.Background(), "a1")
	mirror := NewMirror(store, article)

	for i := 1; i <= 8; i++ {
		local, err := mirror.Toggle(context.Background(), "u1")
		require.NoError(t, err)

		stored, err := store.Get(context.Background(), "a1")
		require.NoError(t, err)

		assert.Equal(t, stored.Likes, local.Likes, "after toggle %d", i)
		assert.Equal(t, stored.LikedByUser("u1"), local.LikedByUser("u1"), "after toggle %d", i)
		assert.Equal(t, stored.Likes, len(stored.LikedBy), "count matches set size after toggle %d", i)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never met")
}
