package articles

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/inmem"
)

// fakeIndex records indexed articles and answers searches with a naive
// substring match, enough to test the service wiring.
type fakeIndex struct {
	docs map[string]string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]string)}
}

func (f *fakeIndex) Index(article *loup.Article) error {
	f.docs[article.ID] = strings.ToLower(article.Title + " " + article.Content)
	return nil
}

func (f *fakeIndex) Search(search loup.ArticleSearch) ([]string, error) {
	ids := make([]string, 0)
	for id, text := range f.docs {
		if strings.Contains(text, strings.ToLower(search.Q)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeIndex) Delete(id string) error {
	delete(f.docs, id)
	return nil
}

func newTestService() (*Service, *inmem.ArticleStore, *fakeIndex) {
	store := inmem.NewArticleStore()
	index := newFakeIndex()
	return NewService(store, index), store, index
}

func TestService_Create(t *testing.T) {
	service, _, index := newTestService()
	ctx := context.Background()

	author := &loup.User{ID: "u1", Pseudo: "AgriStonks"}
	article := &loup.Article{
		Title:    "Investir dans les chèvres",
		Content:  "Bonne ou mauvaise idée ?",
		Category: "NFT-Vache",
		ImageURL: "https://picsum.photos/seed/1/800/400",
	}

	created, err := service.Create(ctx, article, author)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID, "the owner id is stamped at creation")
	assert.Equal(t, "AgriStonks", created.Author, "the pseudo is denormalized at creation")
	assert.Equal(t, 0, created.Likes)
	assert.Empty(t, created.LikedBy)
	assert.Contains(t, index.docs, created.ID, "a created article is indexed")
}

func TestService_Create_Invalid(t *testing.T) {
	service, _, _ := newTestService()
	author := &loup.User{ID: "u1", Pseudo: "AgriStonks"}

	_, err := service.Create(context.Background(), &loup.Article{Title: " ", Content: "x", Category: "NFT-Vache"}, author)
	if assert.Error(t, err, "a blank title should be rejected") {
		errors.AssertCode(t, err, 400)
	}

	_, err = service.Create(context.Background(), &loup.Article{Title: "t", Content: "x", Category: "Crypto-Chaton"}, author)
	if assert.Error(t, err, "an unknown category should be rejected") {
		errors.AssertCode(t, err, 400)
	}
}

func TestService_Delete_RemovesFromIndex(t *testing.T) {
	service, _, index := newTestService()
	ctx := context.Background()

	author := &loup.User{ID: "u1", Pseudo: "AgriStonks"}
	created, err := service.Create(ctx, &loup.Article{Title: "t", Content: "c", Category: "NFT-Vache"}, author)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.NotContains(t, index.docs, created.ID)

	_, err = service.Get(ctx, created.ID)
	if assert.Error(t, err) {
		errors.AssertCode(t, err, 404)
	}
}

func TestService_Search_SkipsDeleted(t *testing.T) {
	service, store, _ := newTestService()
	ctx := context.Background()

	author := &loup.User{ID: "u1", Pseudo: "AgriStonks"}
	kept, err := service.Create(ctx, &loup.Article{Title: "la paille monte", Content: "c", Category: "Forex-Fermier"}, author)
	require.NoError(t, err)
	gone, err := service.Create(ctx, &loup.Article{Title: "la paille baisse", Content: "c", Category: "Forex-Fermier"}, author)
	require.NoError(t, err)

	// Delete behind the index's back: the index still has the doc.
	require.NoError(t, store.Delete(ctx, gone.ID))

	found, err := service.Search(ctx, loup.ArticleSearch{Q: "paille"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, kept.ID, found[0].ID)
}

func TestService_ToggleLike(t *testing.T) {
	service, store, _ := newTestService()
	ctx := context.Background()

	store.Seed(loup.Article{ID: "a1", Likes: 5, LikedBy: []string{"u9"}})

	article, err := service.ToggleLike(ctx, "a1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, article.Likes)
	assert.True(t, article.LikedByUser("u1"))

	article, err = service.ToggleLike(ctx, "a1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, article.Likes)
	assert.Equal(t, []string{"u9"}, article.LikedBy)
}
