package gin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/comments"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/inmem"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

type noopIndex struct{}

func (noopIndex) Index(*loup.Article) error                   { return nil }
func (noopIndex) Search(loup.ArticleSearch) ([]string, error) { return nil, nil }
func (noopIndex) Delete(string) error                         { return nil }

type testEnv struct {
	server   *Server
	accounts *users.Service
	store    *inmem.ArticleStore
	encoder  *jwt.EncodeDecoder
}

func newTestEnv() *testEnv {
	store := inmem.NewArticleStore()
	accounts := users.NewService(inmem.NewUserStore())
	encoder := jwt.NewEncodeDecoder([]byte("test-key"))

	articleService := articles.NewService(store, noopIndex{})
	commentService := comments.NewService(inmem.NewCommentStore())
	authenticator := &Authenticator{Encoder: encoder, Accounts: accounts}

	return &testEnv{
		server:   NewServer(articleService, commentService, authenticator),
		accounts: accounts,
		store:    store,
		encoder:  encoder,
	}
}

func (e *testEnv) signup(t *testing.T, email, pseudo string) (*loup.User, string) {
	t.Helper()
	user, err := e.accounts.Register(context.Background(), email, "password123", pseudo)
	require.NoError(t, err)
	token, err := e.encoder.Encode(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.server.ServeHTTP(w, req)
	return w
}

func TestArticleHandler_CreateRequiresAuth(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/articles", "", map[string]string{"title": "t"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArticleHandler_CreateAndGet(t *testing.T) {
	env := newTestEnv()
	_, token := env.signup(t, "wolf@creuse.fr", "WolfOfCreuse")

	w := env.do(t, http.MethodPost, "/api/articles", token, map[string]string{
		"title":    "La paille est le nouvel or",
		"content":  "Achetez avant la moisson.",
		"category": "Forex-Fermier",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Data loup.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "WolfOfCreuse", created.Data.Author)

	w = env.do(t, http.MethodGet, "/api/articles/"+created.Data.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/articles/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleHandler_ToggleLike(t *testing.T) {
	env := newTestEnv()
	user, token := env.signup(t, "karen@creuse.fr", "KarenCoin")

	env.store.Seed(loup.Article{ID: "a1", Likes: 5, LikedBy: []string{"u9"}})

	w := env.do(t, http.MethodPost, "/api/articles/a1/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data loup.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Data.Likes)
	assert.True(t, resp.Data.LikedByUser(user.ID))

	w = env.do(t, http.MethodPost, "/api/articles/a1/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Data.Likes)
	assert.False(t, resp.Data.LikedByUser(user.ID))

	w = env.do(t, http.MethodPost, "/api/articles/a1/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "liking needs an authenticated user")
}

func TestArticleHandler_DeleteOwnership(t *testing.T) {
	env := newTestEnv()
	owner, ownerToken := env.signup(t, "owner@creuse.fr", "Owner")
	_, otherToken := env.signup(t, "other@creuse.fr", "Other")

	env.store.Seed(loup.Article{ID: "a1", UserID: owner.ID, LikedBy: []string{}})

	w := env.do(t, http.MethodDelete, "/api/articles/a1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "only the owner or an admin may delete")

	w = env.do(t, http.MethodDelete, "/api/articles/a1", ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/articles/a1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler(t *testing.T) {
	env := newTestEnv()
	_, token := env.signup(t, "paille@creuse.fr", "PailleTrader")

	env.store.Seed(loup.Article{ID: "a1", LikedBy: []string{}})

	for i := 0; i < 3; i++ {
		w := env.do(t, http.MethodPost, "/api/articles/a1/comments", token, map[string]string{
			"text": fmt.Sprintf("commentaire %d", i),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := env.do(t, http.MethodGet, "/api/articles/a1/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []loup.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, "PailleTrader", resp.Data[0].Author)
}
