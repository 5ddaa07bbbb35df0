package gin

import (
	"strings"

	"github.com/gin-gonic/gin"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

type ArticleHandler struct {
	Service       *articles.Service
	Authenticator *Authenticator
}

func (h *ArticleHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/articles", JSONFormatter(h.List))
	router.GET("/api/articles/:id", JSONFormatter(h.Get))
	router.POST("/api/articles", JSONFormatter(h.Authenticator.Authenticate(h.Create)))
	router.DELETE("/api/articles/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
	router.POST("/api/articles/:id/like", JSONFormatter(h.Authenticator.Authenticate(h.ToggleLike)))
}

// List answers the article listing. Optional query parameters narrow it
// down: q runs a search, author and likedBy filter on ownership and on
// like membership.
func (h *ArticleHandler) List(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()

	var (
		list []*loup.Article
		err  error
	)
	switch {
	case strings.TrimSpace(c.Query("q")) != "":
		list, err = h.Service.Search(ctx, loup.ArticleSearch{Q: c.Query("q")})
	case c.Query("author") != "":
		list, err = h.Service.ByAuthor(ctx, c.Query("author"))
	case c.Query("likedBy") != "":
		list, err = h.Service.LikedBy(ctx, c.Query("likedBy"))
	default:
		list, err = h.Service.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": list,
	}, nil
}

func (h *ArticleHandler) Get(c *gin.Context) (interface{}, error) {
	article, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": article,
	}, nil
}

func (h *ArticleHandler) Create(c *gin.Context) (interface{}, error) {
	user, err := GetUser(c)
	if err != nil {
		return nil, err
	}

	var body struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("could not read article", errors.BadRequest(), errors.WithCause(err))
	}

	article := loup.Article{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
		ImageURL: body.ImageURL,
	}
	created, err := h.Service.Create(c.Request.Context(), &article, user)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": created,
	}, nil
}

// Delete removes an article. Only the owner or an admin may do it; the
// check lives here, not in the repository.
func (h *ArticleHandler) Delete(c *gin.Context) (interface{}, error) {
	user, err := GetUser(c)
	if err != nil {
		return nil, err
	}

	ctx := c.Request.Context()
	article, err := h.Service.Get(ctx, c.Param("id"))
	if err != nil {
		return nil, err
	}

	if article.UserID != user.ID && !user.IsAdmin {
		return nil, errors.New("you cannot delete this article", errors.Forbidden())
	}

	if err := h.Service.Delete(ctx, article.ID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}

func (h *ArticleHandler) ToggleLike(c *gin.Context) (interface{}, error) {
	user, err := GetUser(c)
	if err != nil {
		return nil, err
	}

	article, err := h.Service.ToggleLike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": article,
	}, nil
}
