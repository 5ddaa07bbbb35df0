package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/comments"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

type CommentHandler struct {
	Service       *comments.Service
	Authenticator *Authenticator
}

func (h *CommentHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/articles/:id/comments", JSONFormatter(h.List))
	router.POST("/api/articles/:id/comments", JSONFormatter(h.Authenticator.Authenticate(h.Add)))
}

func (h *CommentHandler) List(c *gin.Context) (interface{}, error) {
	list, err := h.Service.ByArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": list,
	}, nil
}

func (h *CommentHandler) Add(c *gin.Context) (interface{}, error) {
	user, err := GetUser(c)
	if err != nil {
		return nil, err
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("could not read comment", errors.BadRequest(), errors.WithCause(err))
	}

	comment, err := h.Service.Add(c.Request.Context(), c.Param("id"), user, body.Text)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": comment,
	}, nil
}
