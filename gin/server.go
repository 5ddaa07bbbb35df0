package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/comments"
)

// Server wraps a gin engine. The auth routes are mounted through
// RegisterHandler, which is the interface the go-kit transport expects.
type Server struct {
	router *gin.Engine
}

func NewServer(
	articleService *articles.Service,
	commentService *comments.Service,
	authenticator *Authenticator,
) *Server {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	articleHandler := ArticleHandler{Service: articleService, Authenticator: authenticator}
	articleHandler.RegisterRoutes(router)

	commentHandler := CommentHandler{Service: commentService, Authenticator: authenticator}
	commentHandler.RegisterRoutes(router)

	return &Server{router: router}
}

// RegisterHandler mounts a plain http.Handler, typically a go-kit server.
func (s *Server) RegisterHandler(path, method string, f http.Handler) {
	s.router.Handle(method, path, gin.WrapH(f))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
