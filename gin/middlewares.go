package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

type HandlerFunc func(*gin.Context) (interface{}, error)

// JSONFormatter renders the handler's result, or its error with the
// status code the error carries. Retryable errors are flagged so the
// client can offer a retry instead of a dead end.
func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c)
		if err != nil {
			code := http.StatusInternalServerError
			if err, ok := err.(errors.Error); ok {
				code = err.Code()
			}

			body := map[string]interface{}{
				"message": err.Error(),
			}
			if errors.IsRetryable(err) {
				body["retryable"] = true
			}

			c.JSON(code, body)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// Authenticator loads the user identified by the bearer token into the
// gin context.
type Authenticator struct {
	Encoder  *jwt.EncodeDecoder
	Accounts *users.Service
}

func (a *Authenticator) Authenticate(next HandlerFunc) HandlerFunc {
	return func(c *gin.Context) (interface{}, error) {
		token := c.Request.Header.Get("Authorization")
		if len(token) <= 6 || strings.ToLower(token[:7]) != "bearer " {
			return nil, errors.New("no token found", errors.Unauthorized())
		}

		userID, err := a.Encoder.Decode(token[7:])
		if err != nil {
			return nil, errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
		}

		user, err := a.Accounts.Get(c.Request.Context(), userID)
		if err != nil {
			return nil, errors.New("could not get user", errors.WithCause(err))
		} else if user == nil {
			return nil, errors.New("unknown user", errors.Unauthorized())
		}

		c.Set("user", user)
		return next(c)
	}
}

// GetUser returns the user loaded by the Authenticator.
func GetUser(c *gin.Context) (*loup.User, error) {
	u, ok := c.Get("user")
	if !ok {
		return nil, errors.New("no user in context", errors.Unauthorized())
	}

	user, ok := u.(*loup.User)
	if !ok {
		return nil, errors.New("invalid user in context")
	}

	return user, nil
}
