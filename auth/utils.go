package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
)

var (
	errInvalidRequest = errors.New("invalid request")
)

func errUnknownUser(id string) error {
	return errors.New(fmt.Sprintf("No user for id %s", id), errors.Unauthorized())
}

// extractUserID returns the user id present in the context, or an error
// if there is no user id or the claims are not correct.
func extractUserID(ctx context.Context) (string, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return "", errors.New("no user", errors.Unauthorized())
	}

	loupClaims, ok := claims.(*jwt.Claims)
	if !ok {
		return "", errors.New("invalid claims", errors.Forbidden())
	}

	return loupClaims.UserID, nil
}

// encodeError writes an error as an HTTP response. It handles the status
// code contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
