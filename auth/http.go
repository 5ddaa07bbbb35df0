package auth

import (
	"context"
	"encoding/json"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
)

// HTTPServer defines the interface to register the http handlers.
type HTTPServer interface {
	RegisterHandler(path, method string, f http.Handler)
}

// RegisterHTTPRoutes mounts the auth routes:
// signup and login answer with the user and a signed token,
// me resolves the token, which is how a client restores its session.
func RegisterHTTPRoutes(srv HTTPServer, service *Service, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	authenticationMiddleware := jwt.Middleware(jwtKey)

	loginHandler := kithttp.NewServer(
		makeLoginEndpoint(service),
		decodeLoginRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/login", "POST", loginHandler)

	signupHandler := kithttp.NewServer(
		makeSignupEndpoint(service),
		decodeSignupRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/signup", "POST", signupHandler)

	meHandler := kithttp.NewServer(
		authenticationMiddleware(makeMeEndpoint(service)),
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/me", "GET", meHandler)
}

func decodeLoginRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeSignupRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeMeRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}
