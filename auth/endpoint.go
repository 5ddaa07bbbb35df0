package auth

import (
	"context"

	"github.com/go-kit/kit/endpoint"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Pseudo   string `json:"pseudo"`
}

func makeLoginEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(loginRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Login(ctx, req.Email, req.Password)
	}
}

func makeSignupEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(signupRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		return s.Signup(ctx, req.Email, req.Password, req.Pseudo)
	}
}

func makeMeEndpoint(s *Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		userID, err := extractUserID(ctx)
		if err != nil {
			return nil, err
		}

		return s.Me(ctx, userID)
	}
}
