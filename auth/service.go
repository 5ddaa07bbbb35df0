package auth

import (
	"context"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

// Service wraps the account service with token handling for the HTTP
// surface: login and signup answer with a signed token, and Me resolves
// the token's user, which is how a returning browser silently restores
// its session.
type Service struct {
	accounts *users.Service
	encoder  *jwt.EncodeDecoder
}

func NewService(accounts *users.Service, encoder *jwt.EncodeDecoder) *Service {
	return &Service{
		accounts: accounts,
		encoder:  encoder,
	}
}

// Session is what the client holds on to after login or signup.
type Session struct {
	User  *loup.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	token, err := s.encoder.Encode(user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{User: user, Token: token}, nil
}

func (s *Service) Signup(ctx context.Context, email, password, pseudo string) (Session, error) {
	user, err := s.accounts.Register(ctx, email, password, pseudo)
	if err != nil {
		return Session{}, err
	}

	token, err := s.encoder.Encode(user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{User: user, Token: token}, nil
}

// Me returns the account for an already-verified user id. A dangling id
// from a deleted account gives a 401 so the client drops its token.
func (s *Service) Me(ctx context.Context, userID string) (*loup.User, error) {
	user, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUnknownUser(userID)
	}

	return user, nil
}
