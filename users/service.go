package users

import (
	"context"
	"fmt"
	"strings"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

// avatarURL derives a deterministic avatar from the pseudo, the same URL
// scheme the existing accounts were created with.
const avatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s"

type Service struct {
	store loup.UserStore
}

func NewService(store loup.UserStore) *Service {
	return &Service{
		store: store,
	}
}

// Register creates an account. It fails with a 409 when the email is
// already used; the store guarantees the check and the insert happen in
// the same transaction.
func (s *Service) Register(ctx context.Context, email, password, pseudo string) (*loup.User, error) {
	email = strings.TrimSpace(email)
	pseudo = strings.TrimSpace(pseudo)

	if email == "" || password == "" || pseudo == "" {
		return nil, errors.New("email, password and pseudo are all required", errors.BadRequest())
	}

	user := loup.User{
		Email:    email,
		Password: password,
		Pseudo:   pseudo,
		Avatar:   fmt.Sprintf(avatarURL, pseudo),
		IsAdmin:  false,
	}

	if err := s.store.Insert(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate fails with a 401 when no account matches both the email
// and the password exactly.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*loup.User, error) {
	user, err := s.store.GetByEmailAndPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("incorrect email or password", errors.Unauthorized())
	}

	return user, nil
}

// Get returns nil, not an error, when there is no account for the id.
// Silent session restoration relies on this.
func (s *Service) Get(ctx context.Context, id string) (*loup.User, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*loup.User, error) {
	return s.store.List(ctx)
}
