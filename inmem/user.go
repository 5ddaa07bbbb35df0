package inmem

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

type UserStore struct {
	mu    sync.Mutex
	users []loup.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make([]loup.User, 0),
	}
}

func (s *UserStore) Get(ctx context.Context, id string) (*loup.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetByEmailAndPassword(ctx context.Context, email, password string) (*loup.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for i := range s.users {
		if strings.ToLower(s.users[i].Email) == email && s.users[i].Password == password {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Insert(ctx context.Context, user *loup.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for i := range s.users {
		if strings.ToLower(s.users[i].Email) == email {
			return errors.New(fmt.Sprintf("email %s is already used", user.Email), errors.Conflict())
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()

	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]*loup.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*loup.User, 0, len(s.users))
	for i := range s.users {
		user := s.users[i]
		users = append(users, &user)
	}
	return users, nil
}

// SessionStore is a volatile single-slot session, for tests.
type SessionStore struct {
	mu sync.Mutex
	id string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *SessionStore) Set(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = userID
	return nil
}

func (s *SessionStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	return nil
}
