package session

import (
	"context"
	"sync"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

type State int

const (
	Initializing State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

// Manager holds the current user for the lifetime of the process. It is
// built once at startup and handed to whoever needs identity; there is
// no package-level instance.
//
// Lifecycle: Initializing until Restore has run, then Authenticated or
// Anonymous depending on the persisted session and on login/logout.
type Manager struct {
	accounts *users.Service
	store    loup.SessionStore

	mu      sync.RWMutex
	state   State
	current *loup.User
}

func NewManager(accounts *users.Service, store loup.SessionStore) *Manager {
	return &Manager{
		accounts: accounts,
		store:    store,
		state:    Initializing,
	}
}

// Restore reads the persisted user id and tries to load the account.
// An empty slot means Anonymous. A slot that cannot be resolved into an
// account, whether the account is gone or the lookup itself failed, is
// cleared and also means Anonymous: a stale id must not keep the manager
// stuck in Initializing.
func (m *Manager) Restore(ctx context.Context) error {
	id, err := m.store.Get()
	if err != nil {
		return err
	}

	if id == "" {
		m.become(Anonymous, nil)
		return nil
	}

	user, err := m.accounts.Get(ctx, id)
	if err != nil {
		user = nil
	}
	if user == nil {
		if err := m.store.Remove(); err != nil {
			return err
		}
		m.become(Anonymous, nil)
		return nil
	}

	m.become(Authenticated, user)
	return nil
}

// Login authenticates and persists the session. Repository failures are
// propagated untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*loup.User, error) {
	user, err := m.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(user.ID); err != nil {
		return nil, err
	}
	m.become(Authenticated, user)
	return user, nil
}

// Signup registers a new account and opens its session.
func (m *Manager) Signup(ctx context.Context, email, password, pseudo string) (*loup.User, error) {
	user, err := m.accounts.Register(ctx, email, password, pseudo)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(user.ID); err != nil {
		return nil, err
	}
	m.become(Authenticated, user)
	return user, nil
}

// Logout clears the persisted session.
func (m *Manager) Logout() error {
	if err := m.store.Remove(); err != nil {
		return err
	}
	m.become(Anonymous, nil)
	return nil
}

// Current returns the logged-in user, or nil.
func (m *Manager) Current() *loup.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.IsAdmin
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) become(state State, user *loup.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.current = user
}
