// Package memory is an in-process storage backend. It keeps the same
// ownership and cascade rules as the Postgres store and is used for tests and
// local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	nextID int64

	users         map[int64]models.User
	tokens        map[int64]string
	profiles      map[int64]models.UserProfile
	categories    map[int64]models.Category
	transactions  map[int64]models.Transaction
	budgets       map[int64]models.Budget
	notifications map[int64]models.Notification

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:         map[int64]models.User{},
		tokens:        map[int64]string{},
		profiles:      map[int64]models.UserProfile{},
		categories:    map[int64]models.Category{},
		transactions:  map[int64]models.Transaction{},
		budgets:       map[int64]models.Budget{},
		notifications: map[int64]models.Notification{},
		now:           time.Now,
	}
}

// Close is a no-op.
func (s *Store) Close() {}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// CreateUser implements storage.UserStore.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.id()
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if !models.ValidRole(user.Role) {
		return models.User{}, models.FieldError("role", "unknown role "+user.Role)
	}
	user.DateJoined = s.now().UTC()
	s.users[user.ID] = user
	s.profiles[user.ID] = models.DefaultProfile(user.ID)
	return user, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

// ListUsers returns users newest first.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateJoined.Equal(out[j].DateJoined) {
			return out[i].DateJoined.After(out[j].DateJoined)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteUser removes the user and cascades to everything it owns.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	delete(s.tokens, id)
	delete(s.profiles, id)
	for k, v := range s.categories {
		if v.UserID == id {
			delete(s.categories, k)
		}
	}
	for k, v := range s.transactions {
		if v.UserID == id {
			delete(s.transactions, k)
		}
	}
	for k, v := range s.budgets {
		if v.UserID == id {
			delete(s.budgets, k)
		}
	}
	for k, v := range s.notifications {
		if v.UserID == id {
			delete(s.notifications, k)
		}
	}
	return nil
}

func (s *Store) TokenForUser(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[userID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return tok, nil
}

func (s *Store) SaveToken(_ context.Context, userID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return storage.ErrNotFound
	}
	s.tokens[userID] = token
	return nil
}

func (s *Store) DeleteToken(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID int64) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return models.UserProfile{}, storage.ErrNotFound
	}
	p, ok := s.profiles[userID]
	if !ok {
		p = models.DefaultProfile(userID)
		s.profiles[userID] = p
	}
	return p, nil
}

func (s *Store) UpdateProfile(_ context.Context, profile models.UserProfile) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[profile.UserID]; !ok {
		return models.UserProfile{}, storage.ErrNotFound
	}
	s.profiles[profile.UserID] = profile
	return profile, nil
}
