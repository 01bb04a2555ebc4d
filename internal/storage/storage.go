package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/models"
)

// ErrNotFound indicates a record does not exist, or is not visible to the caller.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations on identities.
type UserStore interface {
	// CreateUser inserts the user together with its default profile.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// DeleteUser removes the user and everything it owns.
	DeleteUser(ctx context.Context, id int64) error
}

// TokenStore keeps at most one bearer token per user.
type TokenStore interface {
	TokenForUser(ctx context.Context, userID int64) (string, error)
	SaveToken(ctx context.Context, userID int64, token string) error
	DeleteToken(ctx context.Context, userID int64) error
}

// ProfileStore reads and writes user preferences.
type ProfileStore interface {
	// GetProfile returns the profile, creating the default one if missing.
	GetProfile(ctx context.Context, userID int64) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)
}

// CategoryStore is scoped by owner on every call.
type CategoryStore interface {
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	GetCategory(ctx context.Context, userID, id int64) (models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, userID, id int64) error
}

// TransactionStore is scoped by owner on every call.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error)
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id int64) error
	// SumByType totals income and expense transactions dated in [from, to).
	SumByType(ctx context.Context, userID int64, from, to time.Time) (models.WeeklyTotals, error)
	// SumExpenses totals expense transactions dated in [from, to), limited to
	// one category when categoryID is non-nil.
	SumExpenses(ctx context.Context, userID int64, categoryID *int64, from, to time.Time) (models.Amount, error)
}

// BudgetStore is scoped by owner on every call.
type BudgetStore interface {
	ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error)
	GetBudget(ctx context.Context, userID, id int64) (models.Budget, error)
	CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, userID, id int64) error
	// ActiveBudgets returns budgets whose period contains day.
	ActiveBudgets(ctx context.Context, userID int64, day models.Date) ([]models.Budget, error)
}

// NotificationStore is scoped by owner on every call.
type NotificationStore interface {
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	GetNotification(ctx context.Context, userID, id int64) (models.Notification, error)
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) (models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Store is the full persistence surface used by the API and jobs.
type Store interface {
	UserStore
	TokenStore
	ProfileStore
	CategoryStore
	TransactionStore
	BudgetStore
	NotificationStore
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close()
}
