package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore runs migrations and opens a connection pool.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if err := RunMigrations(databaseURL); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Ping checks a pooled connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const userColumns = `id, username, email, role, password_hash, date_joined`

// CreateUser inserts a new user row and its default profile in one transaction.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if !models.ValidRole(user.Role) {
		return models.User{}, models.FieldError("role", "unknown role "+user.Role)
	}
	var created models.User
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (username, email, role, password_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			user.Username, user.Email, user.Role, user.PasswordHash)
		var err error
		if created, err = scanUser(row); err != nil {
			return err
		}
		profile := models.DefaultProfile(created.ID)
		_, err = tx.Exec(ctx, `
			INSERT INTO user_profiles (user_id, currency, budget_limit_notification)
			VALUES ($1, $2, $3)`,
			profile.UserID, profile.Currency, profile.BudgetLimitNotification)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// ListUsers returns all users, most recently joined first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY date_joined DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, scanUser)
}

// DeleteUser removes the user; foreign keys cascade to owned rows.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return execOne(ctx, s.pool, `DELETE FROM users WHERE id = $1`, id)
}

func (s *Store) TokenForUser(ctx context.Context, userID int64) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx, `SELECT token FROM auth_tokens WHERE user_id = $1`, userID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	return token, err
}

func (s *Store) SaveToken(ctx context.Context, userID int64, token string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO auth_tokens (user_id, token) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, created_at = NOW()`,
		userID, token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return storage.ErrNotFound
		}
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) DeleteToken(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}

// GetProfile returns the user's profile, creating the default row on first access.
func (s *Store) GetProfile(ctx context.Context, userID int64) (models.UserProfile, error) {
	def := models.DefaultProfile(userID)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profiles (user_id, currency, budget_limit_notification)
		SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM users WHERE id = $1)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, def.Currency, def.BudgetLimitNotification)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("ensure profile: %w", err)
	}
	p := models.UserProfile{UserID: userID}
	err = s.pool.QueryRow(ctx, `
		SELECT currency, budget_limit_notification FROM user_profiles WHERE user_id = $1`, userID).
		Scan(&p.Currency, &p.BudgetLimitNotification)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, storage.ErrNotFound
	}
	return p, err
}

func (s *Store) UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	err := execOne(ctx, s.pool, `
		UPDATE user_profiles SET currency = $2, budget_limit_notification = $3 WHERE user_id = $1`,
		p.UserID, p.Currency, p.BudgetLimitNotification)
	if err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.PasswordHash, &user.DateJoined); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db execer, sql string, args ...any) error {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
