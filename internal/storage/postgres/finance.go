package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, user_id, name, type`

func (s *Store) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY lower(name), id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collect(rows, scanCategory)
}

func (s *Store) GetCategory(ctx context.Context, userID, id int64) (models.Category, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	return scanCategory(row)
}

func (s *Store) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3)
		RETURNING `+categoryColumns, c.UserID, c.Name, string(c.Type))
	return scanCategory(row)
}

func (s *Store) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE categories SET name = $3, type = $4 WHERE id = $1 AND user_id = $2
		RETURNING `+categoryColumns, c.ID, c.UserID, c.Name, string(c.Type))
	return scanCategory(row)
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id int64) error {
	return execOne(ctx, s.pool, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	var typ string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &typ); err != nil {
		return models.Category{}, notFound(err)
	}
	c.Type = models.CategoryType(typ)
	return c, nil
}

const transactionColumns = `t.id, t.user_id, t.category_id, t.amount::text, t.date, t.description, t.is_recurring, t.recurrence_period`

// ListTransactions applies the filter in SQL, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	where := []string{"t.user_id = $1"}
	args := []any{userID}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where = append(where, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where = append(where, fmt.Sprintf("t.date < $%d", len(args)))
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions t
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY t.date DESC, t.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return collect(rows, scanTransaction)
}

func (s *Store) GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions t WHERE t.id = $1 AND t.user_id = $2`, id, userID)
	return scanTransaction(row)
}

// CreateTransaction inserts only when the category belongs to the same user.
func (s *Store) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		WITH t AS (
			INSERT INTO transactions (user_id, category_id, amount, date, description, is_recurring, recurrence_period)
			SELECT $1, c.id, $3::numeric, $4, $5, $6, $7
			FROM categories c WHERE c.id = $2 AND c.user_id = $1
			RETURNING *
		)
		SELECT `+transactionColumns+` FROM t`,
		t.UserID, t.CategoryID, t.Amount.String(), t.Date, t.Description, t.IsRecurring, periodArg(t.RecurrencePeriod))
	return scanTransaction(row)
}

// UpdateTransaction never touches the server-assigned date.
func (s *Store) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE transactions t
		SET category_id = $3, amount = $4::numeric, description = $5, is_recurring = $6, recurrence_period = $7
		WHERE t.id = $1 AND t.user_id = $2
		  AND EXISTS (SELECT 1 FROM categories c WHERE c.id = $3 AND c.user_id = $2)
		RETURNING `+transactionColumns,
		t.ID, t.UserID, t.CategoryID, t.Amount.String(), t.Description, t.IsRecurring, periodArg(t.RecurrencePeriod))
	return scanTransaction(row)
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return execOne(ctx, s.pool, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
}

// SumByType aggregates income and expense in a single query; missing data sums to zero.
func (s *Store) SumByType(ctx context.Context, userID int64, from, to time.Time) (models.WeeklyTotals, error) {
	var income, expense string
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'income'), 0)::text,
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'expense'), 0)::text
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date < $3`, userID, from, to).Scan(&income, &expense)
	if err != nil {
		return models.WeeklyTotals{}, fmt.Errorf("sum transactions: %w", err)
	}
	var totals models.WeeklyTotals
	if totals.Income, err = models.NewAmount(income); err != nil {
		return models.WeeklyTotals{}, err
	}
	if totals.Expense, err = models.NewAmount(expense); err != nil {
		return models.WeeklyTotals{}, err
	}
	return totals, nil
}

func (s *Store) SumExpenses(ctx context.Context, userID int64, categoryID *int64, from, to time.Time) (models.Amount, error) {
	var total string
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(t.amount), 0)::text
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND c.type = 'expense'
		  AND ($2::bigint IS NULL OR t.category_id = $2)
		  AND t.date >= $3 AND t.date < $4`, userID, categoryID, from, to).Scan(&total)
	if err != nil {
		return models.Amount{}, fmt.Errorf("sum expenses: %w", err)
	}
	return models.NewAmount(total)
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	var amount string
	var period *string
	if err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &amount, &t.Date, &t.Description, &t.IsRecurring, &period); err != nil {
		return models.Transaction{}, notFound(err)
	}
	var err error
	if t.Amount, err = models.NewAmount(amount); err != nil {
		return models.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if period != nil {
		p := models.RecurrencePeriod(*period)
		t.RecurrencePeriod = &p
	}
	return t, nil
}

func periodArg(p *models.RecurrencePeriod) *string {
	if p == nil {
		return nil
	}
	v := string(*p)
	return &v
}

const budgetColumns = `id, user_id, category_id, amount::text, start_date, end_date`

func (s *Store) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY start_date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return collect(rows, scanBudget)
}

func (s *Store) GetBudget(ctx context.Context, userID, id int64) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	return scanBudget(row)
}

// CreateBudget inserts only when the optional category belongs to the same user.
func (s *Store) CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, category_id, amount, start_date, end_date)
		SELECT $1, $2, $3::numeric, $4, $5
		WHERE $2::bigint IS NULL OR EXISTS (SELECT 1 FROM categories c WHERE c.id = $2 AND c.user_id = $1)
		RETURNING `+budgetColumns,
		b.UserID, b.CategoryID, b.Amount.String(), b.StartDate.Time, b.EndDate.Time)
	return scanBudget(row)
}

func (s *Store) UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE budgets SET category_id = $3, amount = $4::numeric, start_date = $5, end_date = $6
		WHERE id = $1 AND user_id = $2
		  AND ($3::bigint IS NULL OR EXISTS (SELECT 1 FROM categories c WHERE c.id = $3 AND c.user_id = $2))
		RETURNING `+budgetColumns,
		b.ID, b.UserID, b.CategoryID, b.Amount.String(), b.StartDate.Time, b.EndDate.Time)
	return scanBudget(row)
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id int64) error {
	return execOne(ctx, s.pool, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
}

func (s *Store) ActiveBudgets(ctx context.Context, userID int64, day models.Date) ([]models.Budget, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date, id`, userID, day.Time)
	if err != nil {
		return nil, fmt.Errorf("active budgets: %w", err)
	}
	return collect(rows, scanBudget)
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	var amount string
	var start, end time.Time
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &amount, &start, &end); err != nil {
		return models.Budget{}, notFound(err)
	}
	var err error
	if b.Amount, err = models.NewAmount(amount); err != nil {
		return models.Budget{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	b.StartDate = models.DateOf(start)
	b.EndDate = models.DateOf(end)
	return b, nil
}

const notificationColumns = `id, user_id, message, created_at, is_read`

func (s *Store) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, id DESC`, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return collect(rows, scanNotification)
}

func (s *Store) GetNotification(ctx context.Context, userID, id int64) (models.Notification, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	return scanNotification(row)
}

func (s *Store) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message) VALUES ($1, $2)
		RETURNING `+notificationColumns, n.UserID, n.Message)
	return scanNotification(row)
}

// MarkRead flips is_read to true; message and created_at are never written.
func (s *Store) MarkRead(ctx context.Context, userID, id int64) (models.Notification, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
		RETURNING `+notificationColumns, id, userID)
	return scanNotification(row)
}

func (s *Store) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (models.Notification, error) {
	var n models.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.IsRead); err != nil {
		return models.Notification{}, notFound(err)
	}
	return n, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
