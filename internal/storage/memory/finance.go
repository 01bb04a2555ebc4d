package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

// ListCategories returns the caller's categories ordered by name.
func (s *Store) ListCategories(_ context.Context, userID int64) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, userID, id int64) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return models.Category{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.UserID]; !ok {
		return models.Category{}, storage.ErrNotFound
	}
	c.ID = s.id()
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[c.ID]
	if !ok || existing.UserID != c.UserID {
		return models.Category{}, storage.ErrNotFound
	}
	s.categories[c.ID] = c
	return c, nil
}

// DeleteCategory also removes the category's transactions and budgets.
func (s *Store) DeleteCategory(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.categories, id)
	for k, t := range s.transactions {
		if t.CategoryID == id {
			delete(s.transactions, k)
		}
	}
	for k, b := range s.budgets {
		if b.CategoryID != nil && *b.CategoryID == id {
			delete(s.budgets, k)
		}
	}
	return nil
}

// ListTransactions returns the caller's transactions newest first.
func (s *Store) ListTransactions(_ context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range s.transactions {
		if t.UserID == userID && filter.Matches(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id int64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return models.Transaction{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[t.CategoryID]; !ok || c.UserID != t.UserID {
		return models.Transaction{}, storage.ErrNotFound
	}
	t.ID = s.id()
	s.transactions[t.ID] = t
	return t, nil
}

// UpdateTransaction keeps the stored date; it is never client supplied.
func (s *Store) UpdateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.transactions[t.ID]
	if !ok || existing.UserID != t.UserID {
		return models.Transaction{}, storage.ErrNotFound
	}
	if c, ok := s.categories[t.CategoryID]; !ok || c.UserID != t.UserID {
		return models.Transaction{}, storage.ErrNotFound
	}
	t.Date = existing.Date
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) SumByType(_ context.Context, userID int64, from, to time.Time) (models.WeeklyTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := models.WeeklyTotals{Income: models.ZeroAmount(), Expense: models.ZeroAmount()}
	window := models.TransactionFilter{From: from, To: to}
	for _, t := range s.transactions {
		if t.UserID != userID || !window.Matches(t) {
			continue
		}
		switch s.categories[t.CategoryID].Type {
		case models.CategoryIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case models.CategoryExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals, nil
}

func (s *Store) SumExpenses(_ context.Context, userID int64, categoryID *int64, from, to time.Time) (models.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := models.ZeroAmount()
	window := models.TransactionFilter{CategoryID: categoryID, From: from, To: to}
	for _, t := range s.transactions {
		if t.UserID != userID || !window.Matches(t) {
			continue
		}
		if s.categories[t.CategoryID].Type == models.CategoryExpense {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// ListBudgets returns the caller's budgets by start date.
func (s *Store) ListBudgets(_ context.Context, userID int64) ([]models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetsWhere(func(b models.Budget) bool { return b.UserID == userID }), nil
}

func (s *Store) GetBudget(_ context.Context, userID, id int64) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return models.Budget{}, storage.ErrNotFound
	}
	return b, nil
}

func (s *Store) CreateBudget(_ context.Context, b models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsCategory(b.UserID, b.CategoryID) {
		return models.Budget{}, storage.ErrNotFound
	}
	b.ID = s.id()
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) UpdateBudget(_ context.Context, b models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[b.ID]
	if !ok || existing.UserID != b.UserID || !s.ownsCategory(b.UserID, b.CategoryID) {
		return models.Budget{}, storage.ErrNotFound
	}
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) DeleteBudget(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) ActiveBudgets(_ context.Context, userID int64, day models.Date) ([]models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetsWhere(func(b models.Budget) bool { return b.UserID == userID && b.Covers(day) }), nil
}

func (s *Store) budgetsWhere(keep func(models.Budget) bool) []models.Budget {
	out := []models.Budget{}
	for _, b := range s.budgets {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate.Time) {
			return out[i].StartDate.Before(out[j].StartDate.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) ownsCategory(userID int64, categoryID *int64) bool {
	if categoryID == nil {
		return true
	}
	c, ok := s.categories[*categoryID]
	return ok && c.UserID == userID
}

// ListNotifications returns the caller's notifications newest first.
func (s *Store) ListNotifications(_ context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetNotification(_ context.Context, userID, id int64) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return models.Notification{}, storage.ErrNotFound
	}
	return n, nil
}

func (s *Store) CreateNotification(_ context.Context, n models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[n.UserID]; !ok {
		return models.Notification{}, storage.ErrNotFound
	}
	n.ID = s.id()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	s.notifications[n.ID] = n
	return n, nil
}

func (s *Store) MarkRead(_ context.Context, userID, id int64) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return models.Notification{}, storage.ErrNotFound
	}
	n.IsRead = true
	s.notifications[id] = n
	return n, nil
}

func (s *Store) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for id, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			s.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}
