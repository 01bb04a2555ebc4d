// Package alerts produces notifications for users whose spending crosses a
// budget limit.
package alerts

import (
	"context"
	"fmt"
	"time"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/models"
)

// Store is the persistence the budget watcher reads and writes.
type Store interface {
	GetProfile(ctx context.Context, userID int64) (models.UserProfile, error)
	GetCategory(ctx context.Context, userID, id int64) (models.Category, error)
	ActiveBudgets(ctx context.Context, userID int64, day models.Date) ([]models.Budget, error)
	SumExpenses(ctx context.Context, userID int64, categoryID *int64, from, to time.Time) (models.Amount, error)
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
}

// BudgetWatcher checks budgets after expense writes.
type BudgetWatcher struct {
	store Store
	loc   *time.Location
}

// NewBudgetWatcher builds a watcher evaluating budget periods in loc.
func NewBudgetWatcher(store Store, loc *time.Location) *BudgetWatcher {
	if loc == nil {
		loc = time.UTC
	}
	return &BudgetWatcher{store: store, loc: loc}
}

// TransactionSaved is called after tx was written; previous is the row as it
// was before an update and nil on create. It creates one notification for
// every budget whose expense total moved from within the limit to over it.
func (b *BudgetWatcher) TransactionSaved(ctx context.Context, tx models.Transaction, previous *models.Transaction) ([]models.Notification, error) {
	profile, err := b.store.GetProfile(ctx, tx.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !profile.BudgetLimitNotification {
		return nil, nil
	}
	category, err := b.store.GetCategory(ctx, tx.UserID, tx.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category.Type != models.CategoryExpense {
		return nil, nil
	}

	prevExpense := false
	if previous != nil {
		prevCategory, err := b.store.GetCategory(ctx, previous.UserID, previous.CategoryID)
		if err == nil {
			prevExpense = prevCategory.Type == models.CategoryExpense
		}
	}

	day := models.DateOf(tx.Date.In(b.loc))
	budgets, err := b.store.ActiveBudgets(ctx, tx.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	var created []models.Notification
	for _, budget := range budgets {
		if !budget.Applies(tx.CategoryID) {
			continue
		}
		from := budget.StartDate.Start(b.loc)
		to := budget.EndDate.Start(b.loc).AddDate(0, 0, 1)
		spent, err := b.store.SumExpenses(ctx, tx.UserID, budget.CategoryID, from, to)
		if err != nil {
			return created, fmt.Errorf("sum expenses for budget %d: %w", budget.ID, err)
		}
		before := spent.Sub(tx.Amount)
		if prevExpense && budget.Applies(previous.CategoryID) {
			before = before.Add(previous.Amount)
		}
		if spent.GreaterThan(budget.Amount.Decimal) && !before.GreaterThan(budget.Amount.Decimal) {
			n, err := b.store.CreateNotification(ctx, models.Notification{
				UserID:  tx.UserID,
				Message: budgetMessage(budget, category, spent, profile.Currency),
			})
			if err != nil {
				return created, fmt.Errorf("create notification: %w", err)
			}
			applog.FromContext(ctx).Info("budget limit exceeded",
				applog.FieldUserID, tx.UserID, "budget_id", budget.ID, "spent", spent.String())
			created = append(created, n)
		}
	}
	return created, nil
}

func budgetMessage(budget models.Budget, category models.Category, spent models.Amount, currency string) string {
	scope := "your overall budget"
	if budget.CategoryID != nil {
		scope = fmt.Sprintf("your %q budget", category.Name)
	}
	return fmt.Sprintf("You have spent %s %s of %s %s in %s for %s to %s.",
		spent, currency, budget.Amount, currency, scope, budget.StartDate, budget.EndDate)
}
