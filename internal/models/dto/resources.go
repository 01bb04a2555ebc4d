package dto

import (
	"encoding/json"

	"github.com/hongminglow/finance-tracker-be/internal/models"
)

// Optional distinguishes a JSON field that was omitted from one explicitly
// set to null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ProfileRequest carries writable profile fields.
type ProfileRequest struct {
	Currency                *string `json:"currency"`
	BudgetLimitNotification *bool   `json:"budget_limit_notification"`
}

// CategoryRequest carries writable category fields. Nil means not supplied.
type CategoryRequest struct {
	Name *string              `json:"name"`
	Type *models.CategoryType `json:"type"`
}

// TransactionRequest carries writable transaction fields. The date is never
// accepted from clients.
type TransactionRequest struct {
	Category         *int64                            `json:"category"`
	Amount           *models.Amount                    `json:"amount"`
	Description      Optional[string]                  `json:"description"`
	IsRecurring      *bool                             `json:"is_recurring"`
	RecurrencePeriod Optional[models.RecurrencePeriod] `json:"recurrence_period"`
}

// BudgetRequest carries writable budget fields.
type BudgetRequest struct {
	Category  Optional[int64] `json:"category"`
	Amount    *models.Amount  `json:"amount"`
	StartDate *models.Date    `json:"start_date"`
	EndDate   *models.Date    `json:"end_date"`
}

// NotificationPatch is the only writable notification shape.
type NotificationPatch struct {
	IsRead *bool `json:"is_read"`
}
