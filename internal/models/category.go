package models

import (
	"strings"
	"unicode/utf8"
)

// CategoryType classifies a category as money in or money out.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Valid reports whether t is one of the enumerated types.
func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category is a user-defined label applied to transactions.
type Category struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"-"`
	Name   string       `json:"name"`
	Type   CategoryType `json:"type"`
}

const maxCategoryNameLen = 100

// Validate checks the name and type.
func (c Category) Validate() error {
	errs := ValidationErrors{}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs.Add("name", "this field is required")
	} else if utf8.RuneCountInString(name) > maxCategoryNameLen {
		errs.Add("name", "ensure this field has no more than 100 characters")
	}
	if !c.Type.Valid() {
		errs.Add("type", `"`+string(c.Type)+`" is not a valid choice; expected income or expense`)
	}
	return errs.Err()
}
