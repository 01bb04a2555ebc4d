package models

// DefaultCurrency is assigned to freshly created profiles.
const DefaultCurrency = "USD"

// UserProfile holds per-user preferences.
type UserProfile struct {
	UserID                  int64  `json:"-"`
	Currency                string `json:"currency"`
	BudgetLimitNotification bool   `json:"budget_limit_notification"`
}

// DefaultProfile returns the profile created alongside a new user.
func DefaultProfile(userID int64) UserProfile {
	return UserProfile{UserID: userID, Currency: DefaultCurrency, BudgetLimitNotification: true}
}

// Validate checks the currency is a three letter upper-case code.
func (p UserProfile) Validate() error {
	if !validCurrency(p.Currency) {
		return FieldError("currency", "currency must be a 3-letter ISO code")
	}
	return nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
