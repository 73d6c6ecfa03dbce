package budgets

import (
	"strings"
	"time"
)

// BudgetCategory is an owner-scoped spending ceiling. Amount is cents; the
// name is unique per owner.
type BudgetCategory struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BudgetRequest is the create and update body. Amount is a pointer so a
// missing field is distinguishable from an explicit zero.
type BudgetRequest struct {
	Name   string `json:"name"`
	Amount *int64 `json:"amount"`
}

// validate returns the fields that are absent or malformed, in request order.
// A negative ceiling counts as malformed.
func (r BudgetRequest) validate() []string {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.Amount == nil || *r.Amount < 0 {
		missing = append(missing, "amount")
	}
	return missing
}

func (r BudgetRequest) toNew() NewBudget {
	return NewBudget{
		Name:   strings.TrimSpace(r.Name),
		Amount: *r.Amount,
	}
}

// NewBudget carries validated input into the repo.
type NewBudget struct {
	Name   string
	Amount int64
}
