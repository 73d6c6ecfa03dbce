package transactions

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Transaction is an owner-scoped ledger row. Amount is signed cents,
// positive for income and negative for spend.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionRequest is the create and update body. Update replaces all
// mutable fields, so both operations share the shape. Amount is a pointer so
// a missing field is distinguishable from an explicit zero.
type TransactionRequest struct {
	Description string `json:"description"`
	Amount      *int64 `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// validate returns the fields that are absent or malformed, in request order.
func (r TransactionRequest) validate() []string {
	var missing []string
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if r.Amount == nil {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		missing = append(missing, "date")
	}
	return missing
}

func (r TransactionRequest) toNew() NewTransaction {
	return NewTransaction{
		Description: strings.TrimSpace(r.Description),
		Amount:      *r.Amount,
		Category:    strings.TrimSpace(r.Category),
		Date:        r.Date,
	}
}

// NewTransaction carries validated input into the repo.
type NewTransaction struct {
	Description string
	Amount      int64
	Category    string
	Date        string // YYYY-MM-DD, validated upstream
}

// ListFilter narrows List. Nil bounds mean unbounded; both bounds are
// inclusive.
type ListFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Limit    int
}
