package reports

import "errors"

// ErrNoData marks a report that has nothing to draw. Handlers map it to 404.
var ErrNoData = errors.New("no data for report")

// Summary aggregates one owner's transactions over an inclusive date range.
// Income and Expense are both reported as positive cents; Net is signed.
type Summary struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Income     int64           `json:"income"`
	Expense    int64           `json:"expense"`
	Net        int64           `json:"net"`
	Categories []CategoryTotal `json:"categories"`
}

// CategoryTotal carries per-category signed totals for the summary, or
// positive spend for the chart.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int64  `json:"count"`
}

// DayPoint is one day of the cashflow series. Balance is the running net
// within the requested period, not an account balance.
type DayPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

// BudgetReportRow compares a budget ceiling to the month's spend. Remaining
// goes negative when the ceiling is blown.
type BudgetReportRow struct {
	Category  string `json:"category"`
	Budget    int64  `json:"budget"`
	Spent     int64  `json:"spent"`
	Remaining int64  `json:"remaining"`
}

// StatementRow is one printable line of the PDF statement.
type StatementRow struct {
	ID          string
	Description string
	Amount      int64
	Category    string
	Date        string
}

// StatementData is everything the PDF needs for one period.
type StatementData struct {
	Rows         []StatementRow
	TotalIncome  int64
	TotalExpense int64
}
