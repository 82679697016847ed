package ascent

import (
	"fmt"
	"sort"
	"time"

	"github.com/etnz/ascent/date"
	"github.com/google/uuid"
)

// TxKind is the direction of a ledger entry.
type TxKind string

const (
	Income  TxKind = "income"
	Expense TxKind = "expense"
)

// ParseTxKind parses a transaction kind.
func ParseTxKind(s string) (TxKind, error) {
	switch k := TxKind(s); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Transaction is an immutable ledger entry. The ledger is append-only.
type Transaction struct {
	ID       string    `json:"id"`
	Amount   Money     `json:"amount"`
	Kind     TxKind    `json:"kind"`
	Category string    `json:"category"`
	Note     string    `json:"note,omitempty"`
	GoalID   string    `json:"goal_id,omitempty"`
	At       time.Time `json:"at"`
}

// signed returns the amount with the income/expense sign applied.
func (t Transaction) signed() Money {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewTransaction validates a ledger entry at the ingestion boundary: the
// amount must be strictly positive, the kind known, and the category set.
// Bad numbers are rejected here instead of silently propagating.
func NewTransaction(amount Money, kind TxKind, category, note string, at time.Time) (Transaction, error) {
	if _, err := ParseTxKind(string(kind)); err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("transaction amount must be positive, got %s", amount)
	}
	if category == "" {
		return Transaction{}, fmt.Errorf("transaction category is required")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return Transaction{
		ID:       uuid.NewString(),
		Amount:   amount,
		Kind:     kind,
		Category: category,
		Note:     note,
		At:       at,
	}, nil
}

// DebtDirection tells who owes whom.
type DebtDirection string

const (
	IOwe    DebtDirection = "i_owe"
	TheyOwe DebtDirection = "they_owe"
)

// Debt is a tracked debt with a decreasing remainder.
type Debt struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Total     Money         `json:"total"`
	Remaining Money         `json:"remaining"`
	Direction DebtDirection `json:"direction"`
	Category  string        `json:"category,omitempty"`
}

// SubPeriod is the billing period of a subscription.
type SubPeriod string

const (
	Monthly SubPeriod = "monthly"
	Yearly  SubPeriod = "yearly"
)

// Subscription is a recurring charge contributing to monthly burn.
type Subscription struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Amount   Money     `json:"amount"`
	Period   SubPeriod `json:"period"`
	Category string    `json:"category,omitempty"`
}

// monthly returns the subscription amount normalized to one month.
func (s Subscription) monthly() Money {
	if s.Period == Yearly {
		return s.Amount.DivF(12)
	}
	return s.Amount
}

// FreedomMultiplier converts a monthly burn into a financial-independence
// target (roughly 12.5 years of runway).
const FreedomMultiplier = 150

// fallbackFreedomTarget is used when the monthly burn is zero, so the
// freedom index is always defined.
const fallbackFreedomTarget = 1_000_000

// FinLedger holds the three append-only financial collections.
type FinLedger struct {
	txs   []Transaction
	debts []Debt
	subs  []Subscription
}

// NewFinLedger creates an empty financial ledger.
func NewFinLedger() *FinLedger { return &FinLedger{} }

// Append adds a validated transaction, keeping the list in timestamp order.
func (l *FinLedger) Append(tx Transaction) {
	l.txs = append(l.txs, tx)
	sort.SliceStable(l.txs, func(i, j int) bool { return l.txs[i].At.Before(l.txs[j].At) })
}

// Transactions returns entries in chronological order.
func (l *FinLedger) Transactions() []Transaction { return l.txs }

// AddDebt registers a debt. The remainder may not exceed the total.
func (l *FinLedger) AddDebt(d Debt) error {
	if d.Remaining.GreaterThan(d.Total) {
		return fmt.Errorf("debt %q: remaining %s exceeds total %s", d.Title, d.Remaining, d.Total)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	l.debts = append(l.debts, d)
	return nil
}

// Debts returns the registered debts.
func (l *FinLedger) Debts() []Debt { return l.debts }

// AddSubscription registers a recurring charge.
func (l *FinLedger) AddSubscription(s Subscription) error {
	if !s.Amount.IsPositive() {
		return fmt.Errorf("subscription %q: amount must be positive", s.Title)
	}
	if s.Period == "" {
		s.Period = Monthly
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	l.subs = append(l.subs, s)
	return nil
}

// Subscriptions returns the registered subscriptions.
func (l *FinLedger) Subscriptions() []Subscription { return l.subs }

// MonthlyBurn is the snapshot's monthly expenses plus all subscriptions
// normalized to a month.
func (l *FinLedger) MonthlyBurn(s FinancialSnapshot) Money {
	burn := s.MonthlyExpenses
	for _, sub := range l.subs {
		burn = burn.Add(sub.monthly())
	}
	return burn
}

// FreedomTarget is the net worth at which monthly burn stops mattering:
// burn x 150, or a fixed fallback of 1,000,000 when burn is zero.
func FreedomTarget(burn Money) Money {
	if burn.IsZero() {
		return M(fallbackFreedomTarget, burn.Currency())
	}
	return burn.MulF(FreedomMultiplier)
}

// FreedomIndex is the percentage of the freedom target covered by net
// worth: round(netWorth/target*100). It is intentionally unclamped; use
// FreedomBar for the visual gauge.
func FreedomIndex(netWorth, target Money) int {
	return netWorth.Ratio(target)
}

// FreedomBar clamps the freedom index to [0,100] for display.
func FreedomBar(index int) int {
	if index < 0 {
		return 0
	}
	if index > 100 {
		return 100
	}
	return index
}

// BalancePoint is one day of the reconstructed balance series.
type BalancePoint struct {
	On      date.Date
	Balance Money
}

// BalanceHistory reconstructs a trailing daily net-worth series ending
// today. It works backward from the current net worth (assets - debts) by
// subtracting the net effect of all known transactions, then replays them
// forward in timestamp order. The last point always equals the snapshot's
// net worth exactly.
func (l *FinLedger) BalanceHistory(s FinancialSnapshot, days int) []BalancePoint {
	if days < 1 {
		days = 1
	}
	netWorth := s.TotalAssets.Sub(s.TotalDebts)

	// Walk back to the opening balance.
	opening := netWorth
	for _, tx := range l.txs {
		opening = opening.Sub(tx.signed())
	}

	r := date.Trailing(date.Today(), days)
	points := make([]BalancePoint, 0, days)
	balance := opening
	i := 0
	// Transactions dated before the window are folded into the first point.
	for ; i < len(l.txs) && date.FromTime(l.txs[i].At).Before(r.From); i++ {
		balance = balance.Add(l.txs[i].signed())
	}
	for day := range r.All() {
		for ; i < len(l.txs) && date.FromTime(l.txs[i].At) == day; i++ {
			balance = balance.Add(l.txs[i].signed())
		}
		points = append(points, BalancePoint{On: day, Balance: balance})
	}
	// Entries dated past the window (clock skew) still count: the latest
	// point must equal the snapshot's net worth exactly.
	for ; i < len(l.txs); i++ {
		balance = balance.Add(l.txs[i].signed())
	}
	points[len(points)-1].Balance = balance
	return points
}

// CategoryTotal is one row of the category aggregation.
type CategoryTotal struct {
	Category string
	Total    Money
}

// AggregateByCategory groups transactions of the given kind by category,
// sums them and sorts descending by total (ties broken by name so the
// ranking is stable).
func (l *FinLedger) AggregateByCategory(kind TxKind) []CategoryTotal {
	totals := make(map[string]Money)
	for _, tx := range l.txs {
		if tx.Kind != kind {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[j].Total.LessThan(result[i].Total)
		}
		return result[i].Category < result[j].Category
	})
	return result
}
