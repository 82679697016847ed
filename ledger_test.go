package ascent

import (
	"testing"
	"time"

	"github.com/etnz/ascent/date"
)

func rub(v float64) Money { return M(v, "RUB") }

func mustTx(t *testing.T, amount float64, kind TxKind, category string, at time.Time) Transaction {
	t.Helper()
	tx, err := NewTransaction(rub(amount), kind, category, "", at)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	return tx
}

func TestNewTransactionBoundary(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		amount   Money
		kind     TxKind
		category string
		wantErr  bool
	}{
		{name: "valid", amount: rub(100), kind: Expense, category: "Еда"},
		{name: "zero amount", amount: rub(0), kind: Expense, category: "Еда", wantErr: true},
		{name: "negative amount", amount: rub(-5), kind: Income, category: "Зарплата", wantErr: true},
		{name: "unknown kind", amount: rub(10), kind: "transfer", category: "Еда", wantErr: true},
		{name: "missing category", amount: rub(10), kind: Expense, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransaction(tc.amount, tc.kind, tc.category, "", now)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestMonthlyBurnAndFreedomTarget(t *testing.T) {
	snapshot := FinancialSnapshot{MonthlyExpenses: rub(8000), Currency: "RUB"}
	l := NewFinLedger()
	if err := l.AddSubscription(Subscription{Title: "Кино", Amount: rub(800), Period: Monthly}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddSubscription(Subscription{Title: "Хостинг", Amount: rub(14400), Period: Yearly}); err != nil {
		t.Fatal(err)
	}

	burn := l.MonthlyBurn(snapshot)
	if !burn.Equal(rub(10000)) { // 8000 + 800 + 14400/12
		t.Fatalf("burn = %s, want 10000", burn)
	}
	if target := FreedomTarget(burn); !target.Equal(rub(1500000)) {
		t.Errorf("target = %s, want 1500000", target)
	}
	if target := FreedomTarget(rub(0)); !target.Equal(rub(1000000)) {
		t.Errorf("zero-burn target = %s, want fallback 1000000", target)
	}
}

func TestFreedomIndex(t *testing.T) {
	testCases := []struct {
		name              string
		netWorth, target  float64
		wantIndex, wantBar int
	}{
		{name: "quarter way", netWorth: 375000, target: 1500000, wantIndex: 25, wantBar: 25},
		{name: "beyond target unclamped", netWorth: 3000000, target: 1500000, wantIndex: 200, wantBar: 100},
		{name: "negative net worth", netWorth: -150000, target: 1500000, wantIndex: -10, wantBar: 0},
		{name: "zero target treated as 1", netWorth: 0, target: 0, wantIndex: 0, wantBar: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			index := FreedomIndex(rub(tc.netWorth), rub(tc.target))
			if index != tc.wantIndex {
				t.Errorf("index = %d, want %d", index, tc.wantIndex)
			}
			if bar := FreedomBar(index); bar != tc.wantBar {
				t.Errorf("bar = %d, want %d", bar, tc.wantBar)
			}
		})
	}
}

func TestAggregateByCategory(t *testing.T) {
	l := NewFinLedger()
	now := time.Now()
	l.Append(mustTx(t, 45000, Expense, "Жилье", now))
	l.Append(mustTx(t, 5000, Expense, "Жилье", now))
	l.Append(mustTx(t, 10000, Expense, "Еда", now))
	l.Append(mustTx(t, 90000, Income, "Зарплата", now))

	got := l.AggregateByCategory(Expense)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Category != "Жилье" || !got[0].Total.Equal(rub(50000)) {
		t.Errorf("row 0 = %s %s, want Жилье 50000", got[0].Category, got[0].Total)
	}
	if got[1].Category != "Еда" || !got[1].Total.Equal(rub(10000)) {
		t.Errorf("row 1 = %s %s, want Еда 10000", got[1].Category, got[1].Total)
	}

	income := l.AggregateByCategory(Income)
	if len(income) != 1 || income[0].Category != "Зарплата" {
		t.Errorf("income rows = %+v", income)
	}
}

func TestBalanceHistory(t *testing.T) {
	snapshot := FinancialSnapshot{
		TotalAssets: rub(500000),
		TotalDebts:  rub(100000),
		Currency:    "RUB",
	}
	l := NewFinLedger()
	today := time.Now()
	l.Append(mustTx(t, 90000, Income, "Зарплата", today.AddDate(0, 0, -5)))
	l.Append(mustTx(t, 45000, Expense, "Жилье", today.AddDate(0, 0, -3)))
	l.Append(mustTx(t, 10000, Expense, "Еда", today.AddDate(0, 0, -1)))

	points := l.BalanceHistory(snapshot, 7)
	if len(points) != 7 {
		t.Fatalf("points = %d, want 7", len(points))
	}

	// Latest point must equal the stored net worth exactly.
	netWorth := snapshot.TotalAssets.Sub(snapshot.TotalDebts)
	last := points[len(points)-1]
	if !last.Balance.Equal(netWorth) {
		t.Errorf("last balance = %s, want net worth %s", last.Balance, netWorth)
	}
	if last.On != date.Today() {
		t.Errorf("last point on %s, want today", last.On)
	}

	// The first point is net worth minus everything that happened since.
	wantOpening := netWorth.Sub(rub(90000)).Add(rub(45000)).Add(rub(10000))
	if !points[0].Balance.Equal(wantOpening) {
		t.Errorf("opening = %s, want %s", points[0].Balance, wantOpening)
	}
}

func TestBalanceHistoryNoTransactions(t *testing.T) {
	snapshot := FinancialSnapshot{TotalAssets: rub(1000), Currency: "RUB"}
	points := NewFinLedger().BalanceHistory(snapshot, 7)
	if len(points) != 7 {
		t.Fatalf("points = %d, want 7", len(points))
	}
	for _, pt := range points {
		if !pt.Balance.Equal(rub(1000)) {
			t.Errorf("flat series expected, got %s on %s", pt.Balance, pt.On)
		}
	}
}

func TestAddDebtRejectsOverRemaining(t *testing.T) {
	l := NewFinLedger()
	err := l.AddDebt(Debt{Title: "Ипотека", Total: rub(1000), Remaining: rub(2000), Direction: IOwe})
	if err == nil {
		t.Error("AddDebt accepted remaining > total")
	}
	if err := l.AddDebt(Debt{Title: "Ипотека", Total: rub(2000000), Remaining: rub(1500000), Direction: IOwe}); err != nil {
		t.Errorf("AddDebt: %v", err)
	}
}
