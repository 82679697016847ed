package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/ascent"
	md "github.com/nao1215/markdown"
)

// FinanceMarkdown renders the financial review: snapshot, burn, category
// ranking and the trailing balance series.
func FinanceMarkdown(p *ascent.Profile, fin *ascent.FinLedger, historyDays int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Financial Review")

	s := p.Snapshot
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net Worth"), md.Bold(p.NetWorth().String())},
		Rows: [][]string{
			{"Total Assets", s.TotalAssets.String()},
			{"Total Debts", s.TotalDebts.String()},
			{"Monthly Income", s.MonthlyIncome.String()},
			{"Monthly Expenses", s.MonthlyExpenses.String()},
			{"Monthly Burn", fin.MonthlyBurn(s).String()},
		},
	})

	if ranking := fin.AggregateByCategory(ascent.Expense); len(ranking) > 0 {
		doc.H2("Spending by Category")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Category", "Total"},
		}
		for _, row := range ranking {
			table.Rows = append(table.Rows, []string{row.Category, row.Total.String()})
		}
		doc.Table(table)
	}

	if debts := fin.Debts(); len(debts) > 0 {
		doc.H2("Debts")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Debt", "Remaining", "Total"},
		}
		for _, d := range debts {
			title := d.Title
			if d.Direction == ascent.TheyOwe {
				title += " (owed to me)"
			}
			table.Rows = append(table.Rows, []string{title, d.Remaining.String(), d.Total.String()})
		}
		doc.Table(table)
	}

	if subs := fin.Subscriptions(); len(subs) > 0 {
		doc.H2("Subscriptions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Subscription", "Amount", "Period"},
		}
		for _, sub := range subs {
			table.Rows = append(table.Rows, []string{sub.Title, sub.Amount.String(), string(sub.Period)})
		}
		doc.Table(table)
	}

	if historyDays > 0 {
		doc.H2(fmt.Sprintf("Balance, last %d days", historyDays))
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Date", "Balance"},
		}
		for _, point := range fin.BalanceHistory(s, historyDays) {
			table.Rows = append(table.Rows, []string{point.On.String(), point.Balance.String()})
		}
		doc.Table(table)
	}

	return doc.String()
}

// TransactionsMarkdown lists ledger entries newest first.
func TransactionsMarkdown(fin *ascent.FinLedger, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	txs := fin.Transactions()
	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Date", "Kind", "Category", "Amount"},
	}
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		amount := tx.Amount.String()
		if tx.Kind == ascent.Expense {
			amount = tx.Amount.Neg().SignedString()
		}
		table.Rows = append(table.Rows, []string{
			tx.At.Format("2006-01-02"),
			string(tx.Kind),
			tx.Category,
			amount,
		})
	}
	doc.Table(table)
	return doc.String()
}
