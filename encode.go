package ascent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The durable state lives in plain text files: transactions and goals are
// JSONL (one object per line, append-friendly and git-friendly), debts and
// subscriptions share a single JSON document.

// EncodeTransaction appends a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// DecodeTransactions reads a JSONL stream of transactions into a ledger.
// Blank lines are skipped; a malformed line fails the whole decode with its
// content quoted for the user.
func DecodeTransactions(r io.Reader, ledger *FinLedger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return fmt.Errorf("format error on line %q: %w", string(line), err)
		}
		ledger.Append(tx)
	}
	return scanner.Err()
}

// EncodeGoals writes the whole goal ledger as JSONL, one goal per line.
func EncodeGoals(w io.Writer, ledger *GoalLedger) error {
	for _, g := range ledger.Goals() {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// DecodeGoals reads a JSONL stream of goals into a ledger.
func DecodeGoals(r io.Reader, ledger *GoalLedger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var g YearGoal
		if err := json.Unmarshal(line, &g); err != nil {
			return fmt.Errorf("format error on line %q: %w", string(line), err)
		}
		if err := ledger.Add(&g); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// financeExtras is the JSON document holding debts and subscriptions.
type financeExtras struct {
	Debts         []Debt         `json:"debts,omitempty"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// EncodeFinanceExtras writes debts and subscriptions as one JSON document.
func EncodeFinanceExtras(w io.Writer, ledger *FinLedger) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(financeExtras{
		Debts:         ledger.Debts(),
		Subscriptions: ledger.Subscriptions(),
	})
}

// DecodeFinanceExtras loads debts and subscriptions into the ledger.
func DecodeFinanceExtras(r io.Reader, ledger *FinLedger) error {
	var extras financeExtras
	if err := json.NewDecoder(r).Decode(&extras); err != nil {
		return err
	}
	for _, d := range extras.Debts {
		if err := ledger.AddDebt(d); err != nil {
			return err
		}
	}
	for _, s := range extras.Subscriptions {
		if err := ledger.AddSubscription(s); err != nil {
			return err
		}
	}
	return nil
}
