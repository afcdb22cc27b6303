package ofx

import (
	"fmt"
	"strconv"

	"github.com/emv-nl/rabo2ofx/internal/accounts"
	"github.com/emv-nl/rabo2ofx/internal/model"
)

// AccountStatement is one per-account statement block with its ledger
// counters.
type AccountStatement struct {
	Account      string
	Transactions []model.Transaction
	Ledger       model.Ledger
}

// Statement is a complete OFX response assembled from one export file.
// MinDate and MaxDate span every transaction in the file, suppressed
// legs included, and are only meaningful when Accounts is non-empty.
type Statement struct {
	Accounts []AccountStatement
	MinDate  int
	MaxDate  int
}

// Total returns the number of transactions across all accounts,
// suppressed legs included.
func (s *Statement) Total() int {
	n := 0
	for _, a := range s.Accounts {
		n += a.Ledger.Total
	}
	return n
}

// Assemble groups transactions per account, in first-seen order, and
// decides which ones to emit. In single-leg mode a transaction whose
// destination is a suppressed counterparty of its own account is
// counted but not emitted; its reciprocal leg lives on the other
// account's statement. In dual-leg mode every transaction is emitted
// and the consumer pairs the legs itself.
func Assemble(txns []model.Transaction, ordering *accounts.Ordering, dualLeg bool) (*Statement, error) {
	stmt := &Statement{}
	byAccount := make(map[string][]model.Transaction)
	var order []string

	for i, txn := range txns {
		if _, ok := byAccount[txn.Account]; !ok {
			order = append(order, txn.Account)
		}
		byAccount[txn.Account] = append(byAccount[txn.Account], txn)

		date, err := strconv.Atoi(txn.DatePosted)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: posted date %q is not numeric", txn.FitID, txn.DatePosted)
		}
		if i == 0 || date < stmt.MinDate {
			stmt.MinDate = date
		}
		if i == 0 || date > stmt.MaxDate {
			stmt.MaxDate = date
		}
	}

	var finalized []string
	for _, account := range order {
		as := AccountStatement{Account: account}
		suppressed := ordering.SuppressedCounterparties(account, finalized)
		for _, txn := range byAccount[account] {
			as.Ledger.Total++
			if !dualLeg && suppressed[txn.AccountTo] {
				as.Ledger.Skipped++
				continue
			}
			as.Ledger.Processed++
			as.Ledger.Overrides += txn.Overrides
			as.Transactions = append(as.Transactions, txn)
		}
		finalized = append(finalized, account)
		stmt.Accounts = append(stmt.Accounts, as)
	}
	return stmt, nil
}
