package accounts

import "strings"

// Ordering fixes the precedence of the user's own accounts as listed in
// rabo2ofx.yaml. When a transfer shows up on both sides, the account
// listed first keeps the leg and the other side drops it.
type Ordering struct {
	accounts []string
	index    map[string]int
}

// NewOrdering creates an Ordering from the configured account list.
// Entries are uppercased so they match IBANs as banks print them.
func NewOrdering(accounts []string) *Ordering {
	upper := make([]string, 0, len(accounts))
	index := make(map[string]int, len(accounts))
	for _, a := range accounts {
		u := strings.ToUpper(a)
		index[u] = len(upper)
		upper = append(upper, u)
	}
	return &Ordering{accounts: upper, index: index}
}

// Accounts returns the ordered account list.
func (o *Ordering) Accounts() []string {
	return o.accounts
}

// Len returns the number of configured accounts.
func (o *Ordering) Len() int {
	return len(o.accounts)
}

// Contains reports whether an account is part of the ordering.
func (o *Ordering) Contains(account string) bool {
	_, ok := o.index[account]
	return ok
}

// SuppressedCounterparties returns the counter-accounts whose transfer
// legs must be skipped while emitting the given account: every account
// listed before it in the ordering, or the entire ordering when the
// account itself is unlisted, plus any finalized account outside the
// ordering. The matching leg is, or already was, emitted by its owner.
func (o *Ordering) SuppressedCounterparties(account string, finalized []string) map[string]bool {
	suppressed := make(map[string]bool)
	for _, a := range o.accounts {
		if a == account {
			break
		}
		suppressed[a] = true
	}
	for _, a := range finalized {
		if !o.Contains(a) {
			suppressed[a] = true
		}
	}
	return suppressed
}
