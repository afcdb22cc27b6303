package model

// Record represents one parsed row of a Rabobank CSV export. All fields are
// kept as the raw strings from the file; interpretation happens during
// mapping.
type Record struct {
	Account            string // own account (IBAN)
	Currency           string
	InterestDate       string // value date, "EEYYMMDD" or ISO
	DebitCredit        string // "D" or "C"; not consumed, sign comes from Amount
	Amount             string // bank decimal notation, "." or "," separator
	BalanceAfter       string
	CounterAccount     string
	CounterAccountName string
	Date               string // transaction date
	BookingCode        string // 2-letter bank classification, may be empty
	SequenceNr         string // per-account serial, may be empty
	Description1       string
	Description2       string
	Description3       string

	// Auxiliary fields, carried but rarely used.
	BatchID           string
	Reference         string
	AuthorizationCode string
	CollectorID       string
	PaymentReference  string // consumed for "ac" (acceptgiro) memos
	ReasonReturn      string
	OriginalAmount    string
	OriginalCurrency  string
	ExchangeRate      string
}
