package model

// TxnType is an OFX TRNTYPE code.
type TxnType string

const (
	TxnXfer        TxnType = "XFER"
	TxnPOS         TxnType = "POS"
	TxnOther       TxnType = "OTHER"
	TxnDirectDebit TxnType = "DIRECTDEBIT"
	TxnATM         TxnType = "ATM"
	TxnPayment     TxnType = "PAYMENT"
	TxnDebit       TxnType = "DEBIT"
	TxnCredit      TxnType = "CREDIT"
)

// Transaction is one OFX statement transaction derived from a Record.
// Created once during mapping, never mutated afterwards.
type Transaction struct {
	Account    string // own account, whitespace stripped
	Type       TxnType
	DatePosted string // 8-digit YYYYMMDD
	Amount     string // run-preference decimal separator, sign verbatim
	FitID      string // unique within the run
	AccountTo  string // counter account, possibly empty
	Name       string
	Memo       string
	Overrides  int // field overrides applied while mapping this row
}
