package model

// Ledger accumulates per-account counters during statement assembly.
// Created lazily when an account is first seen, discarded at process end.
type Ledger struct {
	Total     int // rows seen for the account
	Skipped   int // rows suppressed as duplicate transfer legs
	Processed int // rows emitted
	Overrides int // field overrides among emitted rows
}
