// Package rabocsv reads Rabobank CSV transaction exports.
package rabocsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/emv-nl/rabo2ofx/internal/model"
)

const (
	numFields       = 23
	colAccount      = 0
	colCurrency     = 1
	colInterestDate = 2
	colDebitCredit  = 3
	colAmount       = 4
	colBalanceAfter = 5
	colCounterAcct  = 6
	colCounterName  = 7
	colDate         = 8
	colBookingCode  = 9
	colSequenceNr   = 10
	colDescription1 = 11
	colDescription2 = 12
	colDescription3 = 13
	colBatchID      = 14
	colReference    = 15
	colAuthCode     = 16
	colCollectorID  = 17
	colPaymentRef   = 18
	colReasonReturn = 19
	colOrigAmount   = 20
	colOrigCurrency = 21
	colExchangeRate = 22
)

// Parse reads a Rabobank export and returns its records in file order.
// The first row is the bank's header and is discarded unconditionally.
// Input bytes are ISO-8859-1, the encoding the bank downloads in.
func Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	// The header row is not held to the data-row width; each data row is
	// checked in UnmarshalRecord instead.
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rabobank CSV: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	var records []model.Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseFile reads a Rabobank export from disk.
func ParseFile(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// UnmarshalRecord converts a CSV row to a Record. Fields stay raw strings;
// interpretation is the mapper's job.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	return model.Record{
		Account:            row[colAccount],
		Currency:           row[colCurrency],
		InterestDate:       row[colInterestDate],
		DebitCredit:        row[colDebitCredit],
		Amount:             row[colAmount],
		BalanceAfter:       row[colBalanceAfter],
		CounterAccount:     row[colCounterAcct],
		CounterAccountName: row[colCounterName],
		Date:               row[colDate],
		BookingCode:        row[colBookingCode],
		SequenceNr:         row[colSequenceNr],
		Description1:       row[colDescription1],
		Description2:       row[colDescription2],
		Description3:       row[colDescription3],
		BatchID:            row[colBatchID],
		Reference:          row[colReference],
		AuthorizationCode:  row[colAuthCode],
		CollectorID:        row[colCollectorID],
		PaymentReference:   row[colPaymentRef],
		ReasonReturn:       row[colReasonReturn],
		OriginalAmount:     row[colOrigAmount],
		OriginalCurrency:   row[colOrigCurrency],
		ExchangeRate:       row[colExchangeRate],
	}, nil
}
