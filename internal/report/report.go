// Package report prints the human-readable run summary shown after a
// conversion.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/emv-nl/rabo2ofx/internal/config"
	"github.com/emv-nl/rabo2ofx/internal/ofx"
)

// Summary describes one completed conversion run.
type Summary struct {
	OutputDir string
	DualLeg   bool
	InFile    string
	OutFile   string
	Statement *ofx.Statement
	// Configured is the number of accounts listed in the config; fewer
	// configured than observed accounts triggers the transfer warning.
	Configured int
	Overrides  config.Overrides
}

// Print writes the per-account counters and any warnings to w.
func Print(w io.Writer, s Summary) {
	flavor := "GnuCash"
	if s.DualLeg {
		flavor = "HomeBank"
	}
	fmt.Fprintf(w, "           Output to %s (%s version)\n", s.OutputDir, flavor)
	fmt.Fprintf(w, "TRANSACTIONS: %d\n", s.Statement.Total())
	fmt.Fprintf(w, "IN:           %s\n", s.InFile)
	fmt.Fprintf(w, "OUT:          %s\n", s.OutFile)

	fmt.Fprintln(w, "\taccountnumber     processed  skip   sum   overrides")
	for _, as := range s.Statement.Accounts {
		fmt.Fprintf(w, "\t%s %8d %5d %5d %11d\n",
			as.Account, as.Ledger.Processed, as.Ledger.Skipped, as.Ledger.Total, as.Ledger.Overrides)
	}
	fmt.Fprintln(w, "\t-")

	if len(s.Statement.Accounts) > s.Configured {
		warn := color.New(color.FgYellow)
		warn.Fprintln(w, "warning: it seems you have more accounts in your file(s)")
		warn.Fprintln(w, "         than in your config.")
		warn.Fprintln(w, "         This carries the risk of double transfers if you use GnuCash.")
		warn.Fprintln(w, "")
		warn.Fprintln(w, "         Add all accounts you download to your config file")
		warn.Fprintln(w, "         and rerun the program. You can find the accounts")
		warn.Fprintln(w, "         processed in the stats above.")
		warn.Fprintf(w, "         The config file is called %q; run 'rabo2ofx config init'\n", config.DefaultFile)
		warn.Fprintln(w, "         to write an example.")
	}

	if len(s.Overrides) > 0 {
		fmt.Fprintln(w, "---- overrides        -----")
		keys := make([]string, 0, len(s.Overrides))
		for key := range s.Overrides {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "%s = %s\n", key, s.Overrides[key])
		}
	}
}
