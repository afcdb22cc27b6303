// Package commands wires the CLI: flag parsing, config loading and the
// conversion pipeline from CSV file to OFX file.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/emv-nl/rabo2ofx/internal/accounts"
	"github.com/emv-nl/rabo2ofx/internal/buildinfo"
	"github.com/emv-nl/rabo2ofx/internal/config"
	"github.com/emv-nl/rabo2ofx/internal/model"
	"github.com/emv-nl/rabo2ofx/internal/ofx"
	"github.com/emv-nl/rabo2ofx/internal/rabocsv"
	"github.com/emv-nl/rabo2ofx/internal/report"
)

// csvSuffix matches a csv extension, and the character before it, the
// way the tool has always derived output filenames. Inputs that do not
// match keep their name.
var csvSuffix = regexp.MustCompile(`.[cC][sS][vV]$`)

type convertOptions struct {
	outFile    string
	dir        string
	homebank   bool
	comma      bool
	configFile string
	debug      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var opts convertOptions

	rootCmd := &cobra.Command{
		Use:   "rabo2ofx <csvfile>",
		Short: "Convert Rabobank CSV exports to OFX for GnuCash or HomeBank",
		Long: `Convert a CSV file downloaded from www.rabo.nl into an OFX file for
GnuCash or HomeBank. GnuCash gets one transaction per internal transfer
between your own accounts; HomeBank (--homebank) gets both legs and
matches them itself. List your accounts in ` + config.DefaultFile + ` so
transfers are written on the right account.`,
		Args:    cobra.ExactArgs(1),
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.outFile, "outfile", "o", "", "output filename, default is the input name with .ofx")
	rootCmd.Flags().StringVarP(&opts.dir, "directory", "d", "ofx", "directory to store output (--homebank forces ofx_hb)")
	rootCmd.Flags().BoolVarP(&opts.homebank, "homebank", "H", false, "emit both legs of internal transfers, for HomeBank")
	rootCmd.Flags().BoolVarP(&opts.comma, "comma", "c", false, "write amounts with a decimal comma instead of a point")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultFile, "config file with account ordering and overrides")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCommand(&opts))

	return rootCmd
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runConvert(cmd *cobra.Command, csvFile string, opts convertOptions) error {
	logger := newLogger(opts.debug)

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	ordering := accounts.NewOrdering(cfg.Accounts)
	logger.Debug("config loaded", "file", opts.configFile, "accounts", ordering.Len())

	recs, err := rabocsv.ParseFile(csvFile)
	if err != nil {
		return err
	}
	logger.Debug("csv parsed", "file", csvFile, "rows", len(recs))

	mapper := ofx.NewMapper(ofx.Options{
		DecimalComma:    opts.comma,
		ForceDatePosted: cfg.Overrides.Bool(config.KeyForceDatePosted),
	})
	txns := make([]model.Transaction, 0, len(recs))
	for i, rec := range recs {
		txn, err := mapper.Map(rec)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}

	stmt, err := ofx.Assemble(txns, ordering, opts.homebank)
	if err != nil {
		return err
	}

	outDir := opts.dir
	if opts.homebank {
		outDir = "ofx_hb"
	}
	outFile := opts.outFile
	if outFile == "" {
		outFile = csvSuffix.ReplaceAllString(csvFile, ".ofx")
	}
	outPath := filepath.Join(outDir, outFile)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := ofx.WriteDocument(f, stmt, time.Now()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	logger.Debug("ofx written", "path", outPath, "accounts", len(stmt.Accounts), "transactions", stmt.Total())

	report.Print(cmd.OutOrStdout(), report.Summary{
		OutputDir:  outDir,
		DualLeg:    opts.homebank,
		InFile:     csvFile,
		OutFile:    outFile,
		Statement:  stmt,
		Configured: ordering.Len(),
		Overrides:  cfg.Overrides,
	})
	return nil
}
