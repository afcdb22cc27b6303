package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/emv-nl/rabo2ofx/internal/accounts"
	"github.com/emv-nl/rabo2ofx/internal/config"
)

func newConfigCommand(opts *convertOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts.configFile)
		},
	}

	cmd.AddCommand(newConfigInitCommand(opts))

	return cmd
}

func newConfigInitCommand(opts *convertOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts.configFile)
		},
	}
}

func runConfigShow(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "*************** Config file: %s\n", path)
	if len(cfg.Accounts) == 0 {
		fmt.Fprintln(out, "No accounts configured; transfers between your own accounts")
		fmt.Fprintln(out, "will appear on both of them.")
	}
	msg := "Main account."
	for _, account := range accounts.NewOrdering(cfg.Accounts).Accounts() {
		fmt.Fprintf(out, "%s %s\n", account, msg)
		msg = "Subordinate to all previous accounts."
	}

	if len(cfg.Overrides) > 0 {
		fmt.Fprintln(out, "overrides:")
		keys := make([]string, 0, len(cfg.Overrides))
		for key := range cfg.Overrides {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "  %s = %s\n", key, cfg.Overrides[key])
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.Example()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s; replace the example accounts with your own IBANs.\n", path)
	return nil
}
