package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"petledger/internal/config"
	"petledger/internal/logging"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Offline GST and product import tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Install(logging.New(cmd.ErrOrStderr(), config.LogConfig{Level: level, Format: "console"}))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		newValidateCmd(),
		newBreakdownCmd(),
		newHSNSeedCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ledgerctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ledgerctl %s (%s)\n", Version, runtime.Version())
		},
	}
}

// render writes v as JSON or YAML, or calls text for the "text" format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return text(w)
	}
	slog.Debug("rejected output format", slog.String("format", format))
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}
