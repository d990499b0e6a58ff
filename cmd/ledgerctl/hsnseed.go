package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"petledger/internal/hsnseed"
)

func newHSNSeedCmd() *cobra.Command {
	var (
		outPath   string
		batchSize int
	)
	cmd := &cobra.Command{
		Use:   "hsn-seed <workbook.xlsx>",
		Short: "Convert an HSN/SAC master workbook into SQL for the hsn_codes table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening workbook: %w", err)
			}
			defer in.Close()

			entries, err := hsnseed.ReadWorkbook(in)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no HSN/SAC rows found in %s", args[0])
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			if err := hsnseed.WriteSQL(w, entries, batchSize); err != nil {
				return fmt.Errorf("writing seed SQL: %w", err)
			}
			slog.Info("generated HSN seed", slog.Int("entries", len(entries)), slog.String("out", outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write SQL to this file instead of stdout")
	cmd.Flags().IntVar(&batchSize, "batch-size", hsnseed.DefaultBatchSize, "rows per INSERT statement")
	return cmd
}
