package main

import (
	"fmt"
	"log/slog"

	"github.com/Joseda-hg/notebook/internal/report"
	"github.com/spf13/cobra"
)

var out string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every note to an .xlsx report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dest := cfg.ReportPath
		if out != "" {
			dest = out
		}

		summary, err := report.ExportDatabase(cmd.Context(), cfg.DBPath, dest)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", summary.Rows, summary.Path)

		if cfg.OpenReport {
			if err := report.Open(summary.Path); err != nil {
				slog.Warn("open report", "path", summary.Path, "error", err)
			}
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "destination file (defaults to report_path from config)")
	rootCmd.AddCommand(exportCmd)
}
