package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/internal/services"
	"log-owl.com/log-owl/pkg/timestamp"
)

var (
	reportFrom string
	reportTo   string
	reportJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print tracked time per task",
	Long:  "Prints merged tracked time per task between --from and --to (RFC 3339). Defaults to the current UTC day.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from, to := reportFrom, reportTo
		if from == "" || to == "" {
			now := time.Now().UTC()
			day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if from == "" {
				from = timestamp.Format(day)
			}
			if to == "" {
				to = timestamp.Format(day.Add(24 * time.Hour))
			}
		}

		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(database)

		reports := services.NewReportService(
			repository.NewTimeEntryRepository(database),
			repository.NewTaskRepository(database),
		)
		report, err := reports.BuildReport(ctx, from, to)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reportJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TASK\tINTERVALS\tTOTAL\n")
		for _, row := range report.Rows {
			fmt.Fprintf(w, "%s\t%d\t%s\n", row.TaskTitle, len(row.Intervals), services.Minutes(row.TotalMinutes))
		}
		fmt.Fprintf(w, "\t\t%s\n", services.Minutes(report.TotalMinutes))
		return w.Flush()
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start, RFC 3339")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end, RFC 3339")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(reportCmd)
}
