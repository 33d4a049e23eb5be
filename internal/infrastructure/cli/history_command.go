package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "no history recorded yet")
				return nil
			}
			for _, rec := range records {
				badge := " "
				if rec.Dangerous {
					badge = "!"
				}
				fmt.Fprintf(out, "%s %-14s %-8s %s\n", badge, humanize.Time(rec.Timestamp), rec.Severity, rec.Command)
				if rec.Prompt != "" {
					fmt.Fprintf(out, "    prompt: %s\n", rec.Prompt)
				}
				fmt.Fprintf(out, "    state: %s  exit: %d  model: %s\n", rec.State, rec.ExitCode, rec.Model)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter records by substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Export history as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := strings.TrimSpace(args[0])
			if err := container.HistoryStore.ExportJSON(dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "history exported to %s\n", dest)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the history store location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), container.HistoryStore.Path())
		},
	})

	return cmd
}
