package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				fmt.Fprintf(out, "[%s] %-16s %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
			}
			return err
		},
	}
}
