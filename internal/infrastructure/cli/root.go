// Package cli wires the cobra command tree and the interactive session UI.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	clipboard := NewClipboard()
	container.AskService.Clipboard = clipboard
	container.DoctorService.Clipboard = clipboard

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "nlsh [prompt]",
		Short: "nlsh - natural language shell assistant",
		Long:  "nlsh converts natural language to shell commands and gates execution behind a risk classifier.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetArgs(args)
			return askCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(askCmd)
	root.AddCommand(newCheckCommand(container))
	root.AddCommand(newReplCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newPolicyCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}
