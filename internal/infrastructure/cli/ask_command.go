package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
	"github.com/quiverlabs/nlsh/internal/domain"
)

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		model   string
		execute bool
		copyCmd bool
		noCache bool
		debug   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [natural language]",
		Short: "Generate a command from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			mode := domain.ModePreview
			if execute {
				mode = domain.ModeExecute
			} else if cfg, err := container.ConfigProvider.Load(ctx); err == nil && cfg.Preferences.AutoExecuteSafe {
				mode = domain.ModeExecute
			}

			req := domain.AskRequest{
				Context:         ctx,
				Prompt:          strings.Join(args, " "),
				ModelOverride:   model,
				Mode:            mode,
				CopyToClipboard: copyCmd,
				NoCache:         noCache,
				Debug:           debug,
			}
			resp, err := container.AskService.Run(req)
			if resp.Command != "" {
				RenderResponse(cmd.OutOrStdout(), resp)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Execute the command (refused when classified dangerous above low severity)")
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy generated command to clipboard")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the translation cache")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Override request timeout")

	return cmd
}

func newCheckCommand(container *app.Container) *cobra.Command {
	var execute bool

	cmd := &cobra.Command{
		Use:   "check <command>",
		Short: "Classify a literal command without translation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := domain.ModePreview
			if execute {
				mode = domain.ModeExecute
			}
			resp, err := container.AskService.Check(cmd.Context(), strings.Join(args, " "), mode)
			if resp.Command != "" {
				RenderResponse(cmd.OutOrStdout(), resp)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Execute the command if the gate allows it")
	return cmd
}
