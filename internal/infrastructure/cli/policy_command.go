package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/safety"
)

func newPolicyCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect and edit the safety policy",
	}

	cmd.AddCommand(newPolicyStatusCommand(container))
	cmd.AddCommand(newPolicyRulesCommand(container))
	cmd.AddCommand(newPolicyLevelCommand(container))
	cmd.AddCommand(newPolicyListCommand(container, "block", "Blocked command substrings",
		func(cfg *domain.Config) *[]string { return &cfg.Safety.BlockedCommands }))
	cmd.AddCommand(newPolicyListCommand(container, "allow", "Confirmed pattern labels",
		func(cfg *domain.Config) *[]string { return &cfg.Safety.ConfirmedPatterns }))
	return cmd
}

func newPolicyStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the active policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Safety level: %s\n", cfg.Safety.Level)
			fmt.Fprintf(out, "Rules file: %s\n", cfg.Safety.RulesFile)
			fmt.Fprintf(out, "Blocked commands: %d\n", len(cfg.Safety.BlockedCommands))
			fmt.Fprintf(out, "Confirmed patterns: %d\n", len(cfg.Safety.ConfirmedPatterns))
			return nil
		},
	}
}

func newPolicyRulesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active pattern catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			catalog, err := safety.NewCatalog(cfg.Safety.RulesFile)
			if err != nil {
				return fmt.Errorf("load rules file: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, rule := range catalog.All() {
				fmt.Fprintf(out, "%-8s %-26s %s\n", rule.Severity, rule.Label, rule.Pattern())
			}
			return nil
		},
	}
}

func newPolicyLevelCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "level [strict|moderate|relaxed]",
		Short: "Show or change the safety level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Safety.Level)
				return nil
			}

			level := strings.ToLower(args[0])
			switch domain.SafetyLevel(level) {
			case domain.SafetyStrict, domain.SafetyModerate, domain.SafetyRelaxed:
			default:
				return fmt.Errorf("level must be strict, moderate or relaxed")
			}
			cfg.Safety.Level = level
			if err := container.ConfigLoader.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "safety level set to %s\n", level)
			return nil
		},
	}
}

// newPolicyListCommand builds the shared add/remove/list tree used by both
// the blocked-command list and the confirmed-pattern list.
func newPolicyListCommand(container *app.Container, name, what string, field func(*domain.Config) *[]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", strings.ToLower(what)),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("%s currently configured", what),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			entries := *field(&cfg)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(none)")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <entry>",
		Short: fmt.Sprintf("Add an entry to the %s list", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			entries := field(&cfg)
			for _, existing := range *entries {
				if existing == args[0] {
					fmt.Fprintf(cmd.OutOrStdout(), "%q already present\n", args[0])
					return nil
				}
			}
			*entries = append(*entries, args[0])
			if err := container.ConfigLoader.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <entry>",
		Short: fmt.Sprintf("Remove an entry from the %s list", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			entries := field(&cfg)
			kept := (*entries)[:0]
			removed := false
			for _, existing := range *entries {
				if existing == args[0] {
					removed = true
					continue
				}
				kept = append(kept, existing)
			}
			if !removed {
				return fmt.Errorf("%q not found", args[0])
			}
			*entries = kept
			if err := container.ConfigLoader.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[0])
			return nil
		},
	})

	return cmd
}
