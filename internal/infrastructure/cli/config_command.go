package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quiverlabs/nlsh/internal/app"
	"github.com/quiverlabs/nlsh/internal/domain"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nlsh configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.ConfigLoader.Path(), raw)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Read one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			value, err := configGet(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write one configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := configSet(cfg, args[0], args[1])
			if err != nil {
				return err
			}
			if err := container.ConfigLoader.Save(updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration reset: %s\n", container.ConfigLoader.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
		},
	})

	return cmd
}

func configGet(cfg domain.Config, key string) (string, error) {
	switch key {
	case "preferences.default_model":
		return cfg.Preferences.DefaultModel, nil
	case "preferences.auto_execute_safe":
		return strconv.FormatBool(cfg.Preferences.AutoExecuteSafe), nil
	case "preferences.timeout":
		return strconv.Itoa(cfg.GetTimeoutSeconds()), nil
	case "safety.level":
		return cfg.Safety.Level, nil
	case "safety.rules_file":
		return cfg.Safety.RulesFile, nil
	case "execution.shell":
		return cfg.Execution.Shell, nil
	case "history.enabled":
		return strconv.FormatBool(cfg.History.Enabled), nil
	case "history.retention_days":
		return strconv.Itoa(cfg.History.RetentionDays), nil
	case "cache.enabled":
		return strconv.FormatBool(cfg.Cache.Enabled), nil
	case "cache.max_entries":
		return strconv.Itoa(cfg.GetCacheMaxEntries()), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func configSet(cfg domain.Config, key, value string) (domain.Config, error) {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false", key)
		}
		return b, nil
	}
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s expects a non-negative integer", key)
		}
		return n, nil
	}

	var err error
	switch key {
	case "preferences.default_model":
		if _, ok := cfg.FindModelByName(value); !ok {
			return cfg, fmt.Errorf("model %s not configured", value)
		}
		cfg.Preferences.DefaultModel = value
	case "preferences.auto_execute_safe":
		cfg.Preferences.AutoExecuteSafe, err = parseBool()
	case "preferences.timeout":
		cfg.Preferences.TimeoutSeconds, err = parseInt()
	case "safety.level":
		level := strings.ToLower(value)
		switch domain.SafetyLevel(level) {
		case domain.SafetyStrict, domain.SafetyModerate, domain.SafetyRelaxed:
			cfg.Safety.Level = level
		default:
			return cfg, fmt.Errorf("safety.level expects strict, moderate or relaxed")
		}
	case "safety.rules_file":
		cfg.Safety.RulesFile = value
	case "execution.shell":
		cfg.Execution.Shell = value
	case "history.enabled":
		cfg.History.Enabled, err = parseBool()
	case "history.retention_days":
		cfg.History.RetentionDays, err = parseInt()
	case "cache.enabled":
		cfg.Cache.Enabled, err = parseBool()
	case "cache.max_entries":
		cfg.Cache.MaxEntries, err = parseInt()
	default:
		return cfg, fmt.Errorf("unknown config key %q", key)
	}
	return cfg, err
}
