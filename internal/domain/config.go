package domain

// Config mirrors ~/.nlsh/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Safety              SafetySettings    `yaml:"safety"`
	Execution           ExecutionSettings `yaml:"execution"`
	History             HistorySettings   `yaml:"history"`
	Cache               CacheSettings     `yaml:"cache"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel    string `yaml:"default_model"`
	AutoExecuteSafe bool   `yaml:"auto_execute_safe"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// SafetySettings defines how the risk gate behaves.
type SafetySettings struct {
	Level             string   `yaml:"level"`
	BlockedCommands   []string `yaml:"blocked_commands"`
	ConfirmedPatterns []string `yaml:"confirmed_patterns"`
	RulesFile         string   `yaml:"rules_file"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	Shell string `yaml:"shell"`
}

// HistorySettings controls history retention.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// CacheSettings controls the translation cache.
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// SafetyConfig projects the persisted settings into the classifier's input.
func (c Config) SafetyConfig() SafetyConfig {
	return SafetyConfig{
		Level:             ParseSafetyLevel(c.Safety.Level),
		BlockedCommands:   c.Safety.BlockedCommands,
		ConfirmedPatterns: c.Safety.ConfirmedPatterns,
	}
}

// FindModelByName searches for a model by its name.
func (c Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// GetExecutionShell returns the configured shell, empty meaning auto-detect.
func (c Config) GetExecutionShell() string {
	if c.Execution.Shell == "auto" {
		return ""
	}
	return c.Execution.Shell
}

// GetTimeoutSeconds returns the translation timeout in seconds.
func (c Config) GetTimeoutSeconds() int {
	const defaultTimeoutSeconds = 30

	if c.Preferences.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds
	}
	return c.Preferences.TimeoutSeconds
}

// GetCacheMaxEntries returns the maximum number of cached translations.
func (c Config) GetCacheMaxEntries() int {
	const defaultMaxEntries = 100

	if c.Cache.MaxEntries <= 0 {
		return defaultMaxEntries
	}
	return c.Cache.MaxEntries
}
