package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent membank configuration stored as
// config.toml in the .membank/ directory. The TOML layout uses sections for
// logical grouping. A loaded Config is immutable for the process lifetime;
// components receive it (or a section of it) at construction and never look
// it up ambiently.
type Config struct {
	Version   int             `toml:"version"`
	Service   ServiceConfig   `toml:"service"`
	Hooks     HooksConfig     `toml:"hooks"`
	Retention RetentionConfig `toml:"retention"`
	Recall    RecallConfig    `toml:"recall"`
	API       APIConfig       `toml:"api"`
}

// ServiceConfig holds the remote memory service connection settings.
type ServiceConfig struct {
	// BaseURL is the memory service URL (e.g. "http://localhost:8001").
	BaseURL string `toml:"base_url,omitempty"`

	// Bank is the memory partition all operations target.
	Bank string `toml:"bank,omitempty"`

	// APIKey is an optional bearer credential. When empty no auth header
	// is sent.
	APIKey string `toml:"api_key,omitempty"`
}

// HooksConfig toggles the automatic lifecycle hooks. Pointers distinguish
// "unset" from an explicit false so defaults can be merged in; LoadConfig
// always returns both fields populated.
type HooksConfig struct {
	AutoRetain *bool `toml:"auto_retain,omitempty"`
	AutoRecall *bool `toml:"auto_recall,omitempty"`
}

// RetentionConfig holds auto-retain tuning knobs.
type RetentionConfig struct {
	// MaxPerTurn caps retain submissions per turn-end event.
	MaxPerTurn int `toml:"max_per_turn,omitempty"`

	// MinLength is the minimum trimmed candidate length; shorter
	// fragments are never submitted.
	MinLength int `toml:"min_length,omitempty"`
}

// RecallConfig holds auto-recall tuning knobs.
type RecallConfig struct {
	// MaxTokens is the token budget passed on hook-path recall queries.
	MaxTokens int `toml:"max_tokens,omitempty"`

	// MaxInjected caps the number of memories rendered into the
	// context-injection block.
	MaxInjected int `toml:"max_injected,omitempty"`
}

// APIConfig holds hook/tool server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"service.base_url": {
		get: func(c *Config) string { return c.Service.BaseURL },
		set: func(c *Config, v string) error { c.Service.BaseURL = v; return nil },
	},
	"service.bank": {
		get: func(c *Config) string { return c.Service.Bank },
		set: func(c *Config, v string) error { c.Service.Bank = v; return nil },
	},
	"service.api_key": {
		get: func(c *Config) string { return c.Service.APIKey },
		set: func(c *Config, v string) error { c.Service.APIKey = v; return nil },
	},
	"hooks.auto_retain": {
		get: func(c *Config) string { return formatBoolPtr(c.Hooks.AutoRetain) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for hooks.auto_retain: %w", err)
			}
			c.Hooks.AutoRetain = &b
			return nil
		},
	},
	"hooks.auto_recall": {
		get: func(c *Config) string { return formatBoolPtr(c.Hooks.AutoRecall) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for hooks.auto_recall: %w", err)
			}
			c.Hooks.AutoRecall = &b
			return nil
		},
	},
	"retention.max_per_turn": {
		get: func(c *Config) string { return formatInt(c.Retention.MaxPerTurn) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for retention.max_per_turn: %q", v)
			}
			c.Retention.MaxPerTurn = n
			return nil
		},
	},
	"retention.min_length": {
		get: func(c *Config) string { return formatInt(c.Retention.MinLength) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value for retention.min_length: %q", v)
			}
			c.Retention.MinLength = n
			return nil
		},
	},
	"recall.max_tokens": {
		get: func(c *Config) string { return formatInt(c.Recall.MaxTokens) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for recall.max_tokens: %q", v)
			}
			c.Recall.MaxTokens = n
			return nil
		},
	},
	"recall.max_injected": {
		get: func(c *Config) string { return formatInt(c.Recall.MaxInjected) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value for recall.max_injected: %q", v)
			}
			c.Recall.MaxInjected = n
			return nil
		},
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
}

func formatBoolPtr(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
