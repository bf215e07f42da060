package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aletheiahq/membank/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the MEMBANK_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (MEMBANK_SERVICE_BASE_URL, MEMBANK_API_LISTEN, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: MEMBANK_SERVICE_BANK, MEMBANK_HOOKS_AUTO_RECALL, etc.
	v.SetEnvPrefix("MEMBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Service
	v.SetDefault("service.base_url", d.Service.BaseURL)
	v.SetDefault("service.bank", d.Service.Bank)
	v.SetDefault("service.api_key", d.Service.APIKey)

	// Hooks
	v.SetDefault("hooks.auto_retain", *d.Hooks.AutoRetain)
	v.SetDefault("hooks.auto_recall", *d.Hooks.AutoRecall)

	// Retention
	v.SetDefault("retention.max_per_turn", d.Retention.MaxPerTurn)
	v.SetDefault("retention.min_length", d.Retention.MinLength)

	// Recall
	v.SetDefault("recall.max_tokens", d.Recall.MaxTokens)
	v.SetDefault("recall.max_injected", d.Recall.MaxInjected)

	// API
	v.SetDefault("api.listen", d.API.Listen)
}

// FromViper materializes an immutable Config from the viper precedence
// chain. Called once at startup; the result is passed to component
// constructors and never mutated.
func FromViper(v *viper.Viper) *Config {
	autoRetain := v.GetBool("hooks.auto_retain")
	autoRecall := v.GetBool("hooks.auto_recall")

	return &Config{
		Version: v.GetInt("version"),
		Service: ServiceConfig{
			BaseURL: v.GetString("service.base_url"),
			Bank:    v.GetString("service.bank"),
			APIKey:  v.GetString("service.api_key"),
		},
		Hooks: HooksConfig{
			AutoRetain: &autoRetain,
			AutoRecall: &autoRecall,
		},
		Retention: RetentionConfig{
			MaxPerTurn: v.GetInt("retention.max_per_turn"),
			MinLength:  v.GetInt("retention.min_length"),
		},
		Recall: RecallConfig{
			MaxTokens:   v.GetInt("recall.max_tokens"),
			MaxInjected: v.GetInt("recall.max_injected"),
		},
		API: APIConfig{
			Listen: v.GetString("api.listen"),
		},
	}
}
