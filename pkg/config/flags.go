package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --bank on
// "membank serve", "membank recall", and "membank retain").
type Flag struct {
	// Name is the long flag name (e.g. "bank").
	Name string

	// Shorthand is the one-letter short flag (e.g. "b"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "service.bank").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of registry keys to Flag structs.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddBoolFlag, AddIntFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagBaseURL    = "base-url"
	FlagBank       = "bank"
	FlagAPIKey     = "api-key"
	FlagAutoRetain = "auto-retain"
	FlagAutoRecall = "auto-recall"
	FlagListen     = "listen"
)

// Flags is the shared registry used by membank commands.
var Flags = FlagSet{
	FlagBaseURL: {
		Name:        "base-url",
		Shorthand:   "u",
		ViperKey:    "service.base_url",
		Description: "Memory service base URL",
	},
	FlagBank: {
		Name:        "bank",
		Shorthand:   "b",
		ViperKey:    "service.bank",
		Description: "Memory bank (partition) to target",
	},
	FlagAPIKey: {
		Name:        "api-key",
		ViperKey:    "service.api_key",
		Description: "Bearer credential for the memory service",
	},
	FlagAutoRetain: {
		Name:        "auto-retain",
		ViperKey:    "hooks.auto_retain",
		Description: "Automatically capture user messages at turn end",
	},
	FlagAutoRecall: {
		Name:        "auto-recall",
		ViperKey:    "hooks.auto_recall",
		Description: "Automatically inject recalled memories at turn start",
	},
	FlagListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "api.listen",
		Description: "Address for the hook/tool server to listen on",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string, target *bool) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
