// Package configcmder provides the config command for managing persistent
// membank configuration stored in the .membank/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent membank configuration.

Configuration is stored as config.toml in the .membank/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  service.base_url, service.bank, service.api_key,
  hooks.auto_retain, hooks.auto_recall,
  retention.max_per_turn, retention.min_length,
  recall.max_tokens, recall.max_injected,
  api.listen

Use subcommands to get, set, or list configuration values:
  membank config set <key> <value>    Set a configuration value
  membank config get <key>            Get a configuration value
  membank config list                 List all configuration values

Examples:
  membank config set service.bank aletheia
  membank config set hooks.auto_recall true
  membank config get service.base_url
  membank config list`

const configShortDesc string = "Manage persistent membank configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
