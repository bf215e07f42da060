// Package membankcmder
package membankcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/aletheiahq/membank/cmd/membank/config"
	recallcmder "github.com/aletheiahq/membank/cmd/membank/recall"
	retaincmder "github.com/aletheiahq/membank/cmd/membank/retain"
	servecmder "github.com/aletheiahq/membank/cmd/membank/serve"
	versioncmder "github.com/aletheiahq/membank/cmd/version"
)

const membankLongDesc string = `Membank is long-term memory for your agents.

It captures durable facts from conversations into a remote memory bank and
recalls them into future agent context.

Common commands:
  membank serve            Run the hook and tool server
  membank retain <text>    Store a memory directly
  membank recall <query>   Search stored memories
  membank config           Manage persistent configuration`

const membankShortDesc string = "Membank - Agent Long-Term Memory"

func NewMembankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "membank",
		Short: membankShortDesc,
		Long:  membankLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding the .membank config (default: auto-discover)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(recallcmder.NewRecallCmd())
	cmd.AddCommand(retaincmder.NewRetainCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
