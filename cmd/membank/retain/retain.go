// Package retaincmder provides the retain command for storing a memory directly.
package retaincmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/cliui"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/logger"
	"github.com/aletheiahq/membank/pkg/utils"
)

type retainCommander struct {
	memoryContext string
	tags          []string

	baseURL string
	bank    string
	apiKey  string

	debug  bool
	logger *slog.Logger
}

const retainLongDesc string = `Store a memory directly.

Submits the given text to the memory bank as a single entry, bypassing the
automatic retention policy. Useful for seeding a bank or pinning facts the
policy would never capture.

Example:
  membank retain "User prefers dark mode" --tags preference
  membank retain "Deploys happen from the release branch" --context "team runbook"`

const retainShortDesc string = "Store a memory directly"

func NewRetainCmd() *cobra.Command {
	cmder := &retainCommander{}

	cmd := &cobra.Command{
		Use:   "retain <content>",
		Short: retainShortDesc,
		Long:  retainLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			cfg, err := resolveConfig(cmd, configDir)
			if err != nil {
				return err
			}

			return cmder.run(cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cmder.memoryContext, "context", "", "Provenance note attached to the memory")
	cmd.Flags().StringSliceVar(&cmder.tags, "tags", nil, "Tags for later filtering")
	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagBank, &cmder.bank)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIKey, &cmder.apiKey)

	return cmd
}

func resolveConfig(cmd *cobra.Command, configDir string) (*config.Config, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagBaseURL,
		config.FlagBank,
		config.FlagAPIKey,
	})

	return config.FromViper(v), nil
}

func (c *retainCommander) run(cfg *config.Config, content string) error {
	c.logger = logger.New(logger.WithDebug(c.debug))

	client, err := bank.NewClient(bank.Config{
		BaseURL: cfg.Service.BaseURL,
		Bank:    cfg.Service.Bank,
		APIKey:  cfg.Service.APIKey,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	err = cliui.Step(os.Stdout, "Storing memory", func() error {
		_, err := client.Retain(context.Background(), content, bank.RetainOptions{
			Context: c.memoryContext,
			Tags:    c.tags,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("retain failed: %w", err)
	}

	fmt.Printf("\n  %s Stored in %s: %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(client.Bank()),
		cliui.ValueStyle.Render(utils.Truncate(content, 100)),
	)

	return nil
}
