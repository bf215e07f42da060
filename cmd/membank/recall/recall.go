// Package recallcmder provides the recall command for querying stored memories.
package recallcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aletheiahq/membank/pkg/bank"
	"github.com/aletheiahq/membank/pkg/cliui"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/logger"
)

type recallCommander struct {
	maxTokens int
	tags      []string
	quiet     bool
	jsonOut   bool

	baseURL string
	bank    string
	apiKey  string

	debug  bool
	logger *slog.Logger
}

const recallLongDesc string = `Search stored memories.

Queries the memory bank for entries relevant to the given text and prints
them ranked by relevance. Requires a reachable memory service.

Use --quiet to output only memory contents, one per line. This is useful for
piping into other commands.

Example:
  membank recall "what editor does the user prefer"
  membank recall "deployment process" --tags conversation --max-tokens 500`

const recallShortDesc string = "Search stored memories"

func NewRecallCmd() *cobra.Command {
	cmder := &recallCommander{}

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: recallShortDesc,
		Long:  recallLongDesc,
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

	cmd.Flags().IntVarP(&cmder.maxTokens, "max-tokens", "t", 0, "Token budget for returned memories (default: service default)")
	cmd.Flags().StringSliceVar(&cmder.tags, "tags", nil, "Restrict results to memories carrying all of these tags")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only memory contents, one per line")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Output results as JSON")
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

func (c *recallCommander) run(cfg *config.Config, query string) error {
	c.logger = logger.New(logger.WithDebug(c.debug))

	client, err := bank.NewClient(bank.Config{
		BaseURL: cfg.Service.BaseURL,
		Bank:    cfg.Service.Bank,
		APIKey:  cfg.Service.APIKey,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	results, err := client.Recall(context.Background(), query, bank.RecallOptions{
		MaxTokens: c.maxTokens,
		Tags:      c.tags,
	})
	if err != nil {
		return fmt.Errorf("recall failed: %w", err)
	}

	if c.jsonOut {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if c.quiet {
		for _, r := range results {
			fmt.Println(r.Content)
		}
		return nil
	}

	if len(results) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No memories found."))
		return nil
	}

	fmt.Printf("\n  Found %d memories in %s:\n\n",
		len(results),
		cliui.KeyStyle.Render(client.Bank()),
	)
	for i, r := range results {
		fmt.Printf("  %s %s %s\n",
			cliui.RankStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.ContentStyle.Render(strings.TrimSpace(r.Content)),
			cliui.ScoreStyle.Render(fmt.Sprintf("(relevance: %d%%)", int(math.Round(r.Score*100)))),
		)
	}
	fmt.Println()

	return nil
}
