// Package servecmder provides the serve command running the hook and tool server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aletheiahq/membank/api"
	"github.com/aletheiahq/membank/pkg/config"
	"github.com/aletheiahq/membank/pkg/logger"
	"github.com/aletheiahq/membank/pkg/plugin"
)

type ServeCommander struct {
	listen     string
	baseURL    string
	bank       string
	apiKey     string
	autoRetain bool
	autoRecall bool

	debug  bool
	pretty bool
	logger *slog.Logger
}

const serveLongDesc string = `Run the membank server.

The server exposes the lifecycle hook endpoints hosts post conversation
events to, plus the MCP tool surface mounted at /mcp:

  POST /hooks/turn-start   May return context to prepend to the model input
  POST /hooks/turn-end     Acks immediately; retention runs asynchronously
  ALL  /mcp                memory_recall and memory_retain tools

Configuration resolves flags over MEMBANK_* environment variables over
config.toml over built-in defaults.`

const serveShortDesc string = "Run the membank hook and tool server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			return cmder.run(cfg)
		},
	}

	cmd.Flags().BoolVar(&cmder.pretty, "pretty", false, "Human-readable logs instead of JSON")
	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagBank, &cmder.bank)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIKey, &cmder.apiKey)
	config.AddBoolFlag(cmd, config.Flags, config.FlagAutoRetain, &cmder.autoRetain)
	config.AddBoolFlag(cmd, config.Flags, config.FlagAutoRecall, &cmder.autoRecall)

	return cmd
}

// resolveConfig materializes the final config from the viper precedence
// chain: flags > env > config file > defaults.
func resolveConfig(cmd *cobra.Command, configDir string) (*config.Config, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagListen,
		config.FlagBaseURL,
		config.FlagBank,
		config.FlagAPIKey,
		config.FlagAutoRetain,
		config.FlagAutoRecall,
	})

	return config.FromViper(v), nil
}

func (c *ServeCommander) run(cfg *config.Config) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(c.pretty),
		logger.WithJSON(!c.pretty),
	)

	p, err := plugin.New(cfg, c.logger)
	if err != nil {
		return fmt.Errorf("creating plugin: %w", err)
	}

	if err := p.Start(context.Background()); err != nil {
		return fmt.Errorf("starting plugin: %w", err)
	}
	defer p.Stop(context.Background()) //nolint:errcheck

	server, err := api.NewServer(api.Config{ListenAddr: cfg.API.Listen}, p, c.logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}
