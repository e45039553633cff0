// Package main provides the crawler command-line tool for fetching news-wire articles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"aacrawler/internal/config"
	"aacrawler/internal/logger"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app carries state shared by all subcommands.
type app struct {
	cfg        *config.Config
	logger     *logger.Logger
	configFile string
	debug      bool
}

func main() {
	// Load .env early so credentials are visible to config resolution
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "crawler",
		Short:         "Fetch articles from the news-wire API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "",
		fmt.Sprintf("Path to YAML configuration file (default %s if present)", config.DefaultConfigPath))
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		a.crawlCommand(),
		a.documentCommand(),
		a.summaryCommand(),
		versionCommand(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Resolve(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.debug {
		cfg.Logging.Level = "debug"
	}

	a.cfg = cfg
	a.logger = logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	a.logger.Debug("configuration loaded", "config", cfg.String())

	return nil
}
