// Package cmd implements the seo-generator command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	cfgFile string
	debug   bool
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seo-generator",
		Short:         "Generate SEO landing pages for products",
		Long:          `seo-generator turns a product description into a search-optimized landing page and serves the stored pages over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("config file (default $CONFIG_PATH or %s)", config.DefaultPath))
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(),
		newGenerateCommand(),
		newMigrateCommand(),
		newTokenCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = infraconfig.GetConfigPath(config.DefaultPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
	if cfg.Service.Version == "dev" {
		cfg.Service.Version = Version
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seo-generator %s\n", Version)
		},
	}
}
