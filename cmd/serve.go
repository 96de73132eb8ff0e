package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/bootstrap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return bootstrap.Serve(cmd.Context(), cfg)
		},
	}
}
