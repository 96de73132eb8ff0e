package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
)

func newGenerateCommand() *cobra.Command {
	var in domain.ProductInput

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one page and print it as JSON without storing it",
		Example: `  seo-generator generate --name "EcoClean Detergent" --category "Cleaning Supplies" \
    --feature Plant-based --feature Biodegradable --keyword "eco detergent" \
    --location Portland --audience "Eco-conscious families"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// Keep stdout clean for the JSON document.
			cfg.Logging.OutputPaths = []string{"stderr"}

			log, err := bootstrap.CreateLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			pipeline, err := bootstrap.SetupPipeline(cmd.Context(), cfg, nil, log)
			if err != nil {
				return err
			}

			result := pipeline.Generate(cmd.Context(), in.Normalize())
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", result.Source)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(result.Document)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Name, "name", "", "product name")
	flags.StringVar(&in.Category, "category", "", "product category")
	flags.StringSliceVar(&in.Features, "feature", nil, "product feature (repeatable)")
	flags.StringSliceVar(&in.Keywords, "keyword", nil, "target keyword (repeatable)")
	flags.StringVar(&in.Location, "location", "", "target location")
	flags.StringVar(&in.TargetAudience, "audience", "", "target audience")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
