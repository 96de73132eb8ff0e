package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/database"
)

func newMigrateCommand() *cobra.Command {
	var (
		dir   string
		steps int
	)

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(_ *cobra.Command, args []string) error {
			direction, err := database.ParseDirection(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := bootstrap.CreateLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return database.Migrate(cfg.Database, dir, direction, steps, log)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", database.DefaultMigrationsDir, "migrations directory")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back with down")
	return cmd
}
