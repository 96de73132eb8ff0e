package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/config"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// DefaultMigrationsDir holds the SQL migrations, relative to the working directory.
const DefaultMigrationsDir = "migrations"

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a direction given on the command line.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q (must be \"up\" or \"down\")", s)
	}
}

// Migrate applies every pending migration for Up, or rolls back steps
// migrations for Down (at least one).
func Migrate(cfg config.DatabaseConfig, dir string, direction Direction, steps int, log logger.Logger) error {
	cfg.SetDefaults()
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.URL())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		if steps <= 0 {
			steps = 1
		}
		err = m.Steps(-steps)
	default:
		return fmt.Errorf("invalid direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migrations to apply", logger.String("direction", string(direction)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", verr)
	}
	log.Info("Migrations applied",
		logger.String("direction", string(direction)),
		logger.Int64("version", int64(version)),
		logger.Bool("dirty", dirty),
	)
	return nil
}
