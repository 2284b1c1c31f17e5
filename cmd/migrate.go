package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	databasePrimary = "primary"
	databasePortmap = "portmap"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "run the sql migrations of one database",
		Long:  `Apply db/migrations/<database> to the primary or the portmap database, or roll back its latest version.`,
	}
	migrateRollback bool
	migrateDir      string
	migrateDatabase string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.Flags().StringVar(&migrateDatabase, "database", databasePrimary, "database to migrate: primary or portmap")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "root of the per-database migration directories")
}

// migrationTarget picks the connection settings and directory for a database name.
func migrationTarget(cfg *internal.Config, database, root string) (internal.DatabaseConfig, string, error) {
	switch database {
	case databasePrimary:
		return cfg.Database, filepath.Join(root, databasePrimary), nil
	case databasePortmap:
		return cfg.PortmapDatabase, filepath.Join(root, databasePortmap), nil
	default:
		return internal.DatabaseConfig{}, "", fmt.Errorf("unknown database %q, want primary or portmap", database)
	}
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.Configure(cmd.OutOrStdout(), cfg.Logging.Level, cfg.Logging.Format)

	dbCfg, dir, err := migrationTarget(cfg, migrateDatabase, migrateDir)
	if err != nil {
		return err
	}

	db, err := goose.OpenDBWithDriver(driver, dbCfg.GetDSN())
	if err != nil {
		return fmt.Errorf("goose: failed to open %s database: %w", migrateDatabase, err)
	}
	defer db.Close()

	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	command := "up"
	if migrateRollback {
		command = "down"
	}
	log.Info("running migrations", "database", migrateDatabase, "dir", dir, "command", command)

	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
