package cmd

import (
	"fmt"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/history"
	"github.com/snapseries/snapseries/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig reads and validates the history backend settings.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without a snapshot directory.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	if err := history.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyConfigSetupWrapper validates the backend without opening a store.
// Clearing and migrating manage their own connection.
func historyConfigSetupWrapper(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of render runs",
	Long: `Manage the optional record of render runs and their plotted points.

When --history-backend is set, every render stores one run row (identifier,
timing, snapshot directory, build statistics, artifact paths, configuration)
and the points it plotted.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show run counts and table sizes
  clear   - Remove all recorded runs
  export  - Write runs and points to Parquet
  migrate - Apply schema migrations

Examples:
  # Check history status
  snapseries history status --history-backend sqlite

  # Export everything for DuckDB or pandas
  snapseries history export --history-backend sqlite --output-file runs`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and points",
	Long: `Delete all recorded run history from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Clear SQLite history
  snapseries history clear --history-backend sqlite

  # Clear MySQL history (set connection string via env variable)
  SNAPSERIES_HISTORY_BACKEND=mysql SNAPSERIES_HISTORY_DB_CONNECT="..." snapseries history clear`,
	PreRunE: historyConfigSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := history.GetDBFilePath()
		if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect != "" {
			dbFilePath = cfg.HistoryDBConnect
		}
		if err := history.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics",
	Long: `Show information about the recorded run history.

Displays:
- Backend type and connection status
- Total number of runs and plotted points
- Last and oldest run timestamps
- Row counts per table

Examples:
  snapseries history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get run history status", fmt.Errorf("run history is not enabled"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports the run history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs and points to Parquet",
	Long: `Export all recorded runs and their points to Parquet files.

Writes two files next to --output-file:
- <output-file>.runs.parquet   - one row per render run
- <output-file>.points.parquet - one row per plotted point

Examples:
  snapseries history export --history-backend sqlite --output-file snapseries

  # Query with DuckDB
  duckdb -c "SELECT label, value FROM read_parquet('snapseries.points.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  snapseries history migrate --history-backend sqlite

  # Migrate to specific version
  snapseries history migrate --history-backend sqlite --target-version 2

  # Rollback to initial state
  snapseries history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyConfigSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
