//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/snapseries/snapseries/internal/history"
	"github.com/snapseries/snapseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns its connection string.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "snapseries",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/snapseries?parseTime=true", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
}

// TestHistoryBackends runs the CLI and the store against real databases.
func TestHistoryBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		start   func(t *testing.T) string
	}{
		{"mysql", schema.MySQLBackend, startMySQL},
		{"postgresql", schema.PostgreSQLBackend, startPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connStr := tt.start(t)
			env := []string{
				"SNAPSERIES_HISTORY_BACKEND=" + string(tt.backend),
				"SNAPSERIES_HISTORY_DB_CONNECT=" + connStr,
			}

			t.Run("cli", func(t *testing.T) {
				dir := writeSnapshots(t)
				work := t.TempDir()

				_, err := runCommand(t, env, "history", "clear")
				require.NoError(t, err)

				_, err = runCommand(t, env, "history", "migrate")
				require.NoError(t, err)

				_, err = runCommand(t, env, "render", dir, "--raster", "none", "--svg-file", filepath.Join(work, "chart.svg"))
				require.NoError(t, err)

				out, err := runCommand(t, env, "history", "status")
				require.NoError(t, err)
				assert.Contains(t, out, "Total Runs: 1")

				prefix := filepath.Join(work, "export")
				_, err = runCommand(t, env, "history", "export", "--output-file", prefix)
				require.NoError(t, err)
				assert.FileExists(t, prefix+".points.parquet")

				_, err = runCommand(t, env, "history", "migrate", "--target-version", "0")
				require.NoError(t, err)
			})

			t.Run("store", func(t *testing.T) {
				require.NoError(t, history.ClearHistory(tt.backend, "", connStr))

				store, err := history.NewHistoryStore(tt.backend, connStr)
				require.NoError(t, err)
				defer func() { _ = store.Close() }()

				start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
				runID, err := store.BeginRun(start, "c0ffee00-0000-4000-8000-000000000001", "/snapshots", map[string]any{"metric": "count"})
				require.NoError(t, err)
				require.Positive(t, runID)

				day := time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)
				points := []schema.SeriesPoint{
					{Label: "14.11.2023", Value: 5, Time: day, File: "state.1700000000"},
					{Label: "16.11.2023", Value: 7, Time: day.AddDate(0, 0, 2), File: "state.1700172800"},
				}
				require.NoError(t, store.RecordPoints(runID, points))

				stats := schema.BuildStats{FilesListed: 3, Timestamped: 3, Loaded: 3, UniqueLabels: 3, Plotted: 2}
				require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), stats, "/tmp/chart.svg", ""))

				status, err := store.GetStatus()
				require.NoError(t, err)
				assert.True(t, status.Connected)
				assert.Equal(t, 1, status.TotalRuns)
				assert.Equal(t, 2, status.TotalPoints)

				runs, err := store.GetAllRuns()
				require.NoError(t, err)
				require.Len(t, runs, 1)
				require.NotNil(t, runs[0].RunDurationMs)
				assert.Equal(t, int32(1500), *runs[0].RunDurationMs)
				assert.Nil(t, runs[0].RasterPath)

				stored, err := store.GetAllPoints()
				require.NoError(t, err)
				require.Len(t, stored, 2)
				assert.Equal(t, "16.11.2023", stored[1].Label)
				assert.True(t, day.AddDate(0, 0, 2).Equal(stored[1].SnapTime))
			})
		})
	}
}
