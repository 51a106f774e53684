package history

import (
	"errors"
	"fmt"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/parquet"
)

// ExecuteHistoryExport exports the run history of the global manager to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return exportHistory(Manager, outputFile)
}

// exportHistory writes runs and points to outputFile with per-table suffixes.
func exportHistory(mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()
	if store == nil {
		return errors.New("run history is not enabled. Set --history-backend to sqlite, mysql or postgresql")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total point records: %d\n", status.TableSizes[pointsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	points, err := store.GetAllPoints()
	if err != nil {
		return fmt.Errorf("failed to retrieve points: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetPoints := parquet.ConvertPointRecords(points)
	pointsFile := outputFile + ".points.parquet"
	if err := parquet.WritePointsParquet(parquetPoints, pointsFile); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}
	fmt.Printf("Exported %d points to: %s\n", len(parquetPoints), pointsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")

	return nil
}
