// Package main provides a performance benchmarking tool for the snapseries CLI.
// It generates snapshot directories of increasing size, measures execution times
// of the series and render commands with run history disabled and enabled,
// and writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - snapseries binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where snapshot fixtures and charts are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (average without history, first and average of later runs with history).
type BenchmarkResult struct {
	Snapshots     int
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Sizes         []int
	ChatsPerSnap  int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Sizes:         []int{100, 1000, 10000},
		ChatsPerSnap:  200,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the snapseries binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("snapseries"); err != nil {
		return fmt.Errorf("snapseries binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateSnapshots writes n daily snapshots into a fresh directory and returns its path.
// The entity count changes every third day so collapsing has work to do.
func generateSnapshots(config BenchmarkConfig, n int) (string, error) {
	dir := filepath.Join(config.WorkDir, fmt.Sprintf("snapshots_%d", n))
	if err := os.RemoveAll(dir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := range n {
		count := config.ChatsPerSnap + i/3
		var b strings.Builder
		b.WriteString(`{"chats":[`)
		for c := range count {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `{"id":%d,"title":"chat %d"}`, c, c)
		}
		b.WriteString(`]}`)

		ts := start.AddDate(0, 0, i).Unix()
		name := filepath.Join(dir, fmt.Sprintf("state.%d", ts))
		if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// runBenchmarks executes all benchmark tests across configured fixture sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Sizes), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, size := range config.Sizes {
		fmt.Printf("Generating %d snapshots\n", size)
		dir, err := generateSnapshots(config, size)
		if err != nil {
			fmt.Printf("Warning: failed to generate snapshots: %v\n", err)
			continue
		}

		results = append(results, runBenchmarkSuite(config, size, dir, "series", "series build"))

		svg := filepath.Join(config.WorkDir, fmt.Sprintf("chart_%d.svg", size))
		results = append(results, runBenchmarkSuite(config, size, dir, "render", "render (svg only)",
			"--raster", "none", "--svg-file", svg))
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, size int, dir, command, description string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("Running %s on %d snapshots\n", description, size)

	historyDB := filepath.Join(config.WorkDir, "benchmark_history.db")
	_ = os.Remove(historyDB)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dir, command, historyBackend, historyDB, numRuns, extraArgs)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No history
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: SQLite history
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Snapshots:     size,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a snapseries command multiple times and returns the first time and the later times
func runBenchmark(config BenchmarkConfig, dir, command, historyBackend, historyDB string, numRuns int, extraArgs []string) (coldTime float64, warmTimes []float64) {
	args := []string{command, dir, "--history-backend", historyBackend, "--emoji", "no", "--color", "no"}
	if historyBackend == "sqlite" {
		args = append(args, "--history-db-connect", historyDB)
	}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("snapseries", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	completionPhrase := "Series built in"
	if command == "render" {
		completionPhrase = "Render completed in"
	}
	return strings.Contains(string(output), completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/snapseries_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"snapshots", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{fmt.Sprint(result.Snapshots), result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "series", "Series Build:")
	printCommandSummary(results, "render", "Render:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %6d snapshots: No-history: %s, Cold: %s, Warm: %s\n", result.Snapshots, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
