package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Francis-Komizu/Tacotron2/internal/bench"
	"github.com/Francis-Komizu/Tacotron2/internal/config"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		input     string
		runs      int
		format    string
		maxMeanUS int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark cleaner latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(input) == "" {
				return errors.New("--text is required for bench")
			}
			if runs < 1 {
				return errors.New("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return errors.New("--format must be 'table' or 'json'")
			}

			names, err := config.NormalizeCleaners(cfg.Text.Cleaners)
			if err != nil {
				return err
			}

			cleaner, err := buildCleaner(cfg)
			if err != nil {
				return err
			}

			results, err := runBench(cleaner, names, input, runs)
			if err != nil {
				return err
			}

			stats := bench.ComputeStats(bench.Durations(results))

			switch format {
			case "json":
				bench.FormatJSON(results, stats, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckMeanThreshold(stats.Mean, time.Duration(maxMeanUS)*time.Microsecond)
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to clean for each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of cleaning runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().IntVar(&maxMeanUS, "max-mean-us", 0, "Exit non-zero if mean latency exceeds this many microseconds (0 = disabled)")

	return cmd
}

func runBench(c sequenceCleaner, names []string, input string, runs int) ([]bench.RunResult, error) {
	results := make([]bench.RunResult, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		out, err := c.CleanSequence(input, names...)
		dur := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}

		results = append(results, bench.RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    dur,
			InputBytes:  len(input),
			OutputBytes: len(out),
			Throughput:  bench.CalcThroughput(len(input), dur),
		})
	}

	return results, nil
}
