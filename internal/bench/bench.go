// Package bench provides benchmarking primitives for the tacotron-text bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and size metadata for a single cleaning run.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run
	Duration    time.Duration
	InputBytes  int
	OutputBytes int
	Throughput  float64 // input bytes per second
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// An empty slice yields zero Stats.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// Durations extracts the run durations in order.
func Durations(runs []RunResult) []time.Duration {
	out := make([]time.Duration, len(runs))
	for i, r := range runs {
		out[i] = r.Duration
	}
	return out
}

// CalcThroughput returns bytes processed per second.
// Returns 0 if d is zero to avoid division by zero.
func CalcThroughput(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// ---------------------------------------------------------------------------
// Latency threshold gate
// ---------------------------------------------------------------------------

// CheckMeanThreshold returns an error if mean > threshold.
// A threshold of 0 disables the gate.
func CheckMeanThreshold(mean, threshold time.Duration) error {
	if threshold <= 0 {
		return nil
	}
	if mean > threshold {
		return fmt.Errorf("mean latency %v exceeds threshold %v", mean, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %12s  %8s  %8s  %12s\n", "Run", "Cold", "US", "In(B)", "Out(B)", "B/s")
	fmt.Fprintln(sb, strings.Repeat("-", 60))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %12.1f  %8d  %8d  %12.0f\n",
			r.Index+1,
			cold,
			micros(r.Duration),
			r.InputBytes,
			r.OutputBytes,
			r.Throughput,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 60))
	fmt.Fprintf(sb, "%-5s  %-5s  %12.1f  (min)\n", "", "", micros(stats.Min))
	fmt.Fprintf(sb, "%-5s  %-5s  %12.1f  (mean)\n", "", "", micros(stats.Mean))
	fmt.Fprintf(sb, "%-5s  %-5s  %12.1f  (max)\n", "", "", micros(stats.Max))

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationUS  float64 `json:"duration_us"`
	InputBytes  int     `json:"input_bytes"`
	OutputBytes int     `json:"output_bytes"`
	Throughput  float64 `json:"bytes_per_sec"`
}

type jsonStats struct {
	MinUS  float64 `json:"min_us"`
	MeanUS float64 `json:"mean_us"`
	MaxUS  float64 `json:"max_us"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinUS:  micros(stats.Min),
			MeanUS: micros(stats.Mean),
			MaxUS:  micros(stats.Max),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationUS:  micros(r.Duration),
			InputBytes:  r.InputBytes,
			OutputBytes: r.OutputBytes,
			Throughput:  r.Throughput,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
