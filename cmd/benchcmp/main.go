// Command benchcmp compares two benchmark_history JSON files written by the
// bench package and exits non-zero on significant regressions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	threshold := flag.Float64("threshold", 5.0, "percent change treated as significant")
	output := flag.String("o", "benchmark-comparison.json", "comparison output file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: benchcmp [-threshold pct] [-o file] <base_json_file> <current_json_file>")
		os.Exit(2)
	}

	base, err := loadSummary(flag.Arg(0))
	if err != nil {
		logger.Fatal("failed to load base results", zap.Error(err))
	}
	current, err := loadSummary(flag.Arg(1))
	if err != nil {
		logger.Fatal("failed to load current results", zap.Error(err))
	}

	summary := compare(base, current, *threshold)
	for _, bc := range summary.BenchmarkComparisons {
		logger.Info("benchmark compared",
			zap.String("name", bc.Name),
			zap.String("category", bc.Category),
			zap.Float64("score", bc.Score),
			zap.Bool("regression", bc.HasRegressions))
		for _, m := range bc.MetricComparisons {
			if !m.IsSignificant {
				continue
			}
			logger.Info("metric changed",
				zap.String("benchmark", bc.Name),
				zap.String("metric", m.Name),
				zap.Float64("base", m.BaseValue),
				zap.Float64("current", m.CurrentValue),
				zap.Float64("percent_change", m.PercentChange),
				zap.Bool("regression", m.IsRegression))
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode comparison", zap.Error(err))
	}
	if err := os.WriteFile(*output, jsonData, 0644); err != nil {
		logger.Fatal("failed to write comparison", zap.String("path", *output), zap.Error(err))
	}

	if summary.SignificantRegressions > 0 {
		logger.Warn("significant performance regressions detected",
			zap.Int("count", summary.SignificantRegressions))
		logger.Sync()
		os.Exit(1)
	}
}

func loadSummary(path string) (BenchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BenchSummary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var s BenchSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return BenchSummary{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}
