package main

import (
	"math"
	"sort"
	"strings"
)

// BenchResult is one entry of the results array written by the bench package.
type BenchResult struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	NsPerOp  float64            `json:"ns_per_op"`
	Metrics  map[string]float64 `json:"metrics"`
}

// BenchSummary is a benchmark_history file.
type BenchSummary struct {
	Timestamp string        `json:"timestamp"`
	CommitID  string        `json:"commit_id"`
	Branch    string        `json:"branch"`
	GoVersion string        `json:"go_version"`
	Results   []BenchResult `json:"results"`
}

// MetricComparison compares one metric between two runs
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison compares every shared metric of one benchmark
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// ComparisonSummary is the output of compare
type ComparisonSummary struct {
	BaseCommit             string                `json:"base_commit"`
	CurrentCommit          string                `json:"current_commit"`
	SignificantRegressions int                   `json:"significant_regressions"`
	BenchmarkComparisons   []BenchmarkComparison `json:"benchmark_comparisons"`
}

// neutralMetrics describe table shape rather than speed.
var neutralMetrics = map[string]bool{
	"capacity":        true,
	"load_factor_pct": true,
	"grows":           true,
	"shrinks":         true,
	"rehashes":        true,
}

// higherIsBetter reports whether an increase in metric is an improvement.
func higherIsBetter(metric string) bool {
	return strings.HasSuffix(metric, "_rate") || strings.HasPrefix(metric, "batch_insert_")
}

// compare matches benchmarks by name and compares the metrics both runs
// recorded. A change of at least threshold percent in the wrong direction is
// a significant regression.
func compare(base, current BenchSummary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]BenchResult, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{
		BaseCommit:    base.CommitID,
		CurrentCommit: current.CommitID,
	}

	for _, cur := range current.Results {
		prev, ok := baseResults[cur.Name]
		if !ok {
			continue
		}

		bc := BenchmarkComparison{Name: cur.Name, Category: cur.Category}
		curMetrics := withNsPerOp(cur)
		prevMetrics := withNsPerOp(prev)
		for name, curValue := range curMetrics {
			baseValue, ok := prevMetrics[name]
			if !ok || neutralMetrics[name] {
				continue
			}

			change := 0.0
			if baseValue != 0 {
				change = (curValue - baseValue) / baseValue * 100
			}
			regression := change > 0
			if higherIsBetter(name) {
				regression = change < 0
			}
			significant := math.Abs(change) >= threshold

			if regression {
				bc.Score -= math.Abs(change)
			} else {
				bc.Score += math.Abs(change)
			}
			if regression && significant {
				bc.HasRegressions = true
			}
			bc.MetricComparisons = append(bc.MetricComparisons, MetricComparison{
				Name:          name,
				BaseValue:     baseValue,
				CurrentValue:  curValue,
				PercentChange: change,
				IsRegression:  regression,
				IsSignificant: significant,
			})
		}
		if n := len(bc.MetricComparisons); n > 0 {
			bc.Score /= float64(n)
		}
		sort.Slice(bc.MetricComparisons, func(i, j int) bool {
			return math.Abs(bc.MetricComparisons[i].PercentChange) > math.Abs(bc.MetricComparisons[j].PercentChange)
		})
		if bc.HasRegressions {
			summary.SignificantRegressions++
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}

	// worst first
	sort.Slice(summary.BenchmarkComparisons, func(i, j int) bool {
		a, b := summary.BenchmarkComparisons[i], summary.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})
	return summary
}

func withNsPerOp(r BenchResult) map[string]float64 {
	m := make(map[string]float64, len(r.Metrics)+1)
	for k, v := range r.Metrics {
		m[k] = v
	}
	if r.NsPerOp > 0 {
		m["ns_per_op"] = r.NsPerOp
	}
	return m
}
