// internal/domain/stats/stats.go

// Package stats computes completion summaries for collections of steps.
//
// Every place that reports completion numbers (the stats endpoint, dashboards,
// future consumers) goes through Compute so counts and rounding can never
// drift between call sites.
package stats

import "github.com/dalemusser/stephub/internal/domain/models"

// Summary is the completion roll-up for a step population.
type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	Percentage int `json:"percentage"`
}

// Compute reduces a list of steps into a Summary. It is a pure function:
// no shared state, safe to call concurrently.
//
// Percentage is 0 for an empty list, otherwise round-half-up of
// 100*completed/total, so it always lands in [0,100]. The rounding is done
// in integer arithmetic to keep it deterministic across platforms.
func Compute(steps []models.Step) Summary {
	total := len(steps)
	completed := 0
	for _, s := range steps {
		if s.Completed {
			completed++
		}
	}

	pct := 0
	if total > 0 {
		pct = (100*completed + total/2) / total
	}

	return Summary{
		Total:      total,
		Completed:  completed,
		Pending:    total - completed,
		Percentage: pct,
	}
}
