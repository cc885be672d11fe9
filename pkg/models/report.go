package models

import "time"

// StrategyResult records the outcome of one strategy across all of its
// iterations within a run.
type StrategyResult struct {
	Strategy       string `json:"strategy"`
	Category       string `json:"category"`
	BeforeTotal    int    `json:"before_total"`
	AfterTotal     int    `json:"after_total"`
	BeforeCategory int    `json:"before_category"`
	AfterCategory  int    `json:"after_category"`
	Iterations     int    `json:"iterations"`
	Fixes          int    `json:"fixes"`
	DurationMS     int64  `json:"duration_ms"`
	Success        bool   `json:"success"`
	Reverted       bool   `json:"reverted"`
	TimedOut       bool   `json:"timed_out"`
	Skipped        bool   `json:"skipped"`
	SkipReason     string `json:"skip_reason,omitempty"`
}

// RunReport is the write-once record of an orchestration run.
type RunReport struct {
	RunID        string           `json:"run_id"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
	InitialTotal int              `json:"initial_total"`
	FinalTotal   int              `json:"final_total"`
	Converged    bool             `json:"converged"`
	DryRun       bool             `json:"dry_run"`
	Strategies   []StrategyResult `json:"strategies"`
}

// TotalFixes sums the fixes applied across all strategies.
func (r *RunReport) TotalFixes() int {
	total := 0
	for _, s := range r.Strategies {
		total += s.Fixes
	}
	return total
}

// Resolved returns how many diagnostics the run eliminated. Negative values
// are clamped to zero so an aborted run never reports negative progress.
func (r *RunReport) Resolved() int {
	n := r.InitialTotal - r.FinalTotal
	if n < 0 {
		return 0
	}
	return n
}
