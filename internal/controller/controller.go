// Package controller brackets each fix-strategy run with a version-control
// checkpoint and decides whether to keep or revert the result.
package controller

import (
	"context"
	"fmt"

	"github.com/kamilpajak/tsmend/internal/checker"
	"github.com/kamilpajak/tsmend/internal/classify"
	"github.com/kamilpajak/tsmend/internal/console"
	"github.com/kamilpajak/tsmend/internal/gitrepo"
	"github.com/kamilpajak/tsmend/internal/strategy"
	"github.com/kamilpajak/tsmend/pkg/models"
)

// State names one step of the per-invocation state machine.
type State string

const (
	StateIdle         State = "idle"
	StateCheckpointed State = "checkpointed"
	StateRunning      State = "running"
	StateEvaluating   State = "evaluating"
	StateCommitted    State = "committed"
	StateRolledBack   State = "rolled-back"
	StateFailed       State = "failed"
)

// StrategyExecutor applies a strategy across a category's files.
type StrategyExecutor interface {
	Run(s strategy.Strategy, cat models.Category) (int, error)
}

// MeasureFunc re-runs the type checker and returns the fresh diagnostics.
type MeasureFunc func(ctx context.Context) ([]models.Diagnostic, error)

// Outcome is the terminal record of one strategy invocation.
type Outcome struct {
	State          State
	Before         int
	After          int
	BeforeCategory int
	AfterCategory  int
	Fixes          int
	TimedOut       bool
	// Diags holds the post-run diagnostics when the run was kept; nil after
	// a rollback, since the measured set no longer describes the tree.
	Diags []models.Diagnostic
	// Err is set only for environment-level failures (version control
	// broken); those must abort the whole run.
	Err error
}

// Controller owns the checkpoint/evaluate/commit-or-rollback discipline.
type Controller struct {
	VCS       gitrepo.VersionControl
	Exec      StrategyExecutor
	Measure   MeasureFunc
	Tolerance int
	DryRun    bool
	Log       *console.Logger
}

// Execute runs one strategy invocation through the full state machine.
// before is the current total diagnostic count; lastKnown is the fallback
// used when the evaluating checker pass times out. The working tree is never
// left more than Tolerance diagnostics worse than the checkpoint.
func (c *Controller) Execute(ctx context.Context, strat strategy.Strategy, cat models.Category, before, lastKnown int) Outcome {
	out := Outcome{
		State:          StateIdle,
		Before:         before,
		After:          before,
		BeforeCategory: len(cat.Members),
		AfterCategory:  len(cat.Members),
	}

	checkpoint := ""
	if !c.DryRun {
		rev, err := c.checkpoint(strat.Name())
		if err != nil {
			out.State = StateFailed
			out.Err = err
			return out
		}
		checkpoint = rev
	}
	out.State = StateCheckpointed

	out.State = StateRunning
	fixes, runErr := c.Exec.Run(strat, cat)
	out.Fixes = fixes
	if runErr != nil {
		c.Log.Warning("strategy %s failed: %v", strat.Name(), runErr)
	}

	out.State = StateEvaluating
	diags, measureErr := c.Measure(ctx)
	switch {
	case measureErr == nil:
		out.After = len(diags)
		out.AfterCategory = classify.CountFor(diags, cat.Key)
	case checker.IsTimeout(measureErr):
		// Fall back to the last known count rather than blocking the run.
		c.Log.Warning("type checker timed out during evaluation, assuming %d diagnostics", lastKnown)
		out.TimedOut = true
		out.After = lastKnown
	default:
		out.TimedOut = true
		out.After = lastKnown
		c.Log.Warning("could not re-measure diagnostics: %v", measureErr)
	}

	regressed := out.After-out.Before > c.Tolerance

	switch {
	case runErr != nil:
		// Strategy I/O errors are handled like regressions: revert, log,
		// keep the run alive.
		if err := c.rollback(checkpoint); err != nil {
			out.Err = err
		}
		out.State = StateFailed
		out.AfterCategory = out.BeforeCategory
		out.After = out.Before
		out.Diags = nil
	case regressed:
		c.Log.Warning("%s regressed %d -> %d diagnostics, rolling back", strat.Name(), out.Before, out.After)
		if err := c.rollback(checkpoint); err != nil {
			out.State = StateFailed
			out.Err = err
			return out
		}
		out.State = StateRolledBack
		out.AfterCategory = out.BeforeCategory
		out.Diags = nil
	default:
		if !c.DryRun && out.Fixes > 0 {
			if err := c.confirm(strat.Name(), cat.Key); err != nil {
				out.State = StateFailed
				out.Err = err
				return out
			}
		}
		out.State = StateCommitted
		out.Diags = diags
	}

	return out
}

// checkpoint stages and commits the current tree so it can be restored
// exactly. Nothing to commit is a logged no-op; HEAD is still a valid
// restore point.
func (c *Controller) checkpoint(strategyName string) (string, error) {
	if err := c.VCS.StageAll(); err != nil {
		return "", fmt.Errorf("stage checkpoint: %w", err)
	}
	committed, err := c.VCS.Commit("checkpoint: before " + strategyName)
	if err != nil {
		return "", fmt.Errorf("commit checkpoint: %w", err)
	}
	if !committed {
		c.Log.Verbose("checkpoint for %s: nothing to commit", strategyName)
	}
	return c.VCS.Head()
}

func (c *Controller) confirm(strategyName, categoryKey string) error {
	if err := c.VCS.StageAll(); err != nil {
		return fmt.Errorf("stage fix: %w", err)
	}
	if _, err := c.VCS.Commit(fmt.Sprintf("fix: %s (%s)", strategyName, categoryKey)); err != nil {
		return fmt.Errorf("commit fix: %w", err)
	}
	return nil
}

func (c *Controller) rollback(checkpoint string) error {
	if c.DryRun || checkpoint == "" {
		return nil
	}
	if err := c.VCS.ResetHard(checkpoint); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	if err := c.VCS.CleanUntracked(); err != nil {
		return fmt.Errorf("rollback clean: %w", err)
	}
	return nil
}
