// Package orchestrator sequences fix strategies by category priority and
// accumulates the run report. All state lives in the Run value; nothing is
// shared through package globals.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kamilpajak/tsmend/internal/checker"
	"github.com/kamilpajak/tsmend/internal/classify"
	"github.com/kamilpajak/tsmend/internal/config"
	"github.com/kamilpajak/tsmend/internal/console"
	"github.com/kamilpajak/tsmend/internal/controller"
	"github.com/kamilpajak/tsmend/internal/gitrepo"
	"github.com/kamilpajak/tsmend/internal/strategy"
	"github.com/kamilpajak/tsmend/pkg/models"
)

// Params wires the orchestrator's collaborators. Checker and VCS are
// interfaces so the loop is testable with in-memory fakes.
type Params struct {
	Config   config.Config
	Checker  checker.TypeChecker
	VCS      gitrepo.VersionControl
	Registry *strategy.Registry
	Exec     controller.StrategyExecutor
	Log      *console.Logger
	DryRun   bool
}

// Run drives the full fix loop: measure, classify, then walk categories by
// priority, running each strategy through the checkpoint controller until it
// stops improving or its iteration budget is spent. The loop ends as soon as
// the total reaches zero.
func Run(ctx context.Context, p Params) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    p.DryRun,
	}

	measure := func(ctx context.Context) ([]models.Diagnostic, error) {
		stop := p.Log.Spinner("running type checker")
		defer stop()
		raw, err := p.Checker.Read(ctx)
		if err != nil {
			return nil, err
		}
		return checker.Parse(raw), nil
	}

	diags, err := measure(ctx)
	if err != nil {
		return report, fmt.Errorf("initial type check: %w", err)
	}
	total := len(diags)
	lastKnown := total
	report.InitialTotal = total

	if total == 0 {
		p.Log.Success("no diagnostics, nothing to do")
		return finish(report, total), nil
	}

	categories := classify.Classify(diags)
	p.Log.Info("%d diagnostics across %d categories", total, len(categories))
	for _, cat := range categories {
		p.Log.Verbose("  %-28s %3d diagnostics, priority %d", cat.Key, len(cat.Members), cat.Priority)
	}

	ctl := &controller.Controller{
		VCS:       p.VCS,
		Exec:      p.Exec,
		Measure:   measure,
		Tolerance: p.Config.Tolerance,
		DryRun:    p.DryRun,
		Log:       p.Log,
	}

	limiter := rate.NewLimiter(rate.Every(p.Config.StrategyDelay()), 1)

	for _, cat := range categories {
		result := models.StrategyResult{Category: cat.Key}

		strat, registered := p.Registry.For(cat.Key)
		if !registered {
			result.Skipped = true
			result.SkipReason = "no strategy registered"
			result.BeforeCategory = classify.CountFor(diags, cat.Key)
			result.AfterCategory = result.BeforeCategory
			result.BeforeTotal = total
			result.AfterTotal = total
			report.Strategies = append(report.Strategies, result)
			p.Log.Info("skipping %s: no automated strategy", cat.Key)
			continue
		}
		result.Strategy = strat.Name()

		if classify.CountFor(diags, cat.Key) == 0 {
			// Fixed as a side effect of an earlier strategy.
			result.Skipped = true
			result.SkipReason = "no diagnostics remaining in category"
			result.BeforeTotal = total
			result.AfterTotal = total
			report.Strategies = append(report.Strategies, result)
			p.Log.Verbose("skipping %s: already clean", cat.Key)
			continue
		}

		start := time.Now()
		result.BeforeTotal = total
		result.BeforeCategory = classify.CountFor(diags, cat.Key)
		result.AfterTotal = total
		result.AfterCategory = result.BeforeCategory

		p.Log.Info("running %s against %s (%d diagnostics)", strat.Name(), cat.Key, result.BeforeCategory)

	iterations:
		for iter := 0; iter < p.Config.MaxIterationsPerStrategy; iter++ {
			if classify.CountFor(diags, cat.Key) == 0 {
				break
			}
			if err := limiter.Wait(ctx); err != nil {
				result.DurationMS = time.Since(start).Milliseconds()
				report.Strategies = append(report.Strategies, result)
				return finish(report, total), err
			}

			current := categoryFrom(diags, cat.Key)
			beforeCategory := len(current.Members)

			out := ctl.Execute(ctx, strat, current, total, lastKnown)
			result.Iterations++
			result.Fixes += out.Fixes
			result.TimedOut = result.TimedOut || out.TimedOut

			if out.Err != nil {
				// Environment-level failure, the run cannot continue safely.
				result.DurationMS = time.Since(start).Milliseconds()
				report.Strategies = append(report.Strategies, result)
				return finish(report, total), out.Err
			}

			switch out.State {
			case controller.StateCommitted:
				total = out.After
				lastKnown = total
				if out.Diags != nil {
					diags = out.Diags
				}
				result.AfterTotal = total
				result.AfterCategory = classify.CountFor(diags, cat.Key)
				if total == 0 {
					break iterations
				}
				if result.AfterCategory >= beforeCategory {
					p.Log.Verbose("%s made no further progress", strat.Name())
					break iterations
				}
			case controller.StateRolledBack:
				result.Reverted = true
				result.AfterTotal = out.After
				result.AfterCategory = result.BeforeCategory
				break iterations
			case controller.StateFailed:
				result.Reverted = true
				result.AfterTotal = total
				break iterations
			}
		}

		result.DurationMS = time.Since(start).Milliseconds()
		result.Success = result.Fixes > 0 && !result.Reverted &&
			result.AfterCategory < result.BeforeCategory
		report.Strategies = append(report.Strategies, result)

		if result.Success {
			p.Log.Success("%s: %d -> %d in category, %d total remaining",
				strat.Name(), result.BeforeCategory, result.AfterCategory, total)
		}

		if total == 0 {
			p.Log.Success("all diagnostics resolved")
			break
		}
	}

	return finish(report, total), nil
}

func finish(report *models.RunReport, total int) *models.RunReport {
	report.FinalTotal = total
	report.Converged = total == 0
	report.FinishedAt = time.Now()
	return report
}

func categoryFrom(diags []models.Diagnostic, key string) models.Category {
	cat := models.Category{Key: key}
	for _, d := range diags {
		if classify.Key(d) == key {
			cat.Members = append(cat.Members, d)
		}
	}
	return cat
}
