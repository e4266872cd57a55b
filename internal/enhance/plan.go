package enhance

import (
	"context"
	"fmt"

	"cadence/internal/core"
	"cadence/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Report summarises an enhancement pass over a plan.
type Report struct {
	Enhanced  int
	Unchanged int
	Warnings  []error
}

// EnhancePlan runs e over every entry using at most workers goroutines and
// returns a new plan in Day order. Entries are independent; each worker writes
// only its own slot. When ctx is cancelled, entries that were not reached keep
// their template caption. Topic and Hashtags are always copied from plan.
func EnhancePlan(ctx context.Context, e CaptionEnhancer, plan core.ContentPlan, workers int) (core.ContentPlan, Report) {
	if e == nil {
		e = TemplateOnly{}
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(plan))
	for i, entry := range plan {
		results[i] = Result{Entry: entry, Outcome: Pending}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, entry := range plan {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = e.Enhance(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	out := plan.Clone()
	var report Report
	skipped := 0
	for i, r := range results {
		out[i].Caption = r.Entry.Caption

		switch r.Outcome {
		case Enhanced:
			report.Enhanced++
		case Pending:
			skipped++
			report.Unchanged++
		default:
			report.Unchanged++
		}

		if r.Warning != nil {
			report.Warnings = append(report.Warnings, r.Warning)
			logger.Warn("keeping template caption", "day", plan[i].Day, "enhancer", e.Name(), "reason", r.Warning.Error())
		}
	}

	if skipped > 0 {
		err := &core.ProviderError{
			Provider: e.Name(),
			Err:      fmt.Errorf("enhancement stopped early, %d entries kept template captions: %w", skipped, context.Cause(ctx)),
		}
		report.Warnings = append(report.Warnings, err)
		logger.Warn("enhancement cancelled", "skipped", skipped, "enhancer", e.Name())
	}

	return out, report
}
