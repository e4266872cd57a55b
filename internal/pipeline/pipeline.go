package pipeline

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/core"
	"cadence/internal/enhance"
	"cadence/internal/hashtags"
	"cadence/internal/logger"
	"cadence/internal/templates"

	"github.com/google/uuid"
)

// Generation methods reported in Result.Method.
const (
	MethodTemplate = "template"
	MethodLLM      = "llm"
)

// Pipeline generates a plan and optionally runs the enhancement pass over it.
type Pipeline struct {
	catalog   *catalog.Catalog
	generator *Generator
	enhancer  enhance.CaptionEnhancer
	config    *Config

	// warnings raised while building, e.g. a provider that could not be created
	setupWarnings []string
}

// Config holds pipeline configuration
type Config struct {
	Seed         int64         // non-zero switches to seeded template and hashtag picks
	Workers      int           // concurrent enhancement calls
	TotalTimeout time.Duration // bound on the whole enhancement phase; 0 means none
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:      1,
		TotalTimeout: 2 * time.Minute,
	}
}

// Result is the outcome of one generation run.
type Result struct {
	RunID       string           `json:"run_id"`
	BrandTheme  string           `json:"brand_theme"`
	Days        int              `json:"days"`
	Category    core.Category    `json:"category"`
	Method      string           `json:"method"`
	Topics      []string         `json:"topics"`
	ContentPlan core.ContentPlan `json:"content_plan"`
	Stats       Stats            `json:"stats"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// Stats tracks pipeline execution metrics
type Stats struct {
	Enhanced       int           `json:"enhanced"`
	Unchanged      int           `json:"unchanged"`
	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// Method reports how captions are produced by this pipeline.
func (p *Pipeline) Method() string {
	switch p.enhancer.(type) {
	case enhance.TemplateOnly, *enhance.TemplateOnly:
		return MethodTemplate
	}
	return MethodLLM
}

// Run generates a plan for theme and, if an enhancer is configured, rewrites
// the captions. Enhancement failures never fail the run; they are returned as
// warnings and the template captions are kept.
func (p *Pipeline) Run(ctx context.Context, theme string, days int) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	theme = strings.TrimSpace(theme)
	plan, category, err := p.generatorForRun().Generate(theme, days)
	if err != nil {
		return nil, err
	}
	log.Info().Str("category", string(category)).Int("days", days).Msg("Generated template plan")

	result := &Result{
		RunID:      runID,
		BrandTheme: theme,
		Days:       days,
		Category:   category,
		Method:     p.Method(),
		Warnings:   append([]string(nil), p.setupWarnings...),
	}

	if result.Method == MethodLLM {
		enhanceCtx := ctx
		if p.config.TotalTimeout > 0 {
			var cancel context.CancelFunc
			enhanceCtx, cancel = context.WithTimeout(ctx, p.config.TotalTimeout)
			defer cancel()
		}

		log.Info().Str("enhancer", p.enhancer.Name()).Int("workers", p.config.Workers).Msg("Enhancing captions")
		var report enhance.Report
		plan, report = enhance.EnhancePlan(enhanceCtx, p.enhancer, plan, p.config.Workers)

		result.Stats.Enhanced = report.Enhanced
		result.Stats.Unchanged = report.Unchanged
		for _, w := range report.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}
		log.Info().Int("enhanced", report.Enhanced).Int("unchanged", report.Unchanged).Msg("Enhancement finished")
	} else {
		result.Stats.Unchanged = len(plan)
	}

	result.ContentPlan = plan
	result.Topics = plan.Topics()
	result.Stats.ProcessingTime = time.Since(start)
	return result, nil
}

// Generate runs only the template stage.
func (p *Pipeline) Generate(theme string, days int) (core.ContentPlan, core.Category, error) {
	return p.generatorForRun().Generate(theme, days)
}

// generatorForRun returns the shared deterministic generator, or a freshly
// seeded one so every run with the same seed produces the same plan.
func (p *Pipeline) generatorForRun() *Generator {
	if p.config.Seed == 0 {
		return p.generator
	}
	seed := uint64(p.config.Seed)
	return NewGeneratorFrom(
		p.catalog,
		p.catalog,
		templates.NewTemplater(p.catalog).WithRand(rand.New(rand.NewPCG(seed, 1))),
		hashtags.NewAssembler(p.catalog).WithRand(rand.New(rand.NewPCG(seed, 2))),
	)
}
