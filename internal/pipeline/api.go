package pipeline

import (
	"context"

	"cadence/internal/config"
	"cadence/internal/core"
)

// DefaultDays is the plan length used when callers do not choose one.
const DefaultDays = core.DefaultDays

// GenerateContentPlan builds a template-based plan with the embedded catalog.
func GenerateContentPlan(theme string, days int) (*Result, error) {
	p, err := NewBuilder().Build()
	if err != nil {
		return nil, err
	}
	return p.Run(context.Background(), theme, days)
}

// EnhancedRequest describes a generation that may rewrite captions with a model.
type EnhancedRequest struct {
	Theme     string
	Days      int
	UseLLM    bool
	ModelPath string
	LLM       config.LLM // unset fields take config.DefaultLLM values
	Workers   int
	Seed      int64
}

// GenerateEnhancedContentPlan behaves like GenerateContentPlan when UseLLM is
// false. Otherwise captions are rewritten by the configured provider, falling
// back to template captions for any entry the provider cannot handle.
func GenerateEnhancedContentPlan(ctx context.Context, req EnhancedRequest) (*Result, error) {
	if req.Days == 0 {
		req.Days = DefaultDays
	}

	b := NewBuilder().WithSeed(req.Seed)
	if req.UseLLM {
		llmCfg := req.llmConfig()
		workers := req.Workers
		if workers < 1 {
			workers = llmCfg.Workers
		}
		b = b.WithLLM(llmCfg, req.ModelPath).WithWorkers(workers)
	}

	p, err := b.Build()
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, req.Theme, req.Days)
}

func (r EnhancedRequest) llmConfig() config.LLM {
	return r.LLM.WithDefaults()
}
