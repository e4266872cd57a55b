package handlers

import (
	"fmt"

	"cadence/internal/config"
	"cadence/internal/pipeline"
	"cadence/internal/render"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	days        int
	output      string
	format      string
	useLLM      bool
	modelPath   string
	provider    string
	workers     int
	seed        int64
	catalogPath string
}

func (o *generateOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&o.days, "days", "d", 30, "Number of days to plan (7-90)")
	f.StringVarP(&o.output, "output", "o", "content_calendar.csv", "Output file")
	f.StringVarP(&o.format, "format", "f", "", "Output format: csv or json (default: from the output extension)")
	f.BoolVar(&o.useLLM, "use-llm", false, "Rewrite captions with a language model")
	f.StringVar(&o.modelPath, "model", "", "Model name or path to a local model file (e.g. a .gguf)")
	f.StringVar(&o.provider, "provider", "", "LLM provider: openai, ollama or gemini (default from config: openai)")
	f.IntVar(&o.workers, "workers", 0, "Concurrent LLM requests (default from config: 1)")
	f.Int64Var(&o.seed, "seed", 0, "Seed for randomized template and hashtag selection")
	f.StringVar(&o.catalogPath, "catalog", "", "YAML file replacing the built-in topic catalog")
}

// resolve merges flags over the loaded configuration. Only flags the user set
// take precedence.
func (o *generateOptions) resolve(cmd *cobra.Command, cfg *config.Config) (generateOptions, config.LLM, error) {
	flags := cmd.Flags()
	out := generateOptions{
		days:        cfg.Plan.Days,
		output:      cfg.Output.Path,
		format:      cfg.Output.Format,
		useLLM:      cfg.LLM.Enabled,
		modelPath:   cfg.LLM.ModelPath,
		workers:     cfg.LLM.Workers,
		seed:        cfg.Plan.Seed,
		catalogPath: cfg.Plan.CatalogPath,
	}
	llmCfg := cfg.LLM

	if flags.Changed("days") {
		out.days = o.days
	}
	if flags.Changed("output") {
		out.output = o.output
	}
	if flags.Changed("format") {
		out.format = o.format
	}
	if flags.Changed("use-llm") {
		out.useLLM = o.useLLM
	}
	if flags.Changed("model") {
		out.modelPath = o.modelPath
	}
	if flags.Changed("provider") {
		llmCfg.Provider = o.provider
	}
	if flags.Changed("workers") {
		if o.workers < 1 {
			return out, llmCfg, fmt.Errorf("--workers must be at least 1, got %d", o.workers)
		}
		out.workers = o.workers
	}
	if flags.Changed("seed") {
		out.seed = o.seed
	}
	if flags.Changed("catalog") {
		out.catalogPath = o.catalogPath
	}
	llmCfg.Workers = out.workers

	return out, llmCfg, nil
}

func runGenerate(cmd *cobra.Command, theme string, o *generateOptions) error {
	opts, llmCfg, err := o.resolve(cmd, config.Get())
	if err != nil {
		return err
	}

	format := render.FormatFromPath(opts.output)
	if opts.format != "" {
		if format, err = render.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	b := pipeline.NewBuilder().WithSeed(opts.seed)
	if opts.catalogPath != "" {
		b = b.WithCatalogFile(opts.catalogPath)
	}
	if opts.useLLM {
		b = b.WithLLM(llmCfg, opts.modelPath).WithWorkers(opts.workers)
	}
	p, err := b.Build()
	if err != nil {
		return err
	}

	result, err := p.Run(cmd.Context(), theme, opts.days)
	if err != nil {
		return err
	}

	if err := render.Export(result.ContentPlan, opts.output, format); err != nil {
		return err
	}

	if quiet {
		return nil
	}
	printSummary(cmd.OutOrStdout(), result, opts.output)
	printPreview(cmd.OutOrStdout(), result.ContentPlan, previewDays)
	if len(result.Warnings) > 0 {
		printWarnings(cmd.ErrOrStderr(), result.Warnings)
	}
	return nil
}
