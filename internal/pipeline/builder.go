package pipeline

import (
	"context"
	"fmt"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/enhance"
	"cadence/internal/llm"
	"cadence/internal/logger"
)

// initTimeout bounds the readiness check of providers that support one.
const initTimeout = 5 * time.Second

// Builder helps construct a fully configured Pipeline
type Builder struct {
	catalog     *catalog.Catalog
	catalogPath string
	enhancer    enhance.CaptionEnhancer
	llmConfig   *config.LLM
	modelPath   string
	config      *Config
}

// NewBuilder creates a new pipeline builder with default settings
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithCatalog sets the catalog
func (b *Builder) WithCatalog(c *catalog.Catalog) *Builder {
	b.catalog = c
	return b
}

// WithCatalogFile loads the catalog from a YAML file at Build time
func (b *Builder) WithCatalogFile(path string) *Builder {
	b.catalogPath = path
	return b
}

// WithConfig sets the pipeline configuration
func (b *Builder) WithConfig(config *Config) *Builder {
	b.config = config
	return b
}

// WithSeed enables seeded template and hashtag selection
func (b *Builder) WithSeed(seed int64) *Builder {
	b.cfg().Seed = seed
	return b
}

// WithWorkers sets the number of concurrent enhancement calls
func (b *Builder) WithWorkers(n int) *Builder {
	b.cfg().Workers = n
	return b
}

// WithEnhancer sets the caption enhancer directly
func (b *Builder) WithEnhancer(e enhance.CaptionEnhancer) *Builder {
	b.enhancer = e
	return b
}

// WithLLM enables model-backed enhancement using the configured provider.
// modelPath overrides the configured model.
func (b *Builder) WithLLM(cfg config.LLM, modelPath string) *Builder {
	b.llmConfig = &cfg
	b.modelPath = modelPath
	return b
}

func (b *Builder) cfg() *Config {
	if b.config == nil {
		b.config = DefaultConfig()
	}
	return b.config
}

// Build constructs a fully configured Pipeline. A provider that cannot be
// created does not fail the build; the pipeline falls back to template
// captions and reports a warning on every run.
func (b *Builder) Build() (*Pipeline, error) {
	if b.config == nil {
		b.config = DefaultConfig()
	}
	if b.config.Workers < 1 {
		b.config.Workers = 1
	}

	c := b.catalog
	if c == nil && b.catalogPath != "" {
		loaded, err := catalog.LoadFile(b.catalogPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if c == nil {
		c = catalog.Default()
	}

	var warnings []string
	enhancer := b.enhancer
	if enhancer == nil && b.llmConfig != nil {
		provider, err := b.newProvider()
		if err != nil {
			msg := fmt.Sprintf("LLM unavailable, using template captions: %v", err)
			logger.Warn(msg)
			warnings = append(warnings, msg)
		} else {
			enhancer = enhance.NewModelBacked(provider, provider.Name(), enhance.Options{
				MaxCaptionLength: b.llmConfig.MaxCaptionLength,
				MaxAttempts:      b.llmConfig.MaxAttempts,
				CallTimeout:      b.llmConfig.CallTimeout(),
			})
			b.config.TotalTimeout = b.llmConfig.TotalTimeout()
		}
	}
	if enhancer == nil {
		enhancer = enhance.TemplateOnly{}
	}

	return &Pipeline{
		catalog:       c,
		generator:     NewGenerator(c),
		enhancer:      enhancer,
		config:        b.config,
		setupWarnings: warnings,
	}, nil
}

// newProvider creates the configured provider and, when it supports it,
// checks that it is ready so an unreachable backend costs one warning rather
// than one failed call per day.
func (b *Builder) newProvider() (llm.Provider, error) {
	provider, err := llm.New(*b.llmConfig, b.modelPath)
	if err != nil {
		return nil, err
	}

	if initializer, ok := provider.(llm.Initializer); ok {
		ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
		defer cancel()
		if err := initializer.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	return provider, nil
}
