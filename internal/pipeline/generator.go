package pipeline

import (
	"fmt"
	"strings"

	"cadence/internal/catalog"
	"cadence/internal/core"
	"cadence/internal/hashtags"
	"cadence/internal/templates"
)

// Generator builds template-based content plans. It performs no I/O and is
// safe for concurrent use when its components are.
type Generator struct {
	categorizer ThemeCategorizer
	topics      TopicSource
	captions    CaptionWriter
	tags        HashtagAssembler
}

// NewGenerator wires the catalog-backed components.
func NewGenerator(c *catalog.Catalog) *Generator {
	if c == nil {
		c = catalog.Default()
	}
	return &Generator{
		categorizer: c,
		topics:      c,
		captions:    templates.NewTemplater(c),
		tags:        hashtags.NewAssembler(c),
	}
}

// NewGeneratorFrom builds a generator from explicit components.
func NewGeneratorFrom(categorizer ThemeCategorizer, topics TopicSource, captions CaptionWriter, tags HashtagAssembler) *Generator {
	return &Generator{categorizer: categorizer, topics: topics, captions: captions, tags: tags}
}

// Generate produces a plan of exactly days entries for theme.
func (g *Generator) Generate(theme string, days int) (core.ContentPlan, core.Category, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, "", core.ErrEmptyTheme
	}
	if !core.ValidDays(days) {
		return nil, "", core.NewInvalidRangeError(days)
	}

	category := g.categorizer.Categorize(theme)

	plan := make(core.ContentPlan, 0, days)
	for day := 1; day <= days; day++ {
		topic := g.topics.Topic(category, theme, day)

		caption, err := g.captions.Caption(topic, category, day)
		if err != nil {
			return nil, category, fmt.Errorf("failed to render caption for day %d: %w", day, err)
		}

		plan = append(plan, core.DayEntry{
			Day:      day,
			Topic:    topic,
			Caption:  caption,
			Hashtags: hashtags.Join(g.tags.Hashtags(topic, category, day)),
		})
	}

	return plan, category, nil
}
