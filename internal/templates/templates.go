package templates

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"cadence/internal/catalog"
	"cadence/internal/core"
)

// Templater renders captions from the catalog's template pools.
//
// By default template and trailing emoji are chosen by cycling on the day index,
// so the same (topic, category, day) always yields the same caption. Supplying a
// random source with WithRand switches to seeded random picks instead.
type Templater struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewTemplater creates a deterministic templater over c.
func NewTemplater(c *catalog.Catalog) *Templater {
	if c == nil {
		c = catalog.Default()
	}
	return &Templater{catalog: c}
}

// WithRand makes template and emoji selection draw from r.
// The returned Templater is not safe for concurrent use.
func (t *Templater) WithRand(r *rand.Rand) *Templater {
	return &Templater{catalog: t.catalog, rng: r}
}

// Caption renders the caption for a topic on a 1-based day.
func (t *Templater) Caption(topic string, category core.Category, day int) (string, error) {
	pool := t.catalog.Pool(category)

	tmplIdx, emojiIdx := day-1, day-1
	if t.rng != nil {
		tmplIdx = t.rng.IntN(pool.TemplateCount())
		emojiIdx = t.rng.IntN(len(pool.Emojis))
	}

	tmpl := pool.Template(tmplIdx)
	data := catalog.CaptionData{
		Topic:    strings.TrimSpace(topic),
		Subject:  pool.Subject,
		Category: pool.Name,
		Day:      day,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render caption template %s: %w", tmpl.Name(), err)
	}

	caption := strings.TrimSpace(sb.String())
	emoji := pool.Emojis[mod(emojiIdx, len(pool.Emojis))]
	return caption + " " + emoji, nil
}

func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
