package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"cadence/internal/core"
)

// Categorize picks the category for a theme. Keywords are matched as whole
// words, case-insensitively, walking categories in priority order; the first
// category with any matching keyword wins. Themes that match nothing are generic.
func (c *Catalog) Categorize(theme string) core.Category {
	padded := " " + normalize(theme) + " "
	for _, name := range core.Categories() {
		p, ok := c.byName[name]
		if !ok {
			continue
		}
		for _, kw := range p.keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return name
			}
		}
	}
	return core.CategoryGeneric
}

// Topic returns the topic for a 1-based day. Once the pool is exhausted the
// catalog cycles through it again, appending a variation suffix so repeated
// topics never collide.
func (c *Catalog) Topic(category core.Category, theme string, day int) string {
	p := c.Pool(category)
	idx := day - 1
	if idx < 0 {
		idx = 0
	}

	base := p.Topics[idx%len(p.Topics)]
	if p.ThemePrefixed {
		base = fmt.Sprintf("%s: %s", cleanTheme(theme), base)
	}

	cycle := idx / len(p.Topics)
	if cycle == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, c.variation(cycle))
}

// TopicsFor returns the first n topics for a category.
func (c *Catalog) TopicsFor(category core.Category, theme string, n int) []string {
	topics := make([]string, 0, n)
	for day := 1; day <= n; day++ {
		topics = append(topics, c.Topic(category, theme, day))
	}
	return topics
}

func (c *Catalog) variation(cycle int) string {
	if cycle-1 < len(c.VariationSuffixes) {
		return c.VariationSuffixes[cycle-1]
	}
	return fmt.Sprintf("Part %d", cycle+1)
}

// normalize lowercases s and turns every run of non-alphanumeric characters
// into a single space.
func normalize(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

func cleanTheme(theme string) string {
	return strings.Join(strings.Fields(theme), " ")
}
