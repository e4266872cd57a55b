// Package catalog holds the fixed topic, caption template and hashtag pools
// that drive plan generation. The tables are parsed once and never mutated.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"cadence/internal/core"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// minHashtags is the smallest pool that still lets the assembler emit 3..6 distinct tags.
const minHashtags = 6

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// CaptionData is the value each caption template is executed against.
type CaptionData struct {
	Topic    string
	Subject  string // short noun for the category, e.g. "fitness"
	Category core.Category
	Day      int
}

// Pool is the set of tables for a single category.
type Pool struct {
	Name          core.Category `yaml:"name"`
	Label         string        `yaml:"label"`
	Subject       string        `yaml:"subject"`
	Keywords      []string      `yaml:"keywords"`
	Topics        []string      `yaml:"topics"`
	ThemePrefixed bool          `yaml:"theme_prefixed"` // topics are rendered as "<theme>: <topic>"
	Templates     []string      `yaml:"templates"`
	Emojis        []string      `yaml:"emojis"`
	Hashtags      []string      `yaml:"hashtags"` // first entry is the anchor tag

	compiled []*template.Template
	keywords []string // normalized
}

// Catalog is the full set of pools plus the variation suffixes used when a plan
// is longer than a topic pool.
type Catalog struct {
	VariationSuffixes []string `yaml:"variation_suffixes"`
	Pools             []*Pool  `yaml:"categories"`

	byName map[core.Category]*Pool
}

// Default returns the embedded catalog. It panics if the embedded document is
// invalid, which can only happen if catalog.yaml was edited incorrectly.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile reads a catalog from a YAML file with the same layout as the embedded one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []string

	c.byName = make(map[core.Category]*Pool, len(c.Pools))
	for i, p := range c.Pools {
		if p == nil {
			errs = append(errs, fmt.Sprintf("category #%d is empty", i+1))
			continue
		}
		name, ok := core.ParseCategory(string(p.Name))
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown category %q", p.Name))
			continue
		}
		p.Name = name
		if _, dup := c.byName[p.Name]; dup {
			errs = append(errs, fmt.Sprintf("category %q is defined twice", p.Name))
			continue
		}
		c.byName[p.Name] = p
		errs = append(errs, p.compile()...)
	}

	for _, name := range core.Categories() {
		if _, ok := c.byName[name]; !ok {
			errs = append(errs, fmt.Sprintf("category %q is missing", name))
		}
	}

	if dup := firstDuplicate(c.VariationSuffixes); dup != "" {
		errs = append(errs, fmt.Sprintf("variation suffix %q is repeated", dup))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func (p *Pool) compile() []string {
	var errs []string

	if len(p.Topics) == 0 {
		errs = append(errs, fmt.Sprintf("%s: topic pool is empty", p.Name))
	}
	if dup := firstDuplicate(p.Topics); dup != "" {
		errs = append(errs, fmt.Sprintf("%s: topic %q is repeated", p.Name, dup))
	}
	if len(p.Emojis) == 0 {
		errs = append(errs, fmt.Sprintf("%s: emoji pool is empty", p.Name))
	}
	if p.Name != core.CategoryGeneric && len(p.Keywords) == 0 {
		errs = append(errs, fmt.Sprintf("%s: keywords are required", p.Name))
	}

	tags := make(map[string]bool)
	for _, tag := range p.Hashtags {
		if tag == "" || strings.HasPrefix(tag, "#") || strings.ContainsFunc(tag, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			errs = append(errs, fmt.Sprintf("%s: hashtag %q must be alphanumeric without '#'", p.Name, tag))
			continue
		}
		tags[strings.ToLower(tag)] = true
	}
	if len(tags) < minHashtags {
		errs = append(errs, fmt.Sprintf("%s: need at least %d distinct hashtags, got %d", p.Name, minHashtags, len(tags)))
	}

	if len(p.Templates) == 0 {
		errs = append(errs, fmt.Sprintf("%s: template pool is empty", p.Name))
	}
	p.compiled = make([]*template.Template, 0, len(p.Templates))
	for i, text := range p.Templates {
		tmpl, err := template.New(fmt.Sprintf("%s-%d", p.Name, i)).Option("missingkey=error").Parse(text)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: template %d: %v", p.Name, i+1, err))
			continue
		}
		sample := CaptionData{Topic: "Sample Topic", Subject: p.Subject, Category: p.Name, Day: 1}
		if err := tmpl.Execute(io.Discard, sample); err != nil {
			errs = append(errs, fmt.Sprintf("%s: template %d: %v", p.Name, i+1, err))
			continue
		}
		p.compiled = append(p.compiled, tmpl)
	}

	p.keywords = make([]string, 0, len(p.Keywords))
	for _, kw := range p.Keywords {
		if norm := normalize(kw); norm != "" {
			p.keywords = append(p.keywords, norm)
		}
	}

	return errs
}

// Pool returns the pool for a category, falling back to the generic pool.
func (c *Catalog) Pool(category core.Category) *Pool {
	if p, ok := c.byName[category]; ok {
		return p
	}
	return c.byName[core.CategoryGeneric]
}

// Template returns the compiled caption template at index i (modulo pool size).
func (p *Pool) Template(i int) *template.Template {
	return p.compiled[mod(i, len(p.compiled))]
}

// TemplateCount is the number of caption templates in the pool.
func (p *Pool) TemplateCount() int { return len(p.compiled) }

// AnchorTag is the tag that identifies the category, e.g. "Fitness".
func (p *Pool) AnchorTag() string { return p.Hashtags[0] }

func firstDuplicate(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if seen[key] {
			return v
		}
		seen[key] = true
	}
	return ""
}

func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
