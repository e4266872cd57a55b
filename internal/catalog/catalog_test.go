package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cadence/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	require.NotNil(t, c)

	for _, name := range core.Categories() {
		p := c.Pool(name)
		require.NotNil(t, p, "pool for %s", name)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Topics)
		assert.Positive(t, p.TemplateCount())
		assert.GreaterOrEqual(t, len(p.Hashtags), minHashtags)
	}
	assert.Same(t, c, Default(), "Default should be loaded once")
}

func TestCategorize(t *testing.T) {
	c := Default()

	tests := []struct {
		theme string
		want  core.Category
	}{
		{"Fitness for Busy Professionals", core.CategoryFitness},
		{"HOME WORKOUTS", core.CategoryFitness},
		{"Mental Health for Students", core.CategoryMentalHealth},
		{"Self-Care Sunday", core.CategoryMentalHealth},
		{"Startup Growth Hacks", core.CategoryBusiness},
		{"Remote Team Management", core.CategoryBusiness},
		{"Coding Best Practices", core.CategoryTechnology},
		{"AI in Education", core.CategoryTechnology},
		{"Digital Art Tips", core.CategoryTechnology},
		{"Photography Basics", core.CategoryGeneric},
		{"Travel Hacking", core.CategoryGeneric},
		// whole-word matching: "ai" must not match inside "Email" or "Training"
		{"Email Training for Dogs", core.CategoryGeneric},
		// first match in priority order wins
		{"Fitness and Business", core.CategoryFitness},
		{"AI Tools for Small Business", core.CategoryBusiness},
		{"Mindful Coding", core.CategoryMentalHealth},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.theme))
		})
	}
}

func TestTopicsUniqueUpToMaxDays(t *testing.T) {
	c := Default()

	for _, name := range core.Categories() {
		t.Run(string(name), func(t *testing.T) {
			topics := c.TopicsFor(name, "Photography Basics", core.MaxDays)
			require.Len(t, topics, core.MaxDays)

			seen := make(map[string]int)
			for i, topic := range topics {
				if prev, dup := seen[topic]; dup {
					t.Fatalf("topic %q repeated on days %d and %d", topic, prev+1, i+1)
				}
				seen[topic] = i
			}
		})
	}
}

func TestTopicCyclingAddsVariationSuffix(t *testing.T) {
	c := Default()
	p := c.Pool(core.CategoryFitness)
	n := len(p.Topics)

	assert.Equal(t, p.Topics[0], c.Topic(core.CategoryFitness, "", 1))
	assert.Equal(t, p.Topics[0]+" (Deep Dive)", c.Topic(core.CategoryFitness, "", n+1))
	assert.Equal(t, p.Topics[1]+" (Revisited)", c.Topic(core.CategoryFitness, "", 2*n+2))
}

func TestGenericTopicsIncludeTheme(t *testing.T) {
	c := Default()
	topic := c.Topic(core.CategoryGeneric, "  Photography   Basics ", 1)
	assert.Equal(t, "Photography Basics: Getting Started Guide", topic)
}

func TestVariationFallsBackToPartNumber(t *testing.T) {
	doc := strings.Replace(string(embeddedCatalog), "variation_suffixes:\n  - Deep Dive\n", "variation_suffixes:\n", 1)
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	n := len(c.Pool(core.CategoryBusiness).Topics)
	last := len(c.VariationSuffixes)
	topic := c.Topic(core.CategoryBusiness, "", (last+1)*n+1)
	assert.True(t, strings.HasSuffix(topic, "(Part "+strconv.Itoa(last+2)+")"), "got %q", topic)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not yaml",
			doc:     "categories: [",
			wantErr: "failed to decode catalog",
		},
		{
			name:    "missing categories",
			doc:     "categories: []",
			wantErr: `category "fitness" is missing`,
		},
		{
			name: "unknown category",
			doc: `categories:
  - name: cooking
    topics: [A]`,
			wantErr: `unknown category "cooking"`,
		},
		{
			name: "bad template",
			doc: `categories:
  - name: generic
    topics: [A]
    templates: ["{{.Topic"]
    emojis: ["x"]
    hashtags: [A, B, C, D, E, F]`,
			wantErr: "generic: template 1",
		},
		{
			name: "template with unknown field",
			doc: `categories:
  - name: generic
    topics: [A]
    templates: ["{{.Topic}} on {{.Platform}}"]
    emojis: ["x"]
    hashtags: [A, B, C, D, E, F]`,
			wantErr: "can't evaluate field Platform",
		},
		{
			name: "too few hashtags",
			doc: `categories:
  - name: generic
    topics: [A]
    templates: ["{{.Topic}}"]
    emojis: ["x"]
    hashtags: [A, B, b]`,
			wantErr: "need at least 6 distinct hashtags, got 2",
		},
		{
			name: "hashtag with hash",
			doc: `categories:
  - name: generic
    topics: [A]
    templates: ["{{.Topic}}"]
    emojis: ["x"]
    hashtags: ["#A", B, C, D, E, F]`,
			wantErr: `hashtag "#A" must be alphanumeric`,
		},
		{
			name: "duplicate topics",
			doc: `categories:
  - name: generic
    topics: [A, a]
    templates: ["{{.Topic}}"]
    emojis: ["x"]
    hashtags: [A, B, C, D, E, F]`,
			wantErr: `generic: topic "a" is repeated`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, embeddedCatalog, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.CategoryFitness, c.Categorize("fitness"))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog")
}
