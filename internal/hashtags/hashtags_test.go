package hashtags

import (
	"math/rand/v2"
	"strings"
	"testing"

	"cadence/internal/catalog"
	"cadence/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Morning Workout Routines", "MorningWorkoutRoutines"},
		{"Self-Care Sunday Ideas", "SelfCareSundayIdeas"},
		{"Beginner's Guide", "BeginnersGuide"},
		{"Q&A Session", "QASession"},
		{"AI Tools for Productivity", "AIToolsForProductivity"},
		{"  !!! ", ""},
		{"Quick Stretches for Back Pain (Deep Dive)", "QuickStretchesForBackPainDeep"},
		{strings.Repeat("a", 40), strings.Repeat("a", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestDerive(t *testing.T) {
	assert.Equal(t, []string{"PhotographyBasics", "ExpertTips"}, Derive("Photography Basics: Expert Tips"))
	assert.Equal(t, []string{"HydrationTips"}, Derive("Hydration Tips"))
	assert.Equal(t, []string{"A", "B"}, Derive("a: b: c"))
	assert.Empty(t, Derive("--- :: ---"))
}

func TestHashtagsBounds(t *testing.T) {
	c := catalog.Default()
	a := NewAssembler(c)

	for _, cat := range core.Categories() {
		topics := c.TopicsFor(cat, "Travel Hacking", core.MaxDays)
		for i, topic := range topics {
			tags := a.Hashtags(topic, cat, i+1)
			require.GreaterOrEqual(t, len(tags), MinTags, "%s day %d: %v", cat, i+1, tags)
			require.LessOrEqual(t, len(tags), MaxTags, "%s day %d: %v", cat, i+1, tags)

			seen := make(map[string]bool)
			for _, tag := range tags {
				require.True(t, strings.HasPrefix(tag, "#"), "tag %q lacks '#'", tag)
				require.False(t, seen[strings.ToLower(tag)], "duplicate tag %q in %v", tag, tags)
				seen[strings.ToLower(tag)] = true
			}
		}
	}
}

func TestHashtagsIncludeAnchorTag(t *testing.T) {
	a := NewAssembler(nil)
	tags := a.Hashtags("Morning Workout Routines", core.CategoryFitness, 1)
	assert.Contains(t, tags, "#Fitness")
	assert.Equal(t, "#MorningWorkoutRoutines", tags[0])
}

func TestHashtagsFallBackToCategoryOnly(t *testing.T) {
	c := catalog.Default()
	a := NewAssembler(c)
	tags := a.Hashtags("!!!", core.CategoryTechnology, 3)

	require.Len(t, tags, 4)
	pool := make(map[string]bool)
	for _, tag := range c.Pool(core.CategoryTechnology).Hashtags {
		pool["#"+tag] = true
	}
	for _, tag := range tags {
		assert.True(t, pool[tag], "tag %q should come from the category pool", tag)
	}
}

func TestHashtagsSkipDuplicateOfPool(t *testing.T) {
	a := NewAssembler(nil)
	tags := a.Hashtags("Mindfulness", core.CategoryMentalHealth, 2)

	count := 0
	for _, tag := range tags {
		if strings.EqualFold(tag, "#Mindfulness") {
			count++
		}
	}
	assert.Equal(t, 1, count, "tags: %v", tags)
	assert.Len(t, tags, 5)
}

func TestHashtagsSeeded(t *testing.T) {
	build := func() []string {
		a := NewAssembler(nil).WithRand(rand.New(rand.NewPCG(7, 7)))
		var out []string
		for day := 1; day <= 5; day++ {
			out = append(out, Join(a.Hashtags("Networking Strategies", core.CategoryBusiness, day)))
		}
		return out
	}
	assert.Equal(t, build(), build())
}

func TestJoinAndSplit(t *testing.T) {
	tags := []string{"#One", "#Two", "#Three"}
	joined := Join(tags)
	assert.Equal(t, "#One #Two #Three", joined)
	assert.Equal(t, tags, Split(joined))
	assert.Equal(t, tags, Split("#One, #Two,#Three"))
}
