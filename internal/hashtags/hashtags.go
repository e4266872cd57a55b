// Package hashtags builds the hashtag set for a calendar day from the topic
// text and the category's fixed pool.
package hashtags

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"cadence/internal/catalog"
	"cadence/internal/core"
)

const (
	MinTags = 3
	MaxTags = 6

	targetTags = 5
	maxDerived = 2
	maxTagLen  = 30
)

// Assembler combines topic-derived tags with picks from a category pool.
type Assembler struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewAssembler creates an assembler that rotates through pools by day index.
func NewAssembler(c *catalog.Catalog) *Assembler {
	if c == nil {
		c = catalog.Default()
	}
	return &Assembler{catalog: c}
}

// WithRand makes pool picks start at a random offset drawn from r.
func (a *Assembler) WithRand(r *rand.Rand) *Assembler {
	return &Assembler{catalog: a.catalog, rng: r}
}

// Hashtags returns 3 to 6 distinct '#'-prefixed tags for the topic.
// Up to two tags come from the topic itself, the rest from the category pool,
// always including the pool's anchor tag. A topic with no usable characters
// yields category tags only.
func (a *Assembler) Hashtags(topic string, category core.Category, day int) []string {
	pool := a.catalog.Pool(category)
	derived := Derive(topic)

	want := targetTags
	if len(derived) == 0 {
		want = 4
	}

	tags := make([]string, 0, want)
	seen := make(map[string]bool, want)
	add := func(tag string) {
		key := strings.ToLower(tag)
		if tag == "" || seen[key] || len(tags) >= want {
			return
		}
		seen[key] = true
		tags = append(tags, "#"+tag)
	}

	for _, tag := range derived {
		add(tag)
	}
	add(pool.AnchorTag())

	others := pool.Hashtags[1:]
	start := (day - 1) * 2
	if a.rng != nil {
		start = a.rng.IntN(len(others))
	}
	for i := 0; i < len(others) && len(tags) < want; i++ {
		add(others[mod(start+i, len(others))])
	}

	return tags
}

// Join renders tags as the single space-separated string stored on a DayEntry.
func Join(tags []string) string {
	return strings.Join(tags, " ")
}

// Split parses a Hashtags string back into its tokens.
func Split(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

// Derive turns a topic into at most two hashtag bodies (without '#'). The topic
// is split on ':' and each segment is normalized with Normalize.
func Derive(topic string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, segment := range strings.Split(topic, ":") {
		tag := Normalize(segment)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
		if len(out) == maxDerived {
			break
		}
	}
	return out
}

// Normalize strips punctuation from text and concatenates its words in
// CamelCase, stopping at a word boundary before the tag exceeds 30 characters.
func Normalize(text string) string {
	text = strings.NewReplacer("'", "", "’", "").Replace(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	length := 0
	for _, word := range words {
		word = capitalize(word)
		n := utf8.RuneCountInString(word)
		if length+n > maxTagLen {
			if length == 0 {
				sb.WriteString(string([]rune(word)[:maxTagLen]))
			}
			break
		}
		sb.WriteString(word)
		length += n
	}
	return sb.String()
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
