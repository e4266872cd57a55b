package pipeline

import "cadence/internal/core"

// ThemeCategorizer maps a free-text theme to a category
type ThemeCategorizer interface {
	Categorize(theme string) core.Category
}

// TopicSource produces the topic for a 1-based day
type TopicSource interface {
	Topic(category core.Category, theme string, day int) string
}

// CaptionWriter renders the template caption for a topic
type CaptionWriter interface {
	Caption(topic string, category core.Category, day int) (string, error)
}

// HashtagAssembler builds the hashtag set for a topic
type HashtagAssembler interface {
	Hashtags(topic string, category core.Category, day int) []string
}
