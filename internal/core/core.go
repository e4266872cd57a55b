package core

import "strings"

const (
	// MinDays is the shortest calendar that can be generated.
	MinDays = 7
	// MaxDays is the longest calendar that can be generated.
	MaxDays = 90
	// DefaultDays is used when the caller does not ask for a specific length.
	DefaultDays = 30
)

// Category selects the topic, template and hashtag pools used for a run.
type Category string

const (
	CategoryFitness      Category = "fitness"
	CategoryMentalHealth Category = "mental-health"
	CategoryBusiness     Category = "business"
	CategoryTechnology   Category = "technology"
	CategoryGeneric      Category = "generic"
)

// Categories lists every category in keyword-matching priority order.
// Generic is last because it is the fallback.
func Categories() []Category {
	return []Category{
		CategoryFitness,
		CategoryMentalHealth,
		CategoryBusiness,
		CategoryTechnology,
		CategoryGeneric,
	}
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories() {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// DayEntry is one row of the content calendar.
type DayEntry struct {
	Day      int    `json:"Day"`      // 1-based day index
	Topic    string `json:"Topic"`    // Topic for the day
	Caption  string `json:"Caption"`  // Post caption, template-generated or rewritten
	Hashtags string `json:"Hashtags"` // Space-separated #tag tokens
}

// ContentPlan is the ordered sequence of days produced by one generation call.
type ContentPlan []DayEntry

// Topics returns the topic of every day, in day order.
func (p ContentPlan) Topics() []string {
	topics := make([]string, len(p))
	for i, entry := range p {
		topics[i] = entry.Topic
	}
	return topics
}

// Clone returns a copy that can be modified without touching p.
func (p ContentPlan) Clone() ContentPlan {
	if p == nil {
		return nil
	}
	out := make(ContentPlan, len(p))
	copy(out, p)
	return out
}

// ValidDays reports whether days is inside the supported range.
func ValidDays(days int) bool {
	return days >= MinDays && days <= MaxDays
}
