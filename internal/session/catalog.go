package session

import "strings"

// SuggestedTopic is an entry in the built-in topic catalogue.
type SuggestedTopic struct {
	Name     string
	Category string
}

var suggested = []SuggestedTopic{
	{Name: "Photosynthesis", Category: "Science"},
	{Name: "Fractions", Category: "Math"},
	{Name: "Water Cycle", Category: "Science"},
	{Name: "Verbs", Category: "English"},
	{Name: "Solar System", Category: "Science"},
	{Name: "Decimals", Category: "Math"},
}

// SuggestedTopics returns the built-in catalogue.
func SuggestedTopics() []SuggestedTopic {
	out := make([]SuggestedTopic, len(suggested))
	copy(out, suggested)
	return out
}

// FilterTopics keeps topics whose name or category contains query,
// ignoring case. An empty query keeps everything.
func FilterTopics(topics []SuggestedTopic, query string) []SuggestedTopic {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return topics
	}
	var out []SuggestedTopic
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}
