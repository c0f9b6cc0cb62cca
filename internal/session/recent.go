package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// RecentTopicsKey is the key-value entry holding the recent topics list.
const RecentTopicsKey = "recent_topics"

// MaxRecentTopics is how many recent topics are remembered.
const MaxRecentTopics = 3

// RecentTopics is a most-recent-first list of unique topic names.
type RecentTopics []string

// Push returns a new list with topic moved to the front, truncated to
// MaxRecentTopics.
func (r RecentTopics) Push(topic string) RecentTopics {
	out := make(RecentTopics, 0, MaxRecentTopics)
	out = append(out, topic)
	for _, t := range r {
		if len(out) == MaxRecentTopics {
			break
		}
		if t != topic {
			out = append(out, t)
		}
	}
	return out
}

// Encode serializes the list as a JSON array.
func (r RecentTopics) Encode() (string, error) {
	if r == nil {
		r = RecentTopics{}
	}
	b, err := json.Marshal([]string(r))
	if err != nil {
		return "", fmt.Errorf("encode recent topics: %w", err)
	}
	return string(b), nil
}

// DecodeRecent parses a stored list. Blank and duplicate entries are
// dropped and the result is truncated to MaxRecentTopics.
func DecodeRecent(s string) (RecentTopics, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var raw []string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("decode recent topics: %w", err)
	}

	out := make(RecentTopics, 0, MaxRecentTopics)
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		if len(out) == MaxRecentTopics {
			break
		}
		if strings.TrimSpace(t) == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// KeyValueStore is the string-keyed persistence the recent list lives in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LoadRecent reads the recent topics list. A missing entry is an empty list.
func LoadRecent(ctx context.Context, kv KeyValueStore) (RecentTopics, error) {
	v, ok, err := kv.Get(ctx, RecentTopicsKey)
	if err != nil {
		return nil, fmt.Errorf("load recent topics: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return DecodeRecent(v)
}

// SaveRecent writes the recent topics list.
func SaveRecent(ctx context.Context, kv KeyValueStore, r RecentTopics) error {
	v, err := r.Encode()
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, RecentTopicsKey, v); err != nil {
		return fmt.Errorf("save recent topics: %w", err)
	}
	return nil
}
