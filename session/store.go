package session

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mrparker/models"
)

// Topic and pattern taxonomies used by Analyze. Fixed at compile time.
var topicKeywords = map[string][]string{
	"availability": {"available", "availability", "empty", "free", "open", "vacant"},
	"cost":         {"cost", "price", "rate", "fee", "charge", "payment"},
	"location":     {"location", "where", "spot", "level", "floor", "zone"},
	"timing":       {"time", "duration", "hours", "long", "when", "today", "yesterday"},
}

var patternKeywords = map[string][]string{
	"comparison":      {"compare", "difference", "versus", "vs"},
	"trend":           {"trend", "pattern", "history", "over time"},
	"specific_search": {"find", "show", "list", "which", "what"},
}

// Store keeps a bounded FIFO interaction history per session. All access
// is serialized so concurrent adds on the same session preserve the bound.
type Store struct {
	mu         sync.Mutex
	maxHistory int
	sessions   map[string][]models.Interaction
}

func NewStore(maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = 5
	}
	return &Store{
		maxHistory: maxHistory,
		sessions:   make(map[string][]models.Interaction),
	}
}

// Add appends one interaction, evicting the oldest once the session
// exceeds the configured history size.
func (s *Store) Add(sessionID string, interaction models.Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], interaction)
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	s.sessions[sessionID] = history
}

// Get returns the most recent n interactions in chronological order.
// n <= 0 means all. Unknown sessions yield an empty slice, never an error.
func (s *Store) Get(sessionID string, n int) []models.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	if n <= 0 || n > len(history) {
		n = len(history)
	}

	out := make([]models.Interaction, n)
	copy(out, history[len(history)-n:])
	return out
}

// Clear removes the session entirely. Clearing an absent session is a no-op.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Analyze scans stored utterances against the topic and pattern taxonomies.
// Topics count as "common" only when seen more than once.
func (s *Store) Analyze(sessionID string) models.ContextAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	analysis := models.ContextAnalysis{
		CommonTopics:     make(map[string]int),
		Patterns:         make(map[string]int),
		InteractionCount: len(history),
	}

	topicCounts := make(map[string]int)
	for _, interaction := range history {
		lower := strings.ToLower(interaction.Query)
		for topic, words := range topicKeywords {
			if containsAny(lower, words) {
				topicCounts[topic]++
			}
		}
		for pattern, words := range patternKeywords {
			if containsAny(lower, words) {
				analysis.Patterns[pattern]++
			}
		}
	}

	var commonTopics []string
	for topic, count := range topicCounts {
		if count > 1 {
			analysis.CommonTopics[topic] = count
			commonTopics = append(commonTopics, topic)
		}
	}
	// Sorted so ties within one interaction resolve the same way every run.
	sort.Strings(commonTopics)

	// Most recently seen common topic wins.
	for i := len(history) - 1; i >= 0 && analysis.RecentTopic == ""; i-- {
		lower := strings.ToLower(history[i].Query)
		for _, topic := range commonTopics {
			if containsAny(lower, topicKeywords[topic]) {
				analysis.RecentTopic = topic
				break
			}
		}
	}

	return analysis
}

// Relevant ranks stored interactions by word overlap with the query and
// returns the top 3. Scores tie-break by original chronological order.
func (s *Store) Relevant(sessionID string, query string) []models.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	queryWords := tokenSet(query)

	type scored struct {
		interaction models.Interaction
		score       int
	}

	ranked := make([]scored, 0, len(history))
	for _, interaction := range history {
		score := 0
		for word := range tokenSet(interaction.Query) {
			if queryWords[word] {
				score++
			}
		}
		ranked = append(ranked, scored{interaction, score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	out := make([]models.Interaction, len(ranked))
	for i, r := range ranked {
		out[i] = r.interaction
	}
	return out
}

// Export serializes the full history. Only json is supported.
func (s *Store) Export(sessionID string, format string) (string, error) {
	if strings.ToLower(format) != "json" {
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
	}

	s.mu.Lock()
	history := s.sessions[sessionID]
	out := make([]models.Interaction, len(history))
	copy(out, history)
	s.mu.Unlock()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}
