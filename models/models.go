package models

import "time"

type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type QueryResponse struct {
	Success           bool             `json:"success"`
	SessionID         string           `json:"session_id"`
	SQLQuery          string           `json:"sql_query"`
	Results           [][]interface{}  `json:"results"`
	Columns           []string         `json:"columns"`
	Explanation       string           `json:"explanation"`
	ContextUsed       bool             `json:"context_used"`
	ContextAnalysis   *ContextAnalysis `json:"context_analysis,omitempty"`
	FollowupQuestions []string         `json:"followup_questions,omitempty"`
	Visualization     *Visualization   `json:"visualization,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Interaction is one recorded conversation turn. It is immutable once
// created and owned exclusively by the session store.
type Interaction struct {
	Timestamp     time.Time       `json:"timestamp"`
	Query         string          `json:"query"`
	SQLQuery      string          `json:"sql_query"`
	Results       [][]interface{} `json:"results"`
	Columns       []string        `json:"columns"`
	Explanation   string          `json:"explanation"`
	Visualization *Visualization  `json:"visualization,omitempty"`
}

type Visualization struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type ContextAnalysis struct {
	CommonTopics     map[string]int `json:"common_topics"`
	Patterns         map[string]int `json:"patterns"`
	InteractionCount int            `json:"interaction_count"`
	RecentTopic      string         `json:"recent_topic,omitempty"`
}

// QueryResult holds the fully materialized output of one SQL statement.
type QueryResult struct {
	Rows    [][]interface{} `json:"results"`
	Columns []string        `json:"columns"`
}

func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// QueryTypeAnalysis classifies an utterance along fixed keyword axes.
// It shapes the narration prompt.
type QueryTypeAnalysis struct {
	IsCount      bool `json:"is_count"`
	IsAggregate  bool `json:"is_aggregate"`
	IsComparison bool `json:"is_comparison"`
	IsTrend      bool `json:"is_trend"`
	TimeRelated  bool `json:"time_related"`
}

// Labels returns the names of the detected axes, in a fixed order.
func (a QueryTypeAnalysis) Labels() []string {
	var labels []string
	if a.IsCount {
		labels = append(labels, "count")
	}
	if a.IsAggregate {
		labels = append(labels, "aggregate")
	}
	if a.IsComparison {
		labels = append(labels, "comparison")
	}
	if a.IsTrend {
		labels = append(labels, "trend")
	}
	if a.TimeRelated {
		labels = append(labels, "time_related")
	}
	return labels
}

type NarrationResult struct {
	Explanation string            `json:"explanation"`
	QueryType   QueryTypeAnalysis `json:"query_type"`
	Timestamp   time.Time         `json:"timestamp"`
	ContextUsed bool              `json:"context_used"`
}

type FollowupRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query,omitempty"`
}

type FollowupResponse struct {
	Success           bool       `json:"success"`
	SessionID         string     `json:"session_id"`
	FollowupQuestions []string   `json:"followup_questions"`
	ContextUsed       bool       `json:"context_used"`
	DebugInfo         *DebugInfo `json:"debug_info,omitempty"`
}

// DebugInfo exposes the raw model exchange on the followup endpoint.
// Internal tooling only.
type DebugInfo struct {
	RawLLMResponse string `json:"raw_llm_response"`
	PromptUsed     string `json:"prompt_used"`
}
