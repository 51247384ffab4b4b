package followup

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"mrparker/ai"
	"mrparker/models"
)

// Completer is the slice of the AI service the generator needs.
type Completer interface {
	Complete(messages []ai.Message, temperature float64, maxTokens int) (string, error)
}

// clarificationQuestions is returned when the last query produced no rows.
// Three entries, so callers can tell the clarification case apart from a
// generated batch.
var clarificationQuestions = []string{
	"Could you please provide more specific details about what you're looking for?",
	"Would you like to try a different way to phrase your question?",
	"Should we look for similar information using different criteria?",
}

// fallbackPool pads short or unparseable model output up to four questions.
var fallbackPool = []string{
	"Would you like to see any trends or patterns in this data?",
	"Should we compare these results with a different time period?",
	"Would you like a breakdown by parking level or zone?",
	"Should we look at the busiest hours for this data?",
	"Would you like to see the related costs or rates?",
	"Should we check availability for a different time slot?",
	"Would you like to filter these results by vehicle type?",
	"Should we summarize this data differently?",
}

var actionKeywords = map[string][]string{
	"count":   {"count", "how many", "number of"},
	"list":    {"list", "show", "display", "give me"},
	"find":    {"find", "search", "look for", "which", "where"},
	"compare": {"compare", "difference", "versus", "vs"},
}

var colorFilters = []string{"red", "blue", "green", "black", "white", "silver", "gray", "yellow"}

var typeFilters = []string{"suv", "sedan", "truck", "van", "motorcycle", "compact", "electric"}

var aggregationKeywords = []string{"average", "sum", "total", "min", "max", "count"}

var temporalWords = []string{"today", "yesterday", "week", "month", "hour", "time", "recent", "last"}

// queryComponents is the structured reading of an utterance embedded in
// the generation prompt for grounding.
type queryComponents struct {
	Action      string   `json:"action,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	Filters     []string `json:"filters,omitempty"`
	Aggregation string   `json:"aggregation,omitempty"`
	SortOrder   string   `json:"sort_order,omitempty"`
}

// Generator builds follow-up question suggestions. It never fails outward:
// any internal error degrades to the fallback pool so callers always get
// their questions.
type Generator struct {
	completer Completer
	schema    *models.Schema
}

func New(completer Completer, schema *models.Schema) *Generator {
	return &Generator{completer: completer, schema: schema}
}

// Generate returns follow-up questions for the current utterance. Empty
// result sets get the fixed clarification prompts; every other path
// returns exactly four questions.
func (g *Generator) Generate(utterance string, history []models.Interaction, result *models.QueryResult) []string {
	questions, _, _ := g.generate(utterance, history, result)
	return questions
}

// GenerateWithDebug additionally returns the raw model response and the
// prompt used, for the followup endpoint's debug fields.
func (g *Generator) GenerateWithDebug(utterance string, history []models.Interaction, result *models.QueryResult) ([]string, string, string) {
	return g.generate(utterance, history, result)
}

func (g *Generator) generate(utterance string, history []models.Interaction, result *models.QueryResult) ([]string, string, string) {
	if result.Empty() {
		return append([]string(nil), clarificationQuestions...), "", ""
	}

	prompt := g.buildPrompt(utterance, history, result)

	messages := []ai.Message{
		{
			Role: "system",
			Content: "You are a helpful assistant generating follow-up questions for a parking management system. " +
				"Always respond with a JSON array of exactly 4 questions that are relevant to the current query and context. " +
				"Focus on exploring different aspects of the query subject and suggesting related analyses.",
		},
		{Role: "user", Content: prompt},
	}

	raw, err := g.completer.Complete(messages, 0.7, 300)
	if err != nil {
		log.Printf("Follow-up generation failed, using fallback pool: %v", err)
		return padQuestions(nil), raw, prompt
	}

	return padQuestions(parseQuestions(raw)), raw, prompt
}

func (g *Generator) buildPrompt(utterance string, history []models.Interaction, result *models.QueryResult) string {
	components := extractComponents(utterance, g.schema)
	componentsJSON, _ := json.Marshal(components)

	var b strings.Builder
	b.WriteString("Generate exactly 4 follow-up questions for a parking management query assistant.\n\n")
	b.WriteString(ai.RenderSchema(g.schema))
	b.WriteString(fmt.Sprintf("\nCurrent question: %s\n", utterance))
	b.WriteString(fmt.Sprintf("Extracted query components: %s\n", componentsJSON))
	b.WriteString(fmt.Sprintf("Result row count: %d, columns: %s\n", len(result.Rows), strings.Join(result.Columns, ", ")))

	if relevant := g.relevantSchemaHints(utterance); len(relevant) > 0 {
		b.WriteString(fmt.Sprintf("Schema areas relevant to this question: %s\n", strings.Join(relevant, "; ")))
	}

	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		start := 0
		if len(history) > 3 {
			start = len(history) - 3
		}
		for _, interaction := range history[start:] {
			b.WriteString(fmt.Sprintf("- %s\n", interaction.Query))
		}
	}

	b.WriteString("\nReturn ONLY a JSON array of exactly 4 question strings. No explanations, no markdown.")
	return b.String()
}

// relevantSchemaHints scores the utterance against the live schema: table
// mentions, column mentions, temporal columns next to temporal language,
// and numeric columns next to aggregation language.
func (g *Generator) relevantSchemaHints(utterance string) []string {
	lower := strings.ToLower(utterance)
	wantsTime := containsAny(lower, temporalWords)
	wantsAggregate := containsAny(lower, aggregationKeywords)

	var hints []string
	for _, table := range g.schema.Tables {
		if strings.Contains(lower, strings.ToLower(table.Name)) ||
			strings.Contains(lower, strings.TrimSuffix(strings.ToLower(table.Name), "s")) {
			hints = append(hints, fmt.Sprintf("table %s is mentioned", table.Name))
		}
		for _, col := range table.Columns {
			colLower := strings.ToLower(col.Name)
			typeLower := strings.ToLower(col.Type)
			if strings.Contains(lower, colLower) {
				hints = append(hints, fmt.Sprintf("column %s.%s is mentioned", table.Name, col.Name))
			}
			if wantsTime && (strings.Contains(typeLower, "date") || strings.Contains(typeLower, "time") ||
				strings.Contains(colLower, "time") || strings.Contains(colLower, "date")) {
				hints = append(hints, fmt.Sprintf("temporal column %s.%s fits the time language", table.Name, col.Name))
			}
			if wantsAggregate && (strings.Contains(typeLower, "int") || strings.Contains(typeLower, "real") ||
				strings.Contains(typeLower, "numeric") || strings.Contains(typeLower, "decimal")) {
				hints = append(hints, fmt.Sprintf("numeric column %s.%s fits the aggregation language", table.Name, col.Name))
			}
		}
	}
	return hints
}

func extractComponents(utterance string, schema *models.Schema) queryComponents {
	lower := strings.ToLower(utterance)
	components := queryComponents{}

	for action, words := range actionKeywords {
		if containsAny(lower, words) {
			components.Action = action
			break
		}
	}

	for _, table := range schema.Tables {
		name := strings.ToLower(table.Name)
		if strings.Contains(lower, name) || strings.Contains(lower, strings.TrimSuffix(name, "s")) {
			components.Subject = table.Name
			break
		}
	}

	for _, color := range colorFilters {
		if strings.Contains(lower, color) {
			components.Filters = append(components.Filters, "color:"+color)
		}
	}
	for _, vehicleType := range typeFilters {
		if strings.Contains(lower, vehicleType) {
			components.Filters = append(components.Filters, "type:"+vehicleType)
		}
	}

	for _, agg := range aggregationKeywords {
		if strings.Contains(lower, agg) {
			components.Aggregation = agg
			break
		}
	}

	if containsAny(lower, []string{"highest", "most", "top", "largest"}) {
		components.SortOrder = "desc"
	} else if containsAny(lower, []string{"lowest", "least", "bottom", "smallest"}) {
		components.SortOrder = "asc"
	}

	return components
}

// parseQuestions reads the model output defensively: direct parse first,
// then the substring between the first '[' and last ']'.
func parseQuestions(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if questions := unmarshalStrings(cleaned); questions != nil {
		return questions
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		return unmarshalStrings(cleaned[start : end+1])
	}
	return nil
}

func unmarshalStrings(data string) []string {
	var items []interface{}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil
	}

	var questions []string
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				questions = append(questions, trimmed)
			}
		case float64:
			questions = append(questions, fmt.Sprintf("%v", v))
		}
	}
	return questions
}

// padQuestions dedupes, pads from the fallback pool, and truncates so the
// result is always exactly four questions.
func padQuestions(questions []string) []string {
	seen := make(map[string]bool)
	unique := make([]string, 0, 4)
	for _, q := range questions {
		if !seen[q] {
			seen[q] = true
			unique = append(unique, q)
		}
	}

	for len(unique) < 4 {
		candidate := fallbackPool[rand.Intn(len(fallbackPool))]
		if !seen[candidate] {
			seen[candidate] = true
			unique = append(unique, candidate)
		}
	}

	return unique[:4]
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
