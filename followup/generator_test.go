package followup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrparker/ai"
	"mrparker/models"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(messages []ai.Message, temperature float64, maxTokens int) (string, error) {
	s.calls++
	return s.reply, s.err
}

func parkingSchema() *models.Schema {
	return &models.Schema{
		Tables: []models.TableInfo{
			{
				Name: "vehicles",
				Columns: []models.ColumnInfo{
					{Name: "id", Type: "INTEGER", PrimaryKey: true},
					{Name: "color", Type: "TEXT", Nullable: true},
					{Name: "entry_time", Type: "DATETIME", Nullable: true},
					{Name: "fee", Type: "REAL", Nullable: true},
				},
			},
		},
	}
}

func someResult() *models.QueryResult {
	return &models.QueryResult{
		Rows:    [][]interface{}{{"red", int64(3)}},
		Columns: []string{"color", "count"},
	}
}

func TestGenerateEmptyResultsReturnsClarifications(t *testing.T) {
	completer := &stubCompleter{}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("show me purple trucks", nil, &models.QueryResult{})
	require.Len(t, questions, 3)
	assert.Contains(t, questions[0], "more specific details")

	// The model is never called on the empty branch.
	assert.Zero(t, completer.calls)
}

func TestGenerateParsesCleanJSONArray(t *testing.T) {
	completer := &stubCompleter{reply: `["Q one?", "Q two?", "Q three?", "Q four?"]`}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	assert.Equal(t, []string{"Q one?", "Q two?", "Q three?", "Q four?"}, questions)
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	completer := &stubCompleter{reply: "```json\n[\"A?\", \"B?\", \"C?\", \"D?\"]\n```"}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	assert.Equal(t, []string{"A?", "B?", "C?", "D?"}, questions)
}

func TestGenerateRecoversArrayFromSurroundingProse(t *testing.T) {
	completer := &stubCompleter{
		reply: `Here are some follow-up questions: ["E?", "F?", "G?", "H?"] hope that helps!`,
	}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	assert.Equal(t, []string{"E?", "F?", "G?", "H?"}, questions)
}

func TestGenerateMalformedOutputStillYieldsFour(t *testing.T) {
	completer := &stubCompleter{reply: "I am not JSON at all"}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	require.Len(t, questions, 4)
	for _, q := range questions {
		assert.NotEmpty(t, q)
	}
}

func TestGenerateShortOutputPadsToFour(t *testing.T) {
	completer := &stubCompleter{reply: `["Only one question?"]`}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	require.Len(t, questions, 4)
	assert.Equal(t, "Only one question?", questions[0])

	seen := make(map[string]bool)
	for _, q := range questions {
		assert.False(t, seen[q], "question %q duplicated", q)
		seen[q] = true
	}
}

func TestGenerateExcessOutputTruncatesToFour(t *testing.T) {
	completer := &stubCompleter{reply: `["1?", "2?", "3?", "4?", "5?", "6?"]`}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	assert.Equal(t, []string{"1?", "2?", "3?", "4?"}, questions)
}

func TestGenerateCompleterFailureFallsBack(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model unavailable")}
	generator := New(completer, parkingSchema())

	questions := generator.Generate("how many red cars", nil, someResult())
	require.Len(t, questions, 4)
}

func TestGenerateWithDebugExposesPromptAndRawResponse(t *testing.T) {
	completer := &stubCompleter{reply: `["A?", "B?", "C?", "D?"]`}
	generator := New(completer, parkingSchema())

	questions, raw, prompt := generator.GenerateWithDebug("how many red vehicles", nil, someResult())
	require.Len(t, questions, 4)
	assert.Equal(t, completer.reply, raw)
	assert.Contains(t, prompt, "Table: vehicles")
	assert.Contains(t, prompt, "how many red vehicles")
	assert.Contains(t, prompt, "JSON array of exactly 4")
}

func TestExtractComponents(t *testing.T) {
	schema := parkingSchema()

	components := extractComponents("how many red suv vehicles have the highest total fee", schema)
	assert.Equal(t, "count", components.Action)
	assert.Equal(t, "vehicles", components.Subject)
	assert.Contains(t, components.Filters, "color:red")
	assert.Contains(t, components.Filters, "type:suv")
	assert.Equal(t, "total", components.Aggregation)
	assert.Equal(t, "desc", components.SortOrder)
}

func TestExtractComponentsSingularTableMention(t *testing.T) {
	components := extractComponents("find the cheapest vehicle", parkingSchema())
	assert.Equal(t, "find", components.Action)
	assert.Equal(t, "vehicles", components.Subject)
}

func TestRelevantSchemaHints(t *testing.T) {
	generator := New(&stubCompleter{}, parkingSchema())

	hints := generator.relevantSchemaHints("what was the average fee last week")
	joined := ""
	for _, h := range hints {
		joined += h + "\n"
	}
	assert.Contains(t, joined, "vehicles.fee")
	assert.Contains(t, joined, "temporal column vehicles.entry_time")
}
