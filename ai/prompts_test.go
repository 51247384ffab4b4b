package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mrparker/models"
)

func TestRenderSchemaListsTablesColumnsAndRelationships(t *testing.T) {
	schema := &models.Schema{
		Tables: []models.TableInfo{
			{
				Name: "parking_sessions",
				Columns: []models.ColumnInfo{
					{Name: "id", Type: "INTEGER", PrimaryKey: true},
					{Name: "vehicle_id", Type: "INTEGER"},
				},
				Relationships: []models.Relationship{
					{FromColumn: "vehicle_id", ToTable: "vehicles", ToColumn: "id"},
				},
			},
		},
	}

	rendered := RenderSchema(schema)
	assert.Contains(t, rendered, "Table: parking_sessions")
	assert.Contains(t, rendered, "- id (INTEGER) PRIMARY KEY NOT NULL")
	assert.Contains(t, rendered, "parking_sessions.vehicle_id -> vehicles.id")
}

func TestBuildSQLPromptEmbedsSchemaContextAndRules(t *testing.T) {
	schema := &models.Schema{
		Tables: []models.TableInfo{
			{Name: "vehicles", Columns: []models.ColumnInfo{{Name: "color", Type: "TEXT", Nullable: true}}},
		},
	}
	history := []models.Interaction{
		{Query: "how many cars total", SQLQuery: "SELECT COUNT(*) FROM vehicles"},
	}

	prompt := BuildSQLPrompt("how many red cars", history, schema)
	assert.Contains(t, prompt, "Table: vehicles")
	assert.Contains(t, prompt, "Previous Query: how many cars total")
	assert.Contains(t, prompt, "SELECT COUNT(*) FROM vehicles")
	assert.Contains(t, prompt, "datetime()")
	assert.Contains(t, prompt, "JOIN")
	assert.Contains(t, prompt, "how many red cars")
}

func TestBuildSQLPromptLimitsContextToLastThree(t *testing.T) {
	schema := &models.Schema{Tables: []models.TableInfo{{Name: "vehicles"}}}
	history := []models.Interaction{
		{Query: "first question", SQLQuery: "SELECT 1"},
		{Query: "second question", SQLQuery: "SELECT 2"},
		{Query: "third question", SQLQuery: "SELECT 3"},
		{Query: "fourth question", SQLQuery: "SELECT 4"},
	}

	prompt := BuildSQLPrompt("anything", history, schema)
	assert.NotContains(t, prompt, "first question")
	assert.Contains(t, prompt, "second question")
	assert.Contains(t, prompt, "fourth question")
}

func TestAnalyzeQueryType(t *testing.T) {
	tests := []struct {
		utterance string
		expected  models.QueryTypeAnalysis
	}{
		{"How many red cars are parked?", models.QueryTypeAnalysis{IsCount: true}},
		{"What is the average parking fee?", models.QueryTypeAnalysis{IsAggregate: true}},
		{"Compare level 1 and level 2 occupancy", models.QueryTypeAnalysis{IsComparison: true}},
		{"Show the occupancy trend", models.QueryTypeAnalysis{IsTrend: true}},
		{"Who parked here yesterday?", models.QueryTypeAnalysis{TimeRelated: true}},
		{"List all vehicles", models.QueryTypeAnalysis{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AnalyzeQueryType(tt.utterance), "utterance: %s", tt.utterance)
	}
}

func TestQueryTypeLabels(t *testing.T) {
	analysis := models.QueryTypeAnalysis{IsCount: true, TimeRelated: true}
	assert.Equal(t, []string{"count", "time_related"}, analysis.Labels())
}

func TestFormatResultDataScalarCollapses(t *testing.T) {
	result := &models.QueryResult{
		Rows:    [][]interface{}{{int64(3)}},
		Columns: []string{"COUNT(*)"},
	}
	assert.Equal(t, "3", FormatResultData(result))
}

func TestFormatResultDataMultiRow(t *testing.T) {
	result := &models.QueryResult{
		Rows: [][]interface{}{
			{"red", int64(3)},
			{"blue", int64(1)},
		},
		Columns: []string{"color", "count"},
	}

	formatted := FormatResultData(result)
	assert.Contains(t, formatted, "color=red, count=3")
	assert.Contains(t, formatted, "color=blue, count=1")
}

func TestFormatResultDataEmpty(t *testing.T) {
	assert.Equal(t, "No data available", FormatResultData(nil))
	assert.Equal(t, "No data available", FormatResultData(&models.QueryResult{Columns: []string{"a"}}))
}

func TestBuildNarrationPromptMentionsAxesAndContext(t *testing.T) {
	result := &models.QueryResult{
		Rows:    [][]interface{}{{int64(3)}},
		Columns: []string{"COUNT(*)"},
	}
	history := []models.Interaction{
		{Timestamp: time.Now(), Query: "earlier question", Explanation: "earlier answer"},
	}

	system, user := BuildNarrationPrompt(result, "how many red cars", AnalyzeQueryType("how many red cars"), history)
	assert.Contains(t, system, "1-3 sentences")
	assert.Contains(t, user, "Question: how many red cars")
	assert.Contains(t, user, "Data: 3")
	assert.Contains(t, user, "count")
	assert.Contains(t, user, "earlier question")
}
