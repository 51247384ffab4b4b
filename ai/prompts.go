package ai

import (
	"fmt"
	"strings"

	"mrparker/models"
)

// RenderSchema lists every table with its columns and foreign-key edges in
// the form the generation prompt expects.
func RenderSchema(schema *models.Schema) string {
	var b strings.Builder
	b.WriteString("Database Schema:\n\n")

	for _, table := range schema.Tables {
		b.WriteString(fmt.Sprintf("Table: %s\n", table.Name))
		b.WriteString("Columns:\n")
		for _, col := range table.Columns {
			b.WriteString(fmt.Sprintf("- %s (%s)", col.Name, col.Type))
			if col.PrimaryKey {
				b.WriteString(" PRIMARY KEY")
			}
			if !col.Nullable {
				b.WriteString(" NOT NULL")
			}
			b.WriteString("\n")
		}
		if len(table.Relationships) > 0 {
			b.WriteString("Relationships:\n")
			for _, rel := range table.Relationships {
				b.WriteString(fmt.Sprintf("- %s.%s -> %s.%s\n", table.Name, rel.FromColumn, rel.ToTable, rel.ToColumn))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderContext formats up to the last 3 interactions as utterance/SQL
// pairs for the generation prompt.
func renderContext(history []models.Interaction) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > 3 {
		history = history[len(history)-3:]
	}

	var pairs []string
	for _, interaction := range history {
		if interaction.Query != "" && interaction.SQLQuery != "" {
			pairs = append(pairs, fmt.Sprintf("Previous Query: %s\nSQL: %s", interaction.Query, interaction.SQLQuery))
		}
	}
	if len(pairs) == 0 {
		return ""
	}

	return "\nRecent queries for context:\n" + strings.Join(pairs, "\n\n") + "\n"
}

// BuildSQLPrompt constructs the system prompt for SQL generation.
func BuildSQLPrompt(utterance string, history []models.Interaction, schema *models.Schema) string {
	var b strings.Builder
	b.WriteString("You are an expert SQL query generator. Your task is to convert natural language queries into valid SQL queries based on the provided database schema.\n\n")
	b.WriteString(RenderSchema(schema))
	b.WriteString("\nRules for generating SQL queries:\n")
	b.WriteString("1. Use proper JOIN syntax when relating multiple tables\n")
	b.WriteString("2. Consider table relationships and use appropriate JOIN conditions\n")
	b.WriteString("3. Handle NULL values appropriately\n")
	b.WriteString("4. Use table aliases when necessary for clarity\n")
	b.WriteString("5. Return only the requested columns, use * only when specifically asked\n")
	b.WriteString("6. Include WHERE clauses based on the natural language conditions\n")
	b.WriteString("7. Use appropriate aggregation functions when needed (COUNT, SUM, AVG, etc.)\n")
	b.WriteString("8. For queries involving date or time ranges (e.g. 'last 2 days', 'since last week'), always use the datetime() function supported by SQLite rather than DATE_SUB or other date manipulation functions.\n")
	b.WriteString("   Example: SELECT * FROM sessions WHERE entry_time >= datetime('now', '-2 days');\n")
	b.WriteString(renderContext(history))
	b.WriteString("\nGenerate a SQL query for the following natural language request:\n")
	b.WriteString(utterance)
	b.WriteString("\n\nReturn only the SQL query without any explanation.")

	return b.String()
}

// AnalyzeQueryType classifies the utterance along fixed boolean axes by
// keyword membership.
func AnalyzeQueryType(utterance string) models.QueryTypeAnalysis {
	lower := strings.ToLower(utterance)

	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	return models.QueryTypeAnalysis{
		IsCount:      has("count", "how many", "number of"),
		IsAggregate:  has("average", "sum", "total", "min", "max"),
		IsComparison: has("compare", "difference", "versus", "vs"),
		IsTrend:      has("trend", "over time", "pattern"),
		TimeRelated:  has("today", "yesterday", "last week", "this month"),
	}
}

// FormatResultData renders a result set as prompt text. A single scalar
// collapses to its bare value; otherwise each row becomes a column=value
// line.
func FormatResultData(result *models.QueryResult) string {
	if result == nil || len(result.Rows) == 0 || len(result.Columns) == 0 {
		return "No data available"
	}

	if len(result.Rows) == 1 && len(result.Rows[0]) == 1 {
		return fmt.Sprintf("%v", result.Rows[0][0])
	}

	var lines []string
	for _, row := range result.Rows {
		var fields []string
		for i, col := range result.Columns {
			if i < len(row) {
				fields = append(fields, fmt.Sprintf("%s=%v", col, row[i]))
			}
		}
		lines = append(lines, strings.Join(fields, ", "))
	}
	return strings.Join(lines, "\n")
}

// summarizeContext renders prior interactions briefly for the narration
// prompt, utterance and explanation only.
func summarizeContext(history []models.Interaction) string {
	if len(history) == 0 {
		return "None"
	}

	var lines []string
	for _, interaction := range history {
		lines = append(lines, fmt.Sprintf("Q: %s / A: %s", interaction.Query, interaction.Explanation))
	}
	return strings.Join(lines, "\n")
}

// BuildNarrationPrompt builds the system and user prompts for phrasing a
// result set back into prose.
func BuildNarrationPrompt(result *models.QueryResult, utterance string, analysis models.QueryTypeAnalysis, history []models.Interaction) (string, string) {
	systemPrompt := "You are an intelligent data interpreter that provides clear, natural language explanations. " +
		"Focus on directly answering the user's question with relevant insights from the data. " +
		"Keep responses concise and professional, typically 1-3 sentences.\n" +
		"Guidelines:\n" +
		"- Avoid phrases like 'the data shows' or 'based on the results'\n" +
		"- Start responses with the key information the user asked for\n" +
		"- Include specific numbers and metrics when present\n" +
		"- For trends or patterns, highlight significant changes\n" +
		"- With comparisons, emphasize key differences\n" +
		"- For time-based queries, mention the relevant time period"

	userPrompt := fmt.Sprintf(
		"Question: %s\nData: %s\nQuery Type: %s\nPrevious Context: %s\n\nGenerate a clear, direct explanation that answers the user's question.",
		utterance,
		FormatResultData(result),
		strings.Join(analysis.Labels(), ", "),
		summarizeContext(history),
	)

	return systemPrompt, userPrompt
}
