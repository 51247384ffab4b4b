package service

import (
	"log"
	"strings"
	"time"

	"mrparker/models"
	"mrparker/session"
)

// noResultExplanation substitutes for narration when a query returns no
// rows; the model is not called in that case.
const noResultExplanation = "I didn't understand the question. Could you please try asking again."

type Translator interface {
	TranslateToSQL(utterance string, history []models.Interaction, schema *models.Schema) (string, error)
}

type Executor interface {
	Execute(sqlQuery string) (*models.QueryResult, error)
}

type Narrator interface {
	NarrateResult(result *models.QueryResult, utterance string, history []models.Interaction) (*models.NarrationResult, error)
}

type FollowupGenerator interface {
	Generate(utterance string, history []models.Interaction, result *models.QueryResult) []string
}

type Archiver interface {
	Store(sessionID string, interaction models.Interaction) error
}

// Pipeline sequences one utterance through context read, translation,
// execution, narration, follow-up generation, and context write-back. It
// short-circuits on the first failing stage; each stage's error already
// carries its sentinel label.
type Pipeline struct {
	store      *session.Store
	schema     *models.Schema
	translator Translator
	executor   Executor
	narrator   Narrator
	followups  FollowupGenerator
	archive    Archiver
}

func NewPipeline(store *session.Store, schema *models.Schema, translator Translator, executor Executor, narrator Narrator, followups FollowupGenerator, archive Archiver) *Pipeline {
	return &Pipeline{
		store:      store,
		schema:     schema,
		translator: translator,
		executor:   executor,
		narrator:   narrator,
		followups:  followups,
		archive:    archive,
	}
}

func (p *Pipeline) Process(sessionID, query string) (*models.QueryResponse, error) {
	history := p.store.Get(sessionID, 3)
	contextUsed := len(history) > 0

	sqlQuery, err := p.translator.TranslateToSQL(query, history, p.schema)
	if err != nil {
		return nil, err
	}

	result, err := p.executor.Execute(sqlQuery)
	if err != nil {
		return nil, err
	}

	var explanation string
	if result.Empty() {
		explanation = noResultExplanation
	} else {
		narration, err := p.narrator.NarrateResult(result, query, history)
		if err != nil {
			return nil, err
		}
		explanation = narration.Explanation
	}

	followupQuestions := p.followups.Generate(query, history, result)
	visualization := visualizationFor(query)

	interaction := models.Interaction{
		Timestamp:     time.Now(),
		Query:         query,
		SQLQuery:      sqlQuery,
		Results:       result.Rows,
		Columns:       result.Columns,
		Explanation:   explanation,
		Visualization: visualization,
	}
	p.store.Add(sessionID, interaction)

	if p.archive != nil {
		if err := p.archive.Store(sessionID, interaction); err != nil {
			log.Printf("Error archiving interaction for session %s: %v", sessionID, err)
		}
	}

	analysis := p.store.Analyze(sessionID)

	return &models.QueryResponse{
		Success:           true,
		SessionID:         sessionID,
		SQLQuery:          sqlQuery,
		Results:           result.Rows,
		Columns:           result.Columns,
		Explanation:       explanation,
		ContextUsed:       contextUsed,
		ContextAnalysis:   &analysis,
		FollowupQuestions: followupQuestions,
		Visualization:     visualization,
	}, nil
}

// visualizationFor picks a chart hint from the utterance keywords. Data is
// left to the presentation layer.
func visualizationFor(query string) *models.Visualization {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "trend"):
		return &models.Visualization{Type: "line"}
	case strings.Contains(lower, "compare"):
		return &models.Visualization{Type: "bar"}
	case strings.Contains(lower, "distribution"):
		return &models.Visualization{Type: "pie"}
	}
	return nil
}
