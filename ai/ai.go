package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mrparker/cache"
	"mrparker/models"
)

// requestTimeout bounds every completion call. Failed calls are reported,
// never retried; the caller resubmits.
const requestTimeout = 30 * time.Second

// Service talks to the Groq OpenAI-compatible chat-completions endpoint.
// It covers SQL translation and result narration; the followup package
// reuses Complete for its own prompt.
type Service struct {
	apiKey     string
	modelName  string
	apiURL     string
	cache      *cache.Cache
	httpClient *http.Client
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func New(apiKey, modelName, apiURL string, cache *cache.Cache) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion service API key is required")
	}

	return &Service{
		apiKey:    apiKey,
		modelName: modelName,
		apiURL:    apiURL,
		cache:     cache,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

func (s *Service) Close() error {
	// HTTP client doesn't require explicit closing
	return nil
}

// Complete sends one request to the completion service and returns the
// first choice's content.
func (s *Service) Complete(messages []Message, temperature float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       s.modelName,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("API error (status %d): %s - %s",
				resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// TranslateToSQL converts an utterance into a SQL statement against the
// known schema. The candidate is accepted only if it begins with SELECT;
// anything else is rejected before it can reach the executor.
func (s *Service) TranslateToSQL(utterance string, history []models.Interaction, schema *models.Schema) (string, error) {
	prompt := BuildSQLPrompt(utterance, history, schema)

	cacheKey := fmt.Sprintf("sql:%s", prompt)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	messages := []Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: utterance},
	}

	response, err := s.Complete(messages, 0.1, 500)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrTranslationUnavailable, err)
	}

	sqlQuery, ok := extractSQL(response)
	if !ok {
		return "", fmt.Errorf("%w: model did not return a SELECT statement", models.ErrGenerationFailed)
	}

	s.cache.SetDefault(cacheKey, sqlQuery)

	return sqlQuery, nil
}

// extractSQL strips code-fence markup and applies the SELECT-only gate.
func extractSQL(content string) (string, bool) {
	sqlQuery := strings.TrimSpace(content)
	sqlQuery = strings.TrimPrefix(sqlQuery, "```sql")
	sqlQuery = strings.TrimPrefix(sqlQuery, "```SQL")
	sqlQuery = strings.TrimPrefix(sqlQuery, "```")
	sqlQuery = strings.TrimSuffix(sqlQuery, "```")
	sqlQuery = strings.TrimSpace(sqlQuery)

	if !strings.HasPrefix(strings.ToUpper(sqlQuery), "SELECT") {
		return "", false
	}
	return sqlQuery, true
}

// NarrateResult phrases an executed result set back into prose.
func (s *Service) NarrateResult(result *models.QueryResult, utterance string, history []models.Interaction) (*models.NarrationResult, error) {
	analysis := AnalyzeQueryType(utterance)

	systemPrompt, userPrompt := BuildNarrationPrompt(result, utterance, analysis, history)

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	response, err := s.Complete(messages, 0.1, 500)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNarrationFailed, err)
	}

	explanation := strings.TrimSpace(response)
	if explanation == "" {
		return nil, fmt.Errorf("%w: empty explanation", models.ErrNarrationFailed)
	}

	return &models.NarrationResult{
		Explanation: explanation,
		QueryType:   analysis,
		Timestamp:   time.Now(),
		ContextUsed: len(history) > 0,
	}, nil
}
