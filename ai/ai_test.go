package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrparker/cache"
	"mrparker/models"
)

func testSchema() *models.Schema {
	return &models.Schema{
		Tables: []models.TableInfo{
			{
				Name: "vehicles",
				Columns: []models.ColumnInfo{
					{Name: "id", Type: "INTEGER", PrimaryKey: true},
					{Name: "color", Type: "TEXT", Nullable: true},
					{Name: "level", Type: "INTEGER", Nullable: true},
				},
			},
		},
	}
}

// completionServer fakes the Groq chat-completions endpoint with a fixed
// reply.
func completionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestService(t *testing.T, apiURL string) *Service {
	t.Helper()
	svc, err := New("test-key", "llama3-8b-8192", apiURL, cache.New(time.Minute))
	require.NoError(t, err)
	return svc
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "model", "http://localhost", cache.New(time.Minute))
	assert.Error(t, err)
}

func TestExtractSQLStripsFences(t *testing.T) {
	sqlQuery, ok := extractSQL("```sql\nSELECT color FROM vehicles\n```")
	require.True(t, ok)
	assert.Equal(t, "SELECT color FROM vehicles", sqlQuery)
}

func TestExtractSQLAcceptsLowercaseSelect(t *testing.T) {
	sqlQuery, ok := extractSQL("select * from vehicles")
	require.True(t, ok)
	assert.Equal(t, "select * from vehicles", sqlQuery)
}

func TestExtractSQLRejectsWriteStatements(t *testing.T) {
	for _, candidate := range []string{
		"DROP TABLE vehicles",
		"DELETE FROM vehicles",
		"INSERT INTO vehicles VALUES (1)",
		"",
		"I cannot generate SQL for that request.",
	} {
		_, ok := extractSQL(candidate)
		assert.False(t, ok, "candidate %q should be rejected", candidate)
	}
}

func TestTranslateToSQLSuccess(t *testing.T) {
	server := completionServer(t, "```sql\nSELECT COUNT(*) FROM vehicles WHERE color = 'red' AND level = 2\n```")
	defer server.Close()

	svc := newTestService(t, server.URL)

	sqlQuery, err := svc.TranslateToSQL("How many red cars are parked on level 2?", nil, testSchema())
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "SELECT")
	assert.Contains(t, sqlQuery, "color")
	assert.Contains(t, sqlQuery, "level")
}

func TestTranslateToSQLRejectsNonSelect(t *testing.T) {
	server := completionServer(t, "DROP TABLE vehicles")
	defer server.Close()

	svc := newTestService(t, server.URL)

	_, err := svc.TranslateToSQL("delete everything", nil, testSchema())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
}

func TestTranslateToSQLTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded","type":"server_error"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	_, err := svc.TranslateToSQL("how many cars", nil, testSchema())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTranslationUnavailable)
}

func TestTranslateToSQLUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "SELECT 1"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	schema := testSchema()

	_, err := svc.TranslateToSQL("how many cars", nil, schema)
	require.NoError(t, err)
	_, err = svc.TranslateToSQL("how many cars", nil, schema)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestNarrateResultSuccess(t *testing.T) {
	server := completionServer(t, "There are 3 red cars parked on level 2.")
	defer server.Close()

	svc := newTestService(t, server.URL)

	result := &models.QueryResult{
		Rows:    [][]interface{}{{int64(3)}},
		Columns: []string{"COUNT(*)"},
	}

	narration, err := svc.NarrateResult(result, "How many red cars are parked on level 2?", nil)
	require.NoError(t, err)
	assert.Contains(t, narration.Explanation, "3")
	assert.True(t, narration.QueryType.IsCount)
	assert.False(t, narration.ContextUsed)
}

func TestNarrateResultTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	result := &models.QueryResult{
		Rows:    [][]interface{}{{int64(3)}},
		Columns: []string{"COUNT(*)"},
	}

	_, err := svc.NarrateResult(result, "how many cars", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNarrationFailed)
}
