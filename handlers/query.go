package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mrparker/models"
	"mrparker/validation"
)

// QueryHandler processes a natural language query end to end
// @Summary      Process natural language query
// @Description  Translate a free-text question to SQL, execute it against the parking dataset, and phrase the results back into prose with follow-up suggestions
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryRequest   true  "Query request"
// @Success      200      {object}  models.QueryResponse  "Query result with explanation"
// @Failure      400      {object}  models.ErrorResponse  "Missing, empty, or malformed query"
// @Failure      500      {object}  models.ErrorResponse  "Pipeline stage failure"
// @Router       /query [post]
func (h *Handlers) QueryHandler(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing required 'query' field"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Empty query provided"})
		return
	}

	if !validation.IsValidQuery(query) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "The query appears to be invalid or gibberish. Please provide a meaningful question."})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	response, err := h.pipeline.Process(sessionID, query)
	if err != nil {
		log.Printf("Error processing query for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
