package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrparker/models"
)

// FollowupHandler generates follow-up question suggestions for a session
// @Summary      Generate follow-up questions
// @Description  Generate four follow-up questions from the session context and current query. The debug fields expose the raw model exchange and are meant for internal tooling only.
// @Tags         Followup
// @Accept       json
// @Produce      json
// @Param        request  body      models.FollowupRequest   true  "Followup request"
// @Success      200      {object}  models.FollowupResponse  "Follow-up questions with debug info"
// @Failure      400      {object}  models.ErrorResponse     "Missing session_id"
// @Router       /followup [post]
func (h *Handlers) FollowupHandler(c *gin.Context) {
	var req models.FollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing required 'session_id' field"})
		return
	}

	history := h.store.Get(req.SessionID, 0)

	// The latest interaction's result set grounds the questions.
	result := &models.QueryResult{}
	if len(history) > 0 {
		latest := history[len(history)-1]
		result.Rows = latest.Results
		result.Columns = latest.Columns
	}

	questions, raw, prompt := h.followups.GenerateWithDebug(req.Query, history, result)

	c.JSON(http.StatusOK, models.FollowupResponse{
		Success:           true,
		SessionID:         req.SessionID,
		FollowupQuestions: questions,
		ContextUsed:       len(history) > 0,
		DebugInfo: &models.DebugInfo{
			RawLLMResponse: raw,
			PromptUsed:     prompt,
		},
	})
}
