package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mrparker/models"
)

// GetContextHandler returns the stored conversation history for a session
// @Summary      Get conversation context
// @Description  Return the stored interaction history for a session; unknown sessions yield an empty list
// @Tags         Context
// @Produce      json
// @Param        session_id  query     string  true  "Session identifier"
// @Success      200         {object}  map[string]interface{}  "Session history"
// @Failure      400         {object}  models.ErrorResponse    "Missing session_id"
// @Router       /context [get]
func (h *Handlers) GetContextHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing session_id parameter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"context":    h.store.Get(sessionID, 0),
	})
}

// ClearContextHandler clears the conversation history for a session
// @Summary      Clear conversation context
// @Description  Remove a session's history; clearing an absent session succeeds
// @Tags         Context
// @Produce      json
// @Param        session_id  query     string  true  "Session identifier"
// @Success      200         {object}  map[string]string     "Context cleared"
// @Failure      400         {object}  models.ErrorResponse  "Missing session_id"
// @Router       /context [delete]
func (h *Handlers) ClearContextHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing session_id parameter"})
		return
	}

	h.store.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Context cleared successfully",
		"session_id": sessionID,
	})
}

// ExportContextHandler serializes a session's history
// @Summary      Export conversation context
// @Description  Export the full interaction history for a session; only the json format is supported
// @Tags         Context
// @Produce      json
// @Param        session_id  query     string  true   "Session identifier"
// @Param        format      query     string  false  "Export format (json)"
// @Success      200         {object}  map[string]interface{}  "Serialized history"
// @Failure      400         {object}  models.ErrorResponse    "Missing session_id or unsupported format"
// @Router       /context/export [get]
func (h *Handlers) ExportContextHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing session_id parameter"})
		return
	}

	format := c.DefaultQuery("format", "json")

	data, err := h.store.Export(sessionID, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"format":     format,
		"data":       data,
	})
}

// ArchiveHandler returns the durable interaction archive for a session
// @Summary      Get archived interactions
// @Description  Return the append-only interaction archive for a session; entries survive restarts. Without session_id, lists the archived session ids instead.
// @Tags         Context
// @Produce      json
// @Param        session_id  query     string  false  "Session identifier"
// @Success      200         {object}  map[string]interface{}  "Archived interactions"
// @Failure      500         {object}  models.ErrorResponse    "Archive read failure"
// @Router       /context/archive [get]
func (h *Handlers) ArchiveHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		ids, err := h.archive.Sessions()
		if err != nil {
			log.Printf("Error listing archived sessions: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read archive"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"sessions": ids,
		})
		return
	}

	interactions, err := h.archive.Session(sessionID)
	if err != nil {
		log.Printf("Error reading archive for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read archive"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"archive":    interactions,
	})
}
