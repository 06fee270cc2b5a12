package handlers

import (
	"errors"
	"io"
	"net/http"

	"go-lifeline/training"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

const defaultSessionListLimit = 10

type trainRequest struct {
	Episodes int `json:"episodes"`
}

// TriggerTraining kicks off a mock training run and returns its synthetic
// metrics.
func TriggerTraining(c *gin.Context, trigger *training.Trigger) {
	// An empty body means run with defaults.
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}

	result, err := trigger.Run(c.Request.Context(), req.Episodes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// ListTrainingSessions returns recent training runs, newest first.
func ListTrainingSessions(c *gin.Context, trigger *training.Trigger) {
	sessions, err := trigger.Sessions(c.Request.Context(), defaultSessionListLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sessions": sessions,
		"count":    len(sessions),
	})
}
