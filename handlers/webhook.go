package handlers

import (
	"net/http"

	"go-lifeline/db"
	"go-lifeline/intake"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

const defaultDisasterListLimit = 50

// ReceiveDisasterWebhook ingests a single report through the full pipeline:
// validation, persistence, then summary and action generation. Enrichment
// failures degrade to warnings rather than failing the request.
func ReceiveDisasterWebhook(c *gin.Context, orchestrator *intake.Orchestrator) {
	var payload types.DisasterWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}

	result, err := orchestrator.Ingest(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"disaster": result.Disaster,
		"summary":  result.Summary,
		"actions":  result.Actions,
		"warnings": result.Warnings,
	})
}

type disasterStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDisasterStatus lets operators advance a disaster from active through
// responding to resolved.
func UpdateDisasterStatus(c *gin.Context, store db.Store) {
	var req disasterStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}

	status := types.DisasterStatus(req.Status)
	switch status {
	case types.DisasterActive, types.DisasterResponding, types.DisasterResolved:
	default:
		respondError(c, types.ValidationError("unknown disaster status %q", req.Status))
		return
	}

	disaster, err := store.UpdateDisasterStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"disaster": disaster,
	})
}

// ListDisasters returns the most recent disasters, newest first.
func ListDisasters(c *gin.Context, store db.Store) {
	disasters, err := store.ListDisasters(c.Request.Context(), defaultDisasterListLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"disasters": disasters,
		"count":     len(disasters),
	})
}
