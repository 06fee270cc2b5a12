package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"go-lifeline/intake"
	"go-lifeline/mockdata"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

const defaultItemDelayMs = 500

type ingestMockRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
	DelayMs  *int   `json:"delay_ms"`
}

// IngestMockData drives a batch of canned reports through the pipeline,
// sequentially with a per-item delay so downstream rate limits hold.
func IngestMockData(c *gin.Context, loader *mockdata.Loader, orchestrator *intake.Orchestrator) {
	// An empty body ingests everything with the default delay.
	var req ingestMockRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}
	if req.Category == "" {
		req.Category = mockdata.CategoryAll
	}

	reports, err := loader.Load(req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Limit > 0 && req.Limit < len(reports) {
		reports = reports[:req.Limit]
	}

	delayMs := defaultItemDelayMs
	if req.DelayMs != nil && *req.DelayMs >= 0 {
		delayMs = *req.DelayMs
	}

	summary := orchestrator.IngestBatch(c.Request.Context(), reports, time.Duration(delayMs)*time.Millisecond)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// ListMockData reports which canned data sets are available without
// ingesting anything.
func ListMockData(c *gin.Context, loader *mockdata.Loader) {
	categories, total, err := loader.Available()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"total":      total,
	})
}
