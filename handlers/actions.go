package handlers

import (
	"net/http"

	"go-lifeline/allocation"
	"go-lifeline/db"
	"go-lifeline/lifecycle"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

// ListDisasterActions returns the generated actions for one disaster, highest
// priority first.
func ListDisasterActions(c *gin.Context, store db.Store) {
	disasterID := c.Param("id")

	if _, err := store.GetDisaster(c.Request.Context(), disasterID); err != nil {
		respondError(c, err)
		return
	}

	actions, err := store.ListActionsByDisaster(c.Request.Context(), disasterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"actions": actions,
		"count":   len(actions),
	})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateActionStatus advances one action through its lifecycle. Invalid
// transitions come back as 409.
func UpdateActionStatus(c *gin.Context, manager *lifecycle.Manager) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}
	if req.Status == "" {
		respondError(c, types.ValidationError("status is required"))
		return
	}

	action, err := manager.Transition(c.Request.Context(), c.Param("id"), types.ActionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"action":  action,
	})
}

type assignRequest struct {
	ResourceID string `json:"resource_id"`
}

// AssignResource allocates a resource to an action. An already-deployed
// resource is a 409.
func AssignResource(c *gin.Context, engine *allocation.Engine) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, types.ValidationError("invalid request body: %v", err))
		return
	}
	if req.ResourceID == "" {
		respondError(c, types.ValidationError("resource_id is required"))
		return
	}

	alloc, err := engine.Allocate(c.Request.Context(), c.Param("id"), req.ResourceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"allocation": alloc,
	})
}
