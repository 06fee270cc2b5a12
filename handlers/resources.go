package handlers

import (
	"net/http"

	"go-lifeline/db"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
)

// ListResources returns response assets, optionally filtered by ?status=.
func ListResources(c *gin.Context, store db.Store) {
	status := types.ResourceStatus(c.Query("status"))

	resources, err := store.ListResources(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"resources": resources,
		"count":     len(resources),
	})
}
