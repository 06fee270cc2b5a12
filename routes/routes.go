package routes

import (
	"go-lifeline/allocation"
	"go-lifeline/db"
	"go-lifeline/handlers"
	"go-lifeline/intake"
	"go-lifeline/lifecycle"
	"go-lifeline/mockdata"
	"go-lifeline/training"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the HTTP surface needs. main wires it up once.
type Deps struct {
	Store        db.Store
	Orchestrator *intake.Orchestrator
	Lifecycle    *lifecycle.Manager
	Allocator    *allocation.Engine
	MockData     *mockdata.Loader
	Training     *training.Trigger
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Lifeline!",
		})
	})

	api := r.Group("/api")
	{
		// Inject the orchestrator and store into handlers
		api.POST("/webhook/disaster", func(c *gin.Context) {
			handlers.ReceiveDisasterWebhook(c, deps.Orchestrator)
		})
		api.GET("/webhook/disaster", func(c *gin.Context) {
			handlers.ListDisasters(c, deps.Store)
		})

		api.GET("/disasters", func(c *gin.Context) {
			handlers.ListDisasters(c, deps.Store)
		})
		api.GET("/disasters/:id/actions", func(c *gin.Context) {
			handlers.ListDisasterActions(c, deps.Store)
		})
		api.PATCH("/disasters/:id/status", func(c *gin.Context) {
			handlers.UpdateDisasterStatus(c, deps.Store)
		})

		api.PATCH("/actions/:id/status", func(c *gin.Context) {
			handlers.UpdateActionStatus(c, deps.Lifecycle)
		})
		api.POST("/actions/:id/assign", func(c *gin.Context) {
			handlers.AssignResource(c, deps.Allocator)
		})

		api.GET("/resources", func(c *gin.Context) {
			handlers.ListResources(c, deps.Store)
		})

		api.POST("/ingest-mock-data", func(c *gin.Context) {
			handlers.IngestMockData(c, deps.MockData, deps.Orchestrator)
		})
		api.GET("/ingest-mock-data", func(c *gin.Context) {
			handlers.ListMockData(c, deps.MockData)
		})

		api.POST("/rl-train", func(c *gin.Context) {
			handlers.TriggerTraining(c, deps.Training)
		})
		api.GET("/rl-train", func(c *gin.Context) {
			handlers.ListTrainingSessions(c, deps.Training)
		})
	}

	return r
}
