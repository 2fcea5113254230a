package api

import (
	"github.com/gin-gonic/gin"

	"github.com/JJBon/synth-data-service/internal/api/handler"
	"github.com/JJBon/synth-data-service/internal/api/middleware"
	"github.com/JJBon/synth-data-service/internal/config"
	"github.com/JJBon/synth-data-service/internal/dispatch"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/service"
)

// SetupRouter configures the Gin router for the jobs API.
func SetupRouter(
	jobs *service.JobService,
	classifier *guidance.Classifier,
	cfg *config.Config,
) *gin.Engine {
	r := newEngine(cfg)

	healthHandler := handler.NewHealthHandler(cfg.Server.Name)
	jobHandler := handler.NewJobHandler(jobs)
	guidanceHandler := handler.NewGuidanceHandler(classifier)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Jobs
		v1.POST("/jobs", jobHandler.CreateJob)
		v1.GET("/jobs", jobHandler.ListJobs)
		v1.GET("/jobs/:id", jobHandler.GetJob)
		v1.GET("/jobs/:id/results", jobHandler.GetResults)
		v1.POST("/jobs/:id/cancel", jobHandler.CancelJob)

		// Guidance
		v1.POST("/guidance", guidanceHandler.Classify)
	}

	return r
}

// SetupToolRouter configures the Gin router for the tool dispatch server.
func SetupToolRouter(dispatcher *dispatch.Dispatcher, cfg *config.Config) *gin.Engine {
	r := newEngine(cfg)

	healthHandler := handler.NewHealthHandler(cfg.Server.Name)
	toolsHandler := handler.NewToolsHandler(dispatcher)

	r.GET("/health", healthHandler.Health)

	// JSON-RPC surface plus REST-ish convenience routes
	r.POST("/mcp", toolsHandler.RPC)
	r.GET("/mcp/tools", toolsHandler.ListTools)
	r.POST("/mcp/tools/call", toolsHandler.CallTool)

	return r
}

func newEngine(cfg *config.Config) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	return r
}
