package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"universe-api/internal/handler/api"
	"universe-api/internal/handler/middleware"
	"universe-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	universeHandler *api.UniverseHandler,
	campaignHandler *api.CampaignHandler,
	reportHandler *api.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, universeHandler, campaignHandler, reportHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	universeHandler *api.UniverseHandler,
	campaignHandler *api.CampaignHandler,
	reportHandler *api.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		universe := apiGroup.Group("/universe")
		{
			// Share-token access needs no session.
			addRoutes(universe, []route{
				{Method: http.MethodGet, Path: "/shared/:token", Handler: universeHandler.GetShared},
			})

			authed := universe.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/instances", Handler: universeHandler.CreateInstance},
				{Method: http.MethodGet, Path: "/instances", Handler: universeHandler.ListInstances},
				{Method: http.MethodGet, Path: "/instances/:id", Handler: universeHandler.GetInstance},
				{Method: http.MethodPatch, Path: "/instances/:id", Handler: universeHandler.UpdateInstance},
				{Method: http.MethodDelete, Path: "/instances/:id", Handler: universeHandler.DeleteInstance},
				{Method: http.MethodPost, Path: "/instances/:id/share", Handler: universeHandler.ShareInstance},
				{Method: http.MethodPost, Path: "/templates", Handler: universeHandler.CreateTemplate},
			})
		}

		campaigns := apiGroup.Group("/campaigns")
		campaigns.Use(authMiddleware.RequireAuth())
		{
			addRoutes(campaigns, []route{
				{Method: http.MethodPost, Path: "/:id/send", Handler: campaignHandler.Send},
				{Method: http.MethodPost, Path: "/:id/schedule", Handler: campaignHandler.Schedule},
				{Method: http.MethodPost, Path: "/:id/pause", Handler: campaignHandler.Pause},
				{Method: http.MethodPost, Path: "/:id/resume", Handler: campaignHandler.Resume},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: campaignHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: campaignHandler.Complete},
				{Method: http.MethodGet, Path: "/:id/execution-status", Handler: campaignHandler.ExecutionStatus},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reports, []route{
				{Method: http.MethodPost, Path: "", Handler: reportHandler.Generate},
			})
		}
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
