package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lendhub/internal/handler/api"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	rentalHandler *api.RentalHandler,
	coordinationHandler *api.CoordinationHandler,
	chatHandler *api.ChatHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, rentalHandler, coordinationHandler, chatHandler, notificationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	rentalHandler *api.RentalHandler,
	coordinationHandler *api.CoordinationHandler,
	chatHandler *api.ChatHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Occupancy and delivery points are public reads.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/articles/:id/occupancy", Handler: rentalHandler.Occupancy},
			{Method: http.MethodGet, Path: "/delivery-points", Handler: rentalHandler.DeliveryPoints},
		})

		rentals := apiGroup.Group("/rentals")
		rentals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: rentalHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: rentalHandler.Inbox},
				{Method: http.MethodGet, Path: "/:id", Handler: rentalHandler.Get},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: rentalHandler.Pay},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: rentalHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/expire", Handler: rentalHandler.Expire},
				{Method: http.MethodPost, Path: "/:id/delivery/confirm", Handler: rentalHandler.ConfirmDelivery},
				{Method: http.MethodPost, Path: "/:id/delivery/otp", Handler: rentalHandler.ConfirmDeliveryOTP},
				{Method: http.MethodPost, Path: "/:id/in-use", Handler: rentalHandler.MarkInUse},
				{Method: http.MethodPost, Path: "/:id/returned", Handler: rentalHandler.MarkReturned},
				{Method: http.MethodPost, Path: "/:id/return/otp", Handler: rentalHandler.ConfirmReturnOTP},
				{Method: http.MethodPost, Path: "/:id/finalize", Handler: rentalHandler.Finalize},
				{Method: http.MethodGet, Path: "/:id/timeline", Handler: rentalHandler.Timeline},

				{Method: http.MethodPost, Path: "/:id/incident", Handler: rentalHandler.ReportIncident},
				{Method: http.MethodGet, Path: "/:id/incident", Handler: rentalHandler.GetIncident},
				{Method: http.MethodPost, Path: "/:id/incident/resolve", Handler: rentalHandler.ResolveIncident},

				{Method: http.MethodPost, Path: "/:id/coordination/propose", Handler: coordinationHandler.Propose},
				{Method: http.MethodPost, Path: "/:id/coordination/accept", Handler: coordinationHandler.AcceptWindow},
				{Method: http.MethodPost, Path: "/:id/coordination/confirm", Handler: coordinationHandler.Confirm},

				{Method: http.MethodPost, Path: "/:id/messages", Handler: chatHandler.Send},
				{Method: http.MethodGet, Path: "/:id/messages", Handler: chatHandler.List},
				{Method: http.MethodPost, Path: "/:id/messages/read", Handler: chatHandler.MarkRead},
				{Method: http.MethodGet, Path: "/:id/messages/unread", Handler: chatHandler.UnreadCount},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/messages/unread", Handler: chatHandler.UnreadTotal},

				{Method: http.MethodGet, Path: "/notifications", Handler: notificationHandler.List},
				{Method: http.MethodGet, Path: "/notifications/unread", Handler: notificationHandler.UnreadCount},
				{Method: http.MethodPost, Path: "/notifications/:id/read", Handler: notificationHandler.MarkRead},
				{Method: http.MethodPost, Path: "/notifications/read-all", Handler: notificationHandler.MarkAllRead},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
