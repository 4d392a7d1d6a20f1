package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/handler/api"
	"hotelops/internal/handler/middleware"
	"hotelops/internal/pkg/config"
	"hotelops/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, bookingHandler *api.BookingHandler, pricingHandler *api.PricingHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, pricingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, bookingHandler *api.BookingHandler, pricingHandler *api.PricingHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		hotels := apiGroup.Group("/hotels/:hotelId")

		bookings := hotels.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: bookingHandler.ChangeStatus},
				{Method: http.MethodPost, Path: "/:id/extension", Handler: bookingHandler.ExtendStay},
				{Method: http.MethodPost, Path: "/:id/room-type", Handler: bookingHandler.ChangeRoomType},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: bookingHandler.CollectPayment},
			})
		}

		// Rate configuration needs manager access; booking operations
		// are open to the front desk.
		rateSheet := hotels.Group("/rate-sheet")
		rateSheet.Use(authMiddleware.RequireRoleAtLeast(jwt.RoleManager))
		{
			addRoutes(rateSheet, []route{
				{Method: http.MethodGet, Path: "", Handler: pricingHandler.GetRateSheet},
				{Method: http.MethodPut, Path: "", Handler: pricingHandler.SaveRateSheet},
			})
		}
	}
}

// @Summary Health check
// @Produce json
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
