package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studysync-api/internal/domain/user"
	"studysync-api/internal/handler/api"
	"studysync-api/internal/handler/middleware"
	"studysync-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Room        *api.RoomHandler
	Seat        *api.SeatHandler
	Reservation *api.ReservationHandler
	Practice    *api.PracticeHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				// Optional auth so an admin session can create staff accounts
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		rooms := apiGroup.Group("/library-rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Room.ListRooms},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.GetRoom},
			})

			staffOnly := rooms.Group("")
			staffOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleLibrarian))
			addRoutes(staffOnly, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Room.CreateRoom},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Room.UpdateRoom},
				{Method: http.MethodPost, Path: "/:id/seats", Handler: h.Room.CreateSeats},
			})
		}

		seats := apiGroup.Group("/seats")
		seats.Use(authMiddleware.RequireAuth())
		{
			addRoutes(seats, []route{
				{Method: http.MethodGet, Path: "/room/:roomId", Handler: h.Seat.SeatsForRoom},
				{Method: http.MethodGet, Path: "/room/:roomId/booked", Handler: h.Seat.BookedSeats},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: h.Reservation.CancelReservation},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation, Mw: []gin.HandlerFunc{rateLimiter.Limit()}},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.GetUserReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.CancelReservation},
				{Method: http.MethodGet, Path: "/room/:roomId/check-availability", Handler: h.Reservation.CheckAvailability},
				{Method: http.MethodPost, Path: "/update-availability", Handler: h.Reservation.UpdateAvailability, Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleLibrarian)}},
			})
		}

		practice := apiGroup.Group("/practice-sessions")
		practice.Use(authMiddleware.RequireAuth())
		{
			addRoutes(practice, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Practice.StartSession},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Practice.GetSession},
				{Method: http.MethodPost, Path: "/:id/pause", Handler: h.Practice.PauseSession},
				{Method: http.MethodPost, Path: "/:id/resume", Handler: h.Practice.ResumeSession},
				{Method: http.MethodPost, Path: "/:id/attempts", Handler: h.Practice.RecordAttempt},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Practice.CompleteSession},
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
