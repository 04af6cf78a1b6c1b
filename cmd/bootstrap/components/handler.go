package components

import (
	"context"

	"studysync-api/internal/handler"
	"studysync-api/internal/handler/api"
	"studysync-api/internal/handler/middleware"
	"studysync-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewSeatHandler,
		api.NewReservationHandler,
		api.NewPracticeHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.Booking)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			rl.Close()
			return nil
		},
	})

	return rl
}

func NewHandlers(
	authHandler *api.AuthHandler,
	roomHandler *api.RoomHandler,
	seatHandler *api.SeatHandler,
	reservationHandler *api.ReservationHandler,
	practiceHandler *api.PracticeHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        authHandler,
		Room:        roomHandler,
		Seat:        seatHandler,
		Reservation: reservationHandler,
		Practice:    practiceHandler,
	}
}
