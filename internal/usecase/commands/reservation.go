package commands

import (
	"context"
	"errors"
	"log/slog"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"
	"studysync-api/internal/domain/user"
	reqdto "studysync-api/internal/handler/dto/request"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/clock"
	"studysync-api/internal/pkg/errs"
	"studysync-api/internal/usecase/queries"
	"studysync-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrSeatNotFound            = errs.New("seat not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrSlotConflict            = errs.New("slot is no longer available")
	ErrBookingCapExceeded      = errs.New("active reservation limit reached")
	ErrSeatSelectionInvalid    = errs.New("invalid seat selection")
	ErrNotReservationOwner     = errs.New("reservation belongs to another user")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type SweepResult struct {
	Occupied  int64 `json:"occupied"`
	Completed int64 `json:"completed"`
}

type ReservationCommands interface {
	// CreateBooking validates and persists a booking, returning one
	// view per created ledger row. The availability re-check and the
	// inserts share one transaction holding the room's row lock, so a
	// concurrent request for the same slot cannot slip between them.
	CreateBooking(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID) ([]*queries.ReservationView, error)
	// Cancel deletes a reservation row, freeing its window immediately.
	Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	// SweepStatuses advances reservation statuses past their window
	// boundaries. Idempotent.
	SweepStatuses(ctx context.Context) (*SweepResult, error)
}

type reservationCommandsImpl struct {
	uow         shared.UnitOfWork
	readStore   queries.ReservationReadStore
	factory     *reservation.Factory
	publisher   EventPublisher
	invalidator AvailabilityInvalidator
	clock       clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	readStore queries.ReservationReadStore,
	factory *reservation.Factory,
	publisher EventPublisher,
	invalidator AvailabilityInvalidator,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:         uow,
		readStore:   readStore,
		factory:     factory,
		publisher:   publisher,
		invalidator: invalidator,
		clock:       clock,
	}
}

func (r *reservationCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID uuid.UUID,
) ([]*queries.ReservationView, error) {
	slot, err := reservation.NewTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}
	purpose, err := reservation.NewPurpose(req.GetPurpose())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		created  []*reservation.Reservation
		roomName string
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomSnap, err := tx.Rooms().LockForBooking(ctx, req.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		roomName = roomSnap.Name

		seats, err := r.resolveSeats(ctx, tx, roomSnap, req.SelectedSeats)
		if err != nil {
			return err
		}

		activeCount, err := tx.Reservations().CountActiveByUser(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		rows, err := r.factory.CreateBooking(roomSnap.ID, roomSnap.Capacity, seats, userID, slot, purpose, activeCount)
		if err != nil {
			return mapFactoryError(err)
		}

		if err := r.checkConflicts(ctx, tx, roomSnap.ID, rows, slot); err != nil {
			return err
		}

		if err := tx.Reservations().CreateBatch(ctx, rows); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidator.InvalidateRoom(ctx, req.RoomID)
	r.publisher.PublishBookingConfirmed(ctx, r.bookingEvent(created, roomName))

	views := make([]*queries.ReservationView, 0, len(created))
	for _, row := range created {
		view, err := r.readStore.FindByID(ctx, row.ID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		views = append(views, view)
	}
	return views, nil
}

// resolveSeats loads the selected seats for per-seat rooms. Whole-room
// bookings ignore any selection the client sent.
func (r *reservationCommandsImpl) resolveSeats(
	ctx context.Context,
	tx shared.Tx,
	roomSnap *shared.RoomSnapshot,
	seatIDs []uuid.UUID,
) ([]*seat.Seat, error) {
	if room.ModeForCapacity(roomSnap.Capacity) == room.ModeWholeRoom {
		return nil, nil
	}
	if len(seatIDs) == 0 {
		return nil, errs.Mark(reservation.ErrNoSeatsSelected, ErrSeatSelectionInvalid)
	}
	seats, err := tx.Seats().FindForRoom(ctx, roomSnap.ID, seatIDs)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return seats, nil
}

func (r *reservationCommandsImpl) checkConflicts(
	ctx context.Context,
	tx shared.Tx,
	roomID uuid.UUID,
	rows []*reservation.Reservation,
	slot reservation.TimeSlot,
) error {
	if len(rows) == 1 && rows[0].IsRoomMode() {
		conflict, err := tx.Reservations().HasRoomConflict(ctx, roomID, slot)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict {
			return ErrSlotConflict
		}
		return nil
	}

	booked, err := tx.Reservations().BookedSeatIDs(ctx, roomID, slot)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	taken := make(map[uuid.UUID]struct{}, len(booked))
	for _, id := range booked {
		taken[id] = struct{}{}
	}
	for _, row := range rows {
		if row.SeatID() == nil {
			continue
		}
		if _, busy := taken[*row.SeatID()]; busy {
			return ErrSlotConflict
		}
	}
	return nil
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	var roomID uuid.UUID
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		row, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if row.UserID() != actorID && actorRole != user.RoleLibrarian && actorRole != user.RoleAdmin {
			return ErrNotReservationOwner
		}
		roomID = row.RoomID()
		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidator.InvalidateRoom(ctx, roomID)
	r.publisher.PublishBookingCanceled(ctx, BookingEvent{
		ReservationIDs: []uuid.UUID{id},
		RoomID:         roomID,
		UserID:         actorID,
		OccurredAt:     r.clock.Now(),
	})
	return nil
}

func (r *reservationCommandsImpl) SweepStatuses(ctx context.Context) (*SweepResult, error) {
	var (
		result  SweepResult
		touched []uuid.UUID
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()
		occupied, err := tx.Reservations().MarkOccupied(ctx, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		completed, err := tx.Reservations().MarkCompleted(ctx, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result = SweepResult{Occupied: int64(len(occupied)), Completed: int64(len(completed))}
		touched = append(occupied, completed...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Flipped rows change cached availability answers.
	seen := make(map[uuid.UUID]struct{}, len(touched))
	for _, roomID := range touched {
		if _, done := seen[roomID]; done {
			continue
		}
		seen[roomID] = struct{}{}
		r.invalidator.InvalidateRoom(ctx, roomID)
	}

	slog.Info("reservation status sweep finished", "occupied", result.Occupied, "completed", result.Completed)
	return &result, nil
}

func (r *reservationCommandsImpl) bookingEvent(rows []*reservation.Reservation, roomName string) BookingEvent {
	event := BookingEvent{
		RoomName:   roomName,
		OccurredAt: r.clock.Now(),
	}
	for _, row := range rows {
		event.ReservationIDs = append(event.ReservationIDs, row.ID())
		event.RoomID = row.RoomID()
		event.UserID = row.UserID()
		event.StartTime = row.Slot().Start()
		event.EndTime = row.Slot().End()
		if row.SeatID() != nil {
			event.SeatIDs = append(event.SeatIDs, *row.SeatID())
		}
	}
	return event
}

func mapFactoryError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrBookingCapReached):
		return ErrBookingCapExceeded
	case errors.Is(err, reservation.ErrWindowInPast), errors.Is(err, reservation.ErrInvalidWindow):
		return errs.Mark(err, ErrInvalidTimeSlot)
	case errors.Is(err, reservation.ErrNoSeatsSelected),
		errors.Is(err, reservation.ErrTooManySeats),
		errors.Is(err, reservation.ErrDuplicateSeats),
		errors.Is(err, reservation.ErrSeatNotInRoom),
		errors.Is(err, reservation.ErrSeatInactive):
		return errs.Mark(err, ErrSeatSelectionInvalid)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
