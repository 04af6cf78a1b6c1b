package commands

import (
	"context"

	"studysync-api/internal/domain/room"
	reqdto "studysync-api/internal/handler/dto/request"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/errs"
	"studysync-api/internal/usecase/queries"
	"studysync-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomCommands interface {
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error)
	// CreateSeats adds a batch of seats to a room, all rows or none.
	CreateSeats(ctx context.Context, roomID uuid.UUID, req reqdto.CreateSeatsRequest) ([]*queries.SeatView, error)
}

type roomCommandsImpl struct {
	uow         shared.UnitOfWork
	roomStore   queries.RoomReadStore
	seatStore   queries.SeatReadStore
	invalidator AvailabilityInvalidator
}

func NewRoomCommands(
	uow shared.UnitOfWork,
	roomStore queries.RoomReadStore,
	seatStore queries.SeatReadStore,
	invalidator AvailabilityInvalidator,
) RoomCommands {
	return &roomCommandsImpl{
		uow:         uow,
		roomStore:   roomStore,
		seatStore:   seatStore,
		invalidator: invalidator,
	}
}

func (r *roomCommandsImpl) CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error) {
	entity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rooms().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDomainValidation)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.roomStore.FindByID(ctx, entity.ID())
}

func (r *roomCommandsImpl) UpdateRoom(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Rooms().FindEntity(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		updated, err := patchRoom(existing, req)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Rooms().Update(ctx, updated); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidator.InvalidateRoom(ctx, id)
	return r.roomStore.FindByID(ctx, id)
}

func (r *roomCommandsImpl) CreateSeats(ctx context.Context, roomID uuid.UUID, req reqdto.CreateSeatsRequest) ([]*queries.SeatView, error) {
	seats, err := req.ToDomain(roomID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().LockForBooking(ctx, roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Seats().CreateBatch(ctx, seats); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrSeatSelectionInvalid)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	views, err := r.seatStore.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	created := make([]*queries.SeatView, 0, len(seats))
	wanted := make(map[uuid.UUID]struct{}, len(seats))
	for _, s := range seats {
		wanted[s.ID()] = struct{}{}
	}
	for _, v := range views {
		if _, ok := wanted[v.ID]; ok {
			created = append(created, v)
		}
	}
	return created, nil
}

// patchRoom rebuilds the room with the requested fields swapped in,
// running the result through the domain constructor so the usual
// validation applies.
func patchRoom(existing *room.Room, req reqdto.UpdateRoomRequest) (*room.Room, error) {
	name := existing.Name()
	if req.Name != nil {
		name = *req.Name
	}
	capacity := existing.Capacity()
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	features := existing.Features()
	if req.Features != nil {
		features = req.Features
	}
	sizeSqft := existing.SizeSqft()
	if req.SizeSqft != nil {
		sizeSqft = req.SizeSqft
	}
	imageURL := existing.ImageURL()
	if req.ImageURL != nil {
		imageURL = req.ImageURL
	}

	validated, err := room.NewRoom(name, existing.RoomNumber(), existing.FloorNumber(), capacity, features, sizeSqft, imageURL)
	if err != nil {
		return nil, err
	}
	return room.ReconstructRoom(
		existing.ID(),
		validated.Name(),
		validated.RoomNumber(),
		validated.FloorNumber(),
		validated.Capacity(),
		validated.Features(),
		validated.SizeSqft(),
		validated.ImageURL(),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	), nil
}
