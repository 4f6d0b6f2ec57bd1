package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
)

type RoomService struct {
	rooms        domain.RoomStore
	reservations domain.ReservationStore
	tracer       trace.Tracer
	logger       *logrus.Logger
}

func NewRoomService(rooms domain.RoomStore, reservations domain.ReservationStore, tracer trace.Tracer, logger *logrus.Logger) *RoomService {
	return &RoomService{
		rooms:        rooms,
		reservations: reservations,
		tracer:       tracer,
		logger:       logger,
	}
}

func (service *RoomService) GetAllRooms(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.GetAllRooms")
	defer span.End()

	rooms, err := service.rooms.GetAll(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rooms, nil
}

func (service *RoomService) GetRoom(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.GetRoom")
	defer span.End()

	room, err := service.rooms.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return room, nil
}

// GetAvailableRooms returns the rooms marked available that have no
// pending/confirmed reservation overlapping [checkIn, checkOut).
func (service *RoomService) GetAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.GetAvailableRooms")
	defer span.End()

	if !checkIn.Before(checkOut) {
		span.SetStatus(codes.Error, "Check-out date must be after check-in date")
		return nil, domain.NewInvalidInput("Check-out date must be after check-in date")
	}

	active, err := service.reservations.GetActive(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	conflicting := make(map[primitive.ObjectID]struct{})
	for _, reservation := range active {
		if domain.Overlaps(checkIn, checkOut, reservation.CheckIn, reservation.CheckOut) {
			conflicting[reservation.RoomID] = struct{}{}
		}
	}

	excluded := make([]primitive.ObjectID, 0, len(conflicting))
	for id := range conflicting {
		excluded = append(excluded, id)
	}

	rooms, err := service.rooms.GetAvailableExcept(ctx, excluded)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rooms, nil
}
