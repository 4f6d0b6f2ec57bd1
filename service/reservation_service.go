package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
)

type ReservationService struct {
	reservations domain.ReservationStore
	rooms        domain.RoomStore
	tracer       trace.Tracer
	logger       *logrus.Logger

	// one mutex per room id; serializes the check-then-insert sequence so
	// two overlapping creations for the same room cannot interleave
	roomLocks sync.Map
}

func NewReservationService(reservations domain.ReservationStore, rooms domain.RoomStore, tracer trace.Tracer, logger *logrus.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		tracer:       tracer,
		logger:       logger,
	}
}

// CreateReservation validates the request fail-fast, resolves availability
// and persists the reservation with pending status and pending payment.
// The returned reservation embeds the room snapshot.
func (service *ReservationService) CreateReservation(ctx context.Context, request *domain.ReservationRequest) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.CreateReservation")
	defer span.End()

	if err := request.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewInvalidInput(err.Error())
	}

	roomID, err := primitive.ObjectIDFromHex(request.RoomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewInvalidInput("Invalid room id")
	}

	checkIn, err := domain.ParseDate(request.CheckIn)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewInvalidInput("Invalid check-in date")
	}
	checkOut, err := domain.ParseDate(request.CheckOut)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewInvalidInput("Invalid check-out date")
	}

	unlock := service.lockRoom(roomID)
	defer unlock()

	room, err := service.rooms.Get(ctx, roomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !room.Available {
		span.SetStatus(codes.Error, "Room is not available")
		return nil, domain.NewInvalidState("Room is not available")
	}

	if request.NumberOfGuests > room.MaxGuests {
		span.SetStatus(codes.Error, "Number of guests exceeds room capacity")
		return nil, domain.NewInvalidInput("Number of guests exceeds room capacity")
	}

	if !checkIn.Before(checkOut) {
		span.SetStatus(codes.Error, "Check-out date must be after check-in date")
		return nil, domain.NewInvalidInput("Check-out date must be after check-in date")
	}

	overlaps, err := service.IsOverlapping(ctx, roomID, checkIn, checkOut, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if overlaps {
		span.SetStatus(codes.Error, "Room is not available for the selected dates")
		return nil, domain.NewConflict("Room is not available for the selected dates")
	}

	reservation := &domain.Reservation{
		GuestName:       request.GuestName,
		GuestEmail:      request.GuestEmail,
		GuestPhone:      request.GuestPhone,
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  request.NumberOfGuests,
		TotalPrice:      domain.TotalPrice(checkIn, checkOut, room.Price),
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		SpecialRequests: request.SpecialRequests,
	}

	created, err := service.reservations.Insert(ctx, reservation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		service.logger.Errorf("ReservationService.CreateReservation : %s", err)
		return nil, err
	}

	created.Room = room
	service.logger.Infof("ReservationService.CreateReservation : reservation %s created for room %s", created.ID.Hex(), room.RoomNumber)
	return created, nil
}

// IsOverlapping scans the pending/confirmed reservations of the room and
// reports whether any of them overlaps [checkIn, checkOut). A reservation id
// may be excluded, for availability checks during updates.
func (service *ReservationService) IsOverlapping(ctx context.Context, roomID primitive.ObjectID, checkIn, checkOut time.Time, exclude *primitive.ObjectID) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.IsOverlapping")
	defer span.End()

	active, err := service.reservations.GetActiveByRoom(ctx, roomID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	for _, reservation := range active {
		if exclude != nil && reservation.ID == *exclude {
			continue
		}
		if domain.Overlaps(checkIn, checkOut, reservation.CheckIn, reservation.CheckOut) {
			return true, nil
		}
	}
	return false, nil
}

func (service *ReservationService) GetReservation(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.GetReservation")
	defer span.End()

	reservation, err := service.reservations.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.populateRoom(ctx, reservation)
	return reservation, nil
}

func (service *ReservationService) GetAllReservations(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.GetAllReservations")
	defer span.End()

	reservations, err := service.reservations.GetAll(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cache := make(map[primitive.ObjectID]*domain.Room)
	for _, reservation := range reservations {
		if room, ok := cache[reservation.RoomID]; ok {
			reservation.Room = room
			continue
		}
		service.populateRoom(ctx, reservation)
		if reservation.Room != nil {
			cache[reservation.RoomID] = reservation.Room
		}
	}
	return reservations, nil
}

func (service *ReservationService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ReservationStatus) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.UpdateStatus")
	defer span.End()

	// any status may move to any other; only the enumeration is enforced
	if !status.Valid() {
		span.SetStatus(codes.Error, "Invalid status")
		return nil, domain.NewInvalidInput("Invalid status")
	}

	reservation, err := service.reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.populateRoom(ctx, reservation)
	return reservation, nil
}

func (service *ReservationService) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.UpdatePaymentStatus")
	defer span.End()

	if !status.Valid() {
		span.SetStatus(codes.Error, "Invalid payment status")
		return nil, domain.NewInvalidInput("Invalid payment status")
	}

	reservation, err := service.reservations.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.populateRoom(ctx, reservation)
	return reservation, nil
}

// GetStats aggregates the dashboard counters. Revenue sums paid
// reservations only and is not decremented for refunds.
func (service *ReservationService) GetStats(ctx context.Context) (*domain.Stats, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.GetStats")
	defer span.End()

	totalRooms, err := service.rooms.Count(ctx, false)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	availableRooms, err := service.rooms.Count(ctx, true)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	totalReservations, err := service.reservations.Count(ctx, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	pending := domain.StatusPending
	pendingReservations, err := service.reservations.Count(ctx, &pending)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	confirmed := domain.StatusConfirmed
	confirmedReservations, err := service.reservations.Count(ctx, &confirmed)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	totalRevenue, err := service.reservations.PaidRevenue(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &domain.Stats{
		TotalRooms:            totalRooms,
		AvailableRooms:        availableRooms,
		TotalReservations:     totalReservations,
		PendingReservations:   pendingReservations,
		ConfirmedReservations: confirmedReservations,
		TotalRevenue:          totalRevenue,
	}, nil
}

func (service *ReservationService) populateRoom(ctx context.Context, reservation *domain.Reservation) {
	room, err := service.rooms.Get(ctx, reservation.RoomID)
	if err != nil {
		service.logger.Warnf("ReservationService.populateRoom : room %s not found for reservation %s", reservation.RoomID.Hex(), reservation.ID.Hex())
		return
	}
	reservation.Room = room
}

func (service *ReservationService) lockRoom(roomID primitive.ObjectID) func() {
	value, _ := service.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
