package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationFilter struct {
	GuestEmail *string
	Status     *ReservationStatus
}

type ReservationStore interface {
	Insert(ctx context.Context, reservation *Reservation) (*Reservation, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Reservation, error)
	// GetAll returns reservations matching the filter, newest first.
	GetAll(ctx context.Context, filter ReservationFilter) ([]*Reservation, error)
	// GetActiveByRoom returns the pending/confirmed reservations referencing
	// the room, the conflict set scanned by the availability resolver.
	GetActiveByRoom(ctx context.Context, roomID primitive.ObjectID) ([]*Reservation, error)
	// GetActive returns all pending/confirmed reservations across rooms.
	GetActive(ctx context.Context) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status ReservationStatus) (*Reservation, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status PaymentStatus) (*Reservation, error)
	Count(ctx context.Context, status *ReservationStatus) (int64, error)
	// PaidRevenue sums totalPrice over reservations with paymentStatus paid.
	PaidRevenue(ctx context.Context) (float64, error)
}
