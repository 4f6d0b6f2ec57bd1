package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel_service/domain"
)

// ReservationInMemStore is a map-backed ReservationStore counterpart to
// RoomInMemStore.
type ReservationInMemStore struct {
	mu           sync.RWMutex
	reservations map[primitive.ObjectID]*domain.Reservation
}

func NewReservationInMemStore() *ReservationInMemStore {
	return &ReservationInMemStore{
		reservations: make(map[primitive.ObjectID]*domain.Reservation),
	}
}

func (store *ReservationInMemStore) Insert(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := time.Now()
	reservation.ID = primitive.NewObjectID()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	copied := *reservation
	copied.Room = nil
	store.reservations[reservation.ID] = &copied
	return reservation, nil
}

func (store *ReservationInMemStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	reservation, ok := store.reservations[id]
	if !ok {
		return nil, domain.NewNotFound("Reservation not found")
	}
	copied := *reservation
	return &copied, nil
}

func (store *ReservationInMemStore) GetAll(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var reservations []*domain.Reservation
	for _, reservation := range store.reservations {
		if filter.GuestEmail != nil && reservation.GuestEmail != *filter.GuestEmail {
			continue
		}
		if filter.Status != nil && reservation.Status != *filter.Status {
			continue
		}
		copied := *reservation
		reservations = append(reservations, &copied)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
	return reservations, nil
}

func (store *ReservationInMemStore) GetActiveByRoom(ctx context.Context, roomID primitive.ObjectID) ([]*domain.Reservation, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var reservations []*domain.Reservation
	for _, reservation := range store.reservations {
		if reservation.RoomID != roomID || !reservation.Status.Blocking() {
			continue
		}
		copied := *reservation
		reservations = append(reservations, &copied)
	}
	return reservations, nil
}

func (store *ReservationInMemStore) GetActive(ctx context.Context) ([]*domain.Reservation, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var reservations []*domain.Reservation
	for _, reservation := range store.reservations {
		if !reservation.Status.Blocking() {
			continue
		}
		copied := *reservation
		reservations = append(reservations, &copied)
	}
	return reservations, nil
}

func (store *ReservationInMemStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ReservationStatus) (*domain.Reservation, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	reservation, ok := store.reservations[id]
	if !ok {
		return nil, domain.NewNotFound("Reservation not found")
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	copied := *reservation
	return &copied, nil
}

func (store *ReservationInMemStore) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus) (*domain.Reservation, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	reservation, ok := store.reservations[id]
	if !ok {
		return nil, domain.NewNotFound("Reservation not found")
	}
	reservation.PaymentStatus = status
	reservation.UpdatedAt = time.Now()
	copied := *reservation
	return &copied, nil
}

func (store *ReservationInMemStore) Count(ctx context.Context, status *domain.ReservationStatus) (int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var count int64
	for _, reservation := range store.reservations {
		if status != nil && reservation.Status != *status {
			continue
		}
		count++
	}
	return count, nil
}

func (store *ReservationInMemStore) PaidRevenue(ctx context.Context) (float64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var total float64
	for _, reservation := range store.reservations {
		if reservation.PaymentStatus == domain.PaymentPaid {
			total += reservation.TotalPrice
		}
	}
	return total, nil
}
