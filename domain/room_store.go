package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomFilter is the enumerated query-options structure mapped to storage
// predicates by the store. Nil fields are not applied.
type RoomFilter struct {
	Type      *RoomType
	MinPrice  *float64
	MaxPrice  *float64
	Available *bool
}

type RoomStore interface {
	Insert(ctx context.Context, room *Room) (*Room, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Room, error)
	// GetAll returns rooms matching the filter, sorted by ascending price.
	GetAll(ctx context.Context, filter RoomFilter) ([]*Room, error)
	// GetAvailableExcept returns rooms with the availability flag set whose
	// id is not in the excluded set.
	GetAvailableExcept(ctx context.Context, excluded []primitive.ObjectID) ([]*Room, error)
	Count(ctx context.Context, onlyAvailable bool) (int64, error)
}
