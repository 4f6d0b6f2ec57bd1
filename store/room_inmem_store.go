package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel_service/domain"
)

// RoomInMemStore is a map-backed RoomStore used as a test double and for
// running the service without a database.
type RoomInMemStore struct {
	mu    sync.RWMutex
	rooms map[primitive.ObjectID]*domain.Room
}

func NewRoomInMemStore() *RoomInMemStore {
	return &RoomInMemStore{
		rooms: make(map[primitive.ObjectID]*domain.Room),
	}
}

func (store *RoomInMemStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := time.Now()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now

	copied := *room
	store.rooms[room.ID] = &copied
	return room, nil
}

func (store *RoomInMemStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	room, ok := store.rooms[id]
	if !ok {
		return nil, domain.NewNotFound("Room not found")
	}
	copied := *room
	return &copied, nil
}

func (store *RoomInMemStore) GetAll(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var rooms []*domain.Room
	for _, room := range store.rooms {
		if filter.Type != nil && room.Type != *filter.Type {
			continue
		}
		if filter.Available != nil && room.Available != *filter.Available {
			continue
		}
		if filter.MinPrice != nil && room.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && room.Price > *filter.MaxPrice {
			continue
		}
		copied := *room
		rooms = append(rooms, &copied)
	}
	sortRoomsByPrice(rooms)
	return rooms, nil
}

func (store *RoomInMemStore) GetAvailableExcept(ctx context.Context, excluded []primitive.ObjectID) ([]*domain.Room, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	excludedSet := make(map[primitive.ObjectID]struct{}, len(excluded))
	for _, id := range excluded {
		excludedSet[id] = struct{}{}
	}

	var rooms []*domain.Room
	for _, room := range store.rooms {
		if !room.Available {
			continue
		}
		if _, ok := excludedSet[room.ID]; ok {
			continue
		}
		copied := *room
		rooms = append(rooms, &copied)
	}
	sortRoomsByPrice(rooms)
	return rooms, nil
}

func (store *RoomInMemStore) Count(ctx context.Context, onlyAvailable bool) (int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var count int64
	for _, room := range store.rooms {
		if onlyAvailable && !room.Available {
			continue
		}
		count++
	}
	return count, nil
}

func sortRoomsByPrice(rooms []*domain.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Price < rooms[j].Price
	})
}
