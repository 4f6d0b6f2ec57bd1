package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
)

const ROOM_COLLECTION = "rooms"

type RoomMongoDBStore struct {
	rooms  *mongo.Collection
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewRoomMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.RoomStore {
	rooms := client.Database(DATABASE).Collection(ROOM_COLLECTION)
	return &RoomMongoDBStore{
		rooms:  rooms,
		tracer: tracer,
		logger: logger,
	}
}

// EnsureRoomIndexes creates the unique index on roomNumber.
func EnsureRoomIndexes(ctx context.Context, client *mongo.Client) error {
	rooms := client.Database(DATABASE).Collection(ROOM_COLLECTION)
	_, err := rooms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "roomNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (store *RoomMongoDBStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Insert")
	defer span.End()

	now := time.Now()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := store.rooms.InsertOne(ctx, room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("RoomStore.Insert : %s", err)
		return nil, err
	}
	room.ID = result.InsertedID.(primitive.ObjectID)
	return room, nil
}

func (store *RoomMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	room, err := store.filterOne(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return room, nil
}

func (store *RoomMongoDBStore) GetAll(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetAll")
	defer span.End()

	query := bson.M{}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.Available != nil {
		query["available"] = *filter.Available
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	rooms, err := store.filter(ctx, query, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("RoomStore.GetAll : %s", err)
		return nil, err
	}
	return rooms, nil
}

func (store *RoomMongoDBStore) GetAvailableExcept(ctx context.Context, excluded []primitive.ObjectID) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetAvailableExcept")
	defer span.End()

	query := bson.M{
		"available": true,
		"_id":       bson.M{"$nin": excluded},
	}

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	rooms, err := store.filter(ctx, query, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("RoomStore.GetAvailableExcept : %s", err)
		return nil, err
	}
	return rooms, nil
}

func (store *RoomMongoDBStore) Count(ctx context.Context, onlyAvailable bool) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Count")
	defer span.End()

	query := bson.M{}
	if onlyAvailable {
		query["available"] = true
	}

	count, err := store.rooms.CountDocuments(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("RoomStore.Count : %s", err)
		return 0, err
	}
	return count, nil
}

func (store *RoomMongoDBStore) filter(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*domain.Room, error) {
	cursor, err := store.rooms.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeRooms(ctx, cursor)
}

func (store *RoomMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Room, error) {
	result := store.rooms.FindOne(ctx, filter)

	var room domain.Room
	err := result.Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFound("Room not found")
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func decodeRooms(ctx context.Context, cursor *mongo.Cursor) (rooms []*domain.Room, err error) {
	for cursor.Next(ctx) {
		var room domain.Room
		err = cursor.Decode(&room)
		if err != nil {
			return
		}
		rooms = append(rooms, &room)
	}
	err = cursor.Err()
	return
}
