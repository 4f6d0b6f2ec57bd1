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

const RESERVATION_COLLECTION = "reservations"

type ReservationMongoDBStore struct {
	reservations *mongo.Collection
	tracer       trace.Tracer
	logger       *logrus.Logger
}

func NewReservationMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.ReservationStore {
	reservations := client.Database(DATABASE).Collection(RESERVATION_COLLECTION)
	return &ReservationMongoDBStore{
		reservations: reservations,
		tracer:       tracer,
		logger:       logger,
	}
}

func (store *ReservationMongoDBStore) Insert(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.Insert")
	defer span.End()

	now := time.Now()
	reservation.ID = primitive.NewObjectID()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	result, err := store.reservations.InsertOne(ctx, reservation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.Insert : %s", err)
		return nil, err
	}
	reservation.ID = result.InsertedID.(primitive.ObjectID)
	return reservation, nil
}

func (store *ReservationMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.Get")
	defer span.End()

	reservation, err := store.filterOne(ctx, bson.M{"_id": id})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reservation, nil
}

func (store *ReservationMongoDBStore) GetAll(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.GetAll")
	defer span.End()

	query := bson.M{}
	if filter.GuestEmail != nil {
		query["guestEmail"] = *filter.GuestEmail
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	reservations, err := store.filter(ctx, query, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.GetAll : %s", err)
		return nil, err
	}
	return reservations, nil
}

func (store *ReservationMongoDBStore) GetActiveByRoom(ctx context.Context, roomID primitive.ObjectID) ([]*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.GetActiveByRoom")
	defer span.End()

	query := bson.M{
		"room":   roomID,
		"status": bson.M{"$in": []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}},
	}

	reservations, err := store.filter(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.GetActiveByRoom : %s", err)
		return nil, err
	}
	return reservations, nil
}

func (store *ReservationMongoDBStore) GetActive(ctx context.Context) ([]*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.GetActive")
	defer span.End()

	query := bson.M{
		"status": bson.M{"$in": []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}},
	}

	reservations, err := store.filter(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.GetActive : %s", err)
		return nil, err
	}
	return reservations, nil
}

func (store *ReservationMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ReservationStatus) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.UpdateStatus")
	defer span.End()

	return store.update(ctx, id, bson.M{"status": status})
}

func (store *ReservationMongoDBStore) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.UpdatePaymentStatus")
	defer span.End()

	return store.update(ctx, id, bson.M{"paymentStatus": status})
}

func (store *ReservationMongoDBStore) update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Reservation, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := store.reservations.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts)

	var reservation domain.Reservation
	err := result.Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFound("Reservation not found")
	}
	if err != nil {
		store.logger.Errorf("ReservationStore.update : %s", err)
		return nil, err
	}
	return &reservation, nil
}

func (store *ReservationMongoDBStore) Count(ctx context.Context, status *domain.ReservationStatus) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.Count")
	defer span.End()

	query := bson.M{}
	if status != nil {
		query["status"] = *status
	}

	count, err := store.reservations.CountDocuments(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.Count : %s", err)
		return 0, err
	}
	return count, nil
}

func (store *ReservationMongoDBStore) PaidRevenue(ctx context.Context) (float64, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationStore.PaidRevenue")
	defer span.End()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": domain.PaymentPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalPrice"}}}},
	}

	cursor, err := store.reservations.Aggregate(ctx, pipeline)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("ReservationStore.PaidRevenue : %s", err)
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (store *ReservationMongoDBStore) filter(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*domain.Reservation, error) {
	cursor, err := store.reservations.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeReservations(ctx, cursor)
}

func (store *ReservationMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Reservation, error) {
	result := store.reservations.FindOne(ctx, filter)

	var reservation domain.Reservation
	err := result.Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFound("Reservation not found")
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) (reservations []*domain.Reservation, err error) {
	for cursor.Next(ctx) {
		var reservation domain.Reservation
		err = cursor.Decode(&reservation)
		if err != nil {
			return
		}
		reservations = append(reservations, &reservation)
	}
	err = cursor.Err()
	return
}
