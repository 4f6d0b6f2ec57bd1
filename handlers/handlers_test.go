package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
	"hotel_service/handlers"
	application "hotel_service/service"
	"hotel_service/startup"
	"hotel_service/store"
)

type testEnv struct {
	server       *httptest.Server
	rooms        *store.RoomInMemStore
	reservations *store.ReservationInMemStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rooms := store.NewRoomInMemStore()
	reservations := store.NewReservationInMemStore()
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	roomService := application.NewRoomService(rooms, reservations, tracer, logger)
	reservationService := application.NewReservationService(reservations, rooms, tracer, logger)

	router := startup.NewRouter(
		handlers.NewRoomHandler(roomService, tracer, logger),
		handlers.NewReservationHandler(reservationService, tracer, logger),
		handlers.NewStatsHandler(reservationService, tracer, logger),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, rooms: rooms, reservations: reservations}
}

func (env *testEnv) insertRoom(t *testing.T, roomNumber string, price float64, maxGuests int, available bool) *domain.Room {
	t.Helper()
	room, err := env.rooms.Insert(context.Background(), &domain.Room{
		RoomNumber: roomNumber,
		Type:       domain.Double,
		Price:      price,
		MaxGuests:  maxGuests,
		Available:  available,
	})
	require.NoError(t, err)
	return room
}

func (env *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(env.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (env *testEnv) postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(env.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (env *testEnv) putJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, env.server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func createPayload(roomID, checkIn, checkOut string, guests int) map[string]interface{} {
	return map[string]interface{}{
		"guestName":       "John Doe",
		"guestEmail":      "john@example.com",
		"guestPhone":      "+1 555 123 4567",
		"roomId":          roomID,
		"checkIn":         checkIn,
		"checkOut":        checkOut,
		"numberOfGuests":  guests,
		"specialRequests": "late checkin",
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Hotel Reservation API is running", body["message"])
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestGetRoomsSortedByPrice(t *testing.T) {
	env := newTestEnv(t)
	env.insertRoom(t, "301", 249.99, 3, true)
	env.insertRoom(t, "101", 89.99, 1, true)

	resp := env.get(t, "/rooms")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms []domain.Room
	decodeBody(t, resp, &rooms)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "301", rooms[1].RoomNumber)
}

func TestGetRoomsWithFilters(t *testing.T) {
	env := newTestEnv(t)
	env.insertRoom(t, "101", 89.99, 1, true)
	env.insertRoom(t, "301", 249.99, 3, false)

	resp := env.get(t, "/rooms?minPrice=100&maxPrice=300")
	var rooms []domain.Room
	decodeBody(t, resp, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, "301", rooms[0].RoomNumber)

	resp = env.get(t, "/rooms?type=penthouse")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetRoomByID(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 89.99, 1, true)

	resp := env.get(t, "/rooms/"+room.ID.Hex())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched domain.Room
	decodeBody(t, resp, &fetched)
	assert.Equal(t, room.ID, fetched.ID)

	resp = env.get(t, "/rooms/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, "/rooms/not-a-hex-id")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAvailableRoomsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	booked := env.insertRoom(t, "101", 150, 2, true)
	free := env.insertRoom(t, "102", 99.99, 2, true)

	resp := env.postJSON(t, "/reservations", createPayload(booked.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, "/rooms/available/2024-01-16/2024-01-18")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms []domain.Room
	decodeBody(t, resp, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, free.ID, rooms[0].ID)

	resp = env.get(t, "/rooms/available/bogus/2024-01-18")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateReservationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 2, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Reservation
	decodeBody(t, resp, &created)
	assert.Equal(t, 300.0, created.TotalPrice)
	assert.Equal(t, domain.StatusPending, created.Status)
	require.NotNil(t, created.Room)
	assert.Equal(t, "101", created.Room.RoomNumber)
}

func TestCreateReservationErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 2, true)
	closed := env.insertRoom(t, "102", 150, 2, false)

	tests := []struct {
		name     string
		payload  map[string]interface{}
		expected int
	}{
		{"room not found", createPayload(primitive.NewObjectID().Hex(), "2024-01-15", "2024-01-17", 2), http.StatusNotFound},
		{"room unavailable", createPayload(closed.ID.Hex(), "2024-01-15", "2024-01-17", 2), http.StatusBadRequest},
		{"capacity exceeded", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 5), http.StatusBadRequest},
		{"bad date range", createPayload(room.ID.Hex(), "2024-01-17", "2024-01-15", 2), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.postJSON(t, "/reservations", tt.payload)
			assert.Equal(t, tt.expected, resp.StatusCode)
			resp.Body.Close()
		})
	}

	// a successful booking makes the overlapping one conflict
	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-16", "2024-01-18", 2))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestListReservationsFilteredNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 4, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-01", "2024-01-03", 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	other := createPayload(room.ID.Hex(), "2024-02-01", "2024-02-03", 2)
	other["guestEmail"] = "jane@example.com"
	resp = env.postJSON(t, "/reservations", other)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, "/reservations")
	var all []domain.Reservation
	decodeBody(t, resp, &all)
	assert.Len(t, all, 2)

	resp = env.get(t, "/reservations?email=jane@example.com")
	var filtered []domain.Reservation
	decodeBody(t, resp, &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, "jane@example.com", filtered[0].GuestEmail)

	resp = env.get(t, "/reservations?status=bogus")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetReservationByID(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 2, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	var created domain.Reservation
	decodeBody(t, resp, &created)

	resp = env.get(t, "/reservations/"+created.ID.Hex())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched domain.Reservation
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.Room)

	resp = env.get(t, "/reservations/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 2, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	var created domain.Reservation
	decodeBody(t, resp, &created)

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/status", created.ID.Hex()), map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Reservation
	decodeBody(t, resp, &updated)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/status", created.ID.Hex()), map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/status", primitive.NewObjectID().Hex()), map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 150, 2, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-15", "2024-01-17", 2))
	var created domain.Reservation
	decodeBody(t, resp, &created)

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/payment", created.ID.Hex()), map[string]string{"paymentStatus": "paid"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Reservation
	decodeBody(t, resp, &updated)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/payment", created.ID.Hex()), map[string]string{"paymentStatus": "disputed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboardStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	room := env.insertRoom(t, "101", 100, 4, true)

	resp := env.postJSON(t, "/reservations", createPayload(room.ID.Hex(), "2024-01-01", "2024-01-04", 2))
	var created domain.Reservation
	decodeBody(t, resp, &created)

	resp = env.putJSON(t, fmt.Sprintf("/reservations/%s/payment", created.ID.Hex()), map[string]string{"paymentStatus": "paid"})
	resp.Body.Close()

	resp = env.get(t, "/dashboard/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats domain.Stats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalRooms)
	assert.Equal(t, int64(1), stats.AvailableRooms)
	assert.Equal(t, int64(1), stats.TotalReservations)
	assert.Equal(t, 300.0, stats.TotalRevenue)
}

func TestCreateReservationMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/reservations", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
