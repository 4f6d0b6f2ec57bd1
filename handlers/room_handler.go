package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
	application "hotel_service/service"
)

type RoomHandler struct {
	service *application.RoomService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewRoomHandler(service *application.RoomService, tracer trace.Tracer, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *RoomHandler) Init(router *mux.Router) {
	router.HandleFunc("/rooms", handler.GetAll).Methods("GET")
	router.HandleFunc("/rooms/available/{checkIn}/{checkOut}", handler.GetAvailable).Methods("GET")
	router.HandleFunc("/rooms/{id}", handler.Get).Methods("GET")
}

func (handler *RoomHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetAll")
	defer span.End()

	filter, err := roomFilterFromQuery(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(writer, err)
		return
	}

	rooms, err := handler.service.GetAllRooms(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("RoomHandler.GetAll : %s", err)
		writeDomainError(writer, err)
		return
	}

	if rooms == nil {
		rooms = []*domain.Room{}
	}
	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Get")
	defer span.End()

	vars := mux.Vars(req)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusNotFound, "Room not found")
		return
	}

	room, err := handler.service.GetRoom(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(writer, err)
		return
	}
	jsonResponse(room, writer)
}

func (handler *RoomHandler) GetAvailable(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetAvailable")
	defer span.End()

	vars := mux.Vars(req)
	checkIn, err := domain.ParseDate(vars["checkIn"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusBadRequest, "Invalid check-in date")
		return
	}
	checkOut, err := domain.ParseDate(vars["checkOut"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusBadRequest, "Invalid check-out date")
		return
	}

	rooms, err := handler.service.GetAvailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("RoomHandler.GetAvailable : %s", err)
		writeDomainError(writer, err)
		return
	}

	if rooms == nil {
		rooms = []*domain.Room{}
	}
	jsonResponse(rooms, writer)
}

func roomFilterFromQuery(req *http.Request) (domain.RoomFilter, error) {
	var filter domain.RoomFilter
	query := req.URL.Query()

	if value := query.Get("type"); value != "" {
		roomType := domain.RoomType(value)
		if !roomType.Valid() {
			return filter, domain.NewInvalidInput("Invalid room type")
		}
		filter.Type = &roomType
	}
	if value := query.Get("minPrice"); value != "" {
		minPrice, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filter, domain.NewInvalidInput("Invalid minPrice")
		}
		filter.MinPrice = &minPrice
	}
	if value := query.Get("maxPrice"); value != "" {
		maxPrice, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filter, domain.NewInvalidInput("Invalid maxPrice")
		}
		filter.MaxPrice = &maxPrice
	}
	if value := query.Get("available"); value != "" {
		available := value == "true"
		filter.Available = &available
	}
	return filter, nil
}
