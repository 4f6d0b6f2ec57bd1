package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
	application "hotel_service/service"
)

type ReservationHandler struct {
	service *application.ReservationService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewReservationHandler(service *application.ReservationService, tracer trace.Tracer, logger *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *ReservationHandler) Init(router *mux.Router) {
	router.HandleFunc("/reservations", handler.Create).Methods("POST")
	router.HandleFunc("/reservations", handler.GetAll).Methods("GET")
	router.HandleFunc("/reservations/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/reservations/{id}/status", handler.UpdateStatus).Methods("PUT")
	router.HandleFunc("/reservations/{id}/payment", handler.UpdatePayment).Methods("PUT")
}

func (handler *ReservationHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.Create")
	defer span.End()

	var request domain.ReservationRequest
	if err := request.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusBadRequest, "Invalid request format")
		return
	}

	reservation, err := handler.service.CreateReservation(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("ReservationHandler.Create : %s", err)
		writeDomainError(writer, err)
		return
	}

	handler.logger.Infof("ReservationHandler.Create : reservation %s created", reservation.ID.Hex())
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(writer).Encode(reservation)
}

func (handler *ReservationHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.GetAll")
	defer span.End()

	var filter domain.ReservationFilter
	query := req.URL.Query()
	if value := query.Get("email"); value != "" {
		filter.GuestEmail = &value
	}
	if value := query.Get("status"); value != "" {
		status := domain.ReservationStatus(value)
		if !status.Valid() {
			span.SetStatus(codes.Error, "Invalid status")
			writeError(writer, http.StatusBadRequest, "Invalid status")
			return
		}
		filter.Status = &status
	}

	reservations, err := handler.service.GetAllReservations(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("ReservationHandler.GetAll : %s", err)
		writeDomainError(writer, err)
		return
	}

	if reservations == nil {
		reservations = []*domain.Reservation{}
	}
	jsonResponse(reservations, writer)
}

func (handler *ReservationHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.Get")
	defer span.End()

	id, ok := reservationID(writer, req)
	if !ok {
		return
	}

	reservation, err := handler.service.GetReservation(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(writer, err)
		return
	}
	jsonResponse(reservation, writer)
}

func (handler *ReservationHandler) UpdateStatus(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.UpdateStatus")
	defer span.End()

	id, ok := reservationID(writer, req)
	if !ok {
		return
	}

	var update domain.StatusUpdate
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusBadRequest, "Invalid request format")
		return
	}

	reservation, err := handler.service.UpdateStatus(ctx, id, update.Status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("ReservationHandler.UpdateStatus : %s", err)
		writeDomainError(writer, err)
		return
	}
	jsonResponse(reservation, writer)
}

func (handler *ReservationHandler) UpdatePayment(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.UpdatePayment")
	defer span.End()

	id, ok := reservationID(writer, req)
	if !ok {
		return
	}

	var update domain.PaymentUpdate
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, http.StatusBadRequest, "Invalid request format")
		return
	}

	reservation, err := handler.service.UpdatePaymentStatus(ctx, id, update.PaymentStatus)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("ReservationHandler.UpdatePayment : %s", err)
		writeDomainError(writer, err)
		return
	}
	jsonResponse(reservation, writer)
}

func reservationID(writer http.ResponseWriter, req *http.Request) (primitive.ObjectID, bool) {
	vars := mux.Vars(req)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(writer, http.StatusNotFound, "Reservation not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
