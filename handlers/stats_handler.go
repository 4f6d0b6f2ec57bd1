package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "hotel_service/service"
)

type StatsHandler struct {
	service *application.ReservationService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewStatsHandler(service *application.ReservationService, tracer trace.Tracer, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *StatsHandler) Init(router *mux.Router) {
	router.HandleFunc("/dashboard/stats", handler.GetStats).Methods("GET")
	router.HandleFunc("/health", handler.Health).Methods("GET")
}

func (handler *StatsHandler) GetStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatsHandler.GetStats")
	defer span.End()

	stats, err := handler.service.GetStats(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("StatsHandler.GetStats : %s", err)
		writeDomainError(writer, err)
		return
	}
	jsonResponse(stats, writer)
}

type healthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

func (handler *StatsHandler) Health(writer http.ResponseWriter, req *http.Request) {
	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "development"
	}

	jsonResponse(healthResponse{
		Status:      "OK",
		Message:     "Hotel Reservation API is running",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: environment,
	}, writer)
}
