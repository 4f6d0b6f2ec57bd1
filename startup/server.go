package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"hotel_service/domain"
	"hotel_service/handlers"
	application "hotel_service/service"
	"hotel_service/startup/config"
	"hotel_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const (
	LogFilePath = "/app/logs/hotel.log"
)

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Message,
	)

	return []byte(msg), nil
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		Logger.Warnf("Failed to create rotatelogs writer, logging to stdout: %v", err)
		Logger.SetOutput(os.Stdout)
	} else {
		Logger.SetOutput(writer)
	}

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) initMongoClient(ctx context.Context) *mongo.Client {
	client, err := store.GetClient(ctx, server.config.HotelDBHost, server.config.HotelDBPort)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Ping(ctx, client); err != nil {
		log.Fatalf("Cannot reach mongo: %s", err)
	}
	return client
}

func (server *Server) Start() {
	initLogger()

	timeoutContext, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient := server.initMongoClient(timeoutContext)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			Logger.Errorf("Error disconnecting mongo client: %s", err)
		}
	}(mongoClient, context.Background())

	if err := store.EnsureRoomIndexes(timeoutContext, mongoClient); err != nil {
		Logger.Errorf("Failed to create room indexes: %s", err)
	}

	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("hotel_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	roomStore := server.initRoomStore(mongoClient, tracer)
	reservationStore := server.initReservationStore(mongoClient, tracer)

	if server.config.SeedRooms {
		inserted, err := store.SeedRooms(timeoutContext, roomStore)
		if err != nil {
			Logger.Errorf("Room seeding failed: %s", err)
		} else if inserted > 0 {
			Logger.Infof("Seeded %d sample rooms", inserted)
		}
	}

	roomService := application.NewRoomService(roomStore, reservationStore, tracer, Logger)
	reservationService := application.NewReservationService(reservationStore, roomStore, tracer, Logger)

	roomHandler := handlers.NewRoomHandler(roomService, tracer, Logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, tracer, Logger)
	statsHandler := handlers.NewStatsHandler(reservationService, tracer, Logger)

	server.start(roomHandler, reservationHandler, statsHandler)
}

func (server *Server) initRoomStore(client *mongo.Client, tracer trace.Tracer) domain.RoomStore {
	return store.NewRoomMongoDBStore(client, tracer, Logger)
}

func (server *Server) initReservationStore(client *mongo.Client, tracer trace.Tracer) domain.ReservationStore {
	return store.NewReservationMongoDBStore(client, tracer, Logger)
}

func (server *Server) start(roomHandler *handlers.RoomHandler, reservationHandler *handlers.ReservationHandler, statsHandler *handlers.StatsHandler) {
	router := NewRouter(roomHandler, reservationHandler, statsHandler)

	limiter := NewRateLimiter()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      limiter.Middleware(router),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	wait := time.Second * 15
	go func() {
		Logger.Infof("Server listening on port %s", server.config.Port)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

// NewRouter assembles the full HTTP surface. Separated from start so tests
// can run the exact production routing against in-memory stores.
func NewRouter(roomHandler *handlers.RoomHandler, reservationHandler *handlers.ReservationHandler, statsHandler *handlers.StatsHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handlers.ExtractTraceInfoMiddleware)
	router.Use(MiddlewareContentTypeSet)
	router.Use(CORSMiddleware)

	roomHandler.Init(router)
	reservationHandler.Init(router)
	statsHandler.Init(router)

	router.NotFoundHandler = http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{"error":"Endpoint not found"}`))
	})

	return router
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("hotel_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
