package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/ride-client/internal/config"
	"github.com/example/ride-client/internal/eta"
	"github.com/example/ride-client/internal/events"
	"github.com/example/ride-client/internal/geo"
	"github.com/example/ride-client/internal/payments"
	"github.com/example/ride-client/internal/storage"
	"github.com/example/ride-client/internal/stream"
)

// Server is the HTTP API surface consumed by the mobile client.
type Server struct {
	Payments payments.Gateway
	Users    storage.UserStore
	Rides    storage.RideStore
	Drivers  geo.Catalog
	Events   *events.Producer
	Stream   *stream.Registry
	Routing  eta.Client

	logger *slog.Logger
	mux    *mux.Router
}

// Deps carries the collaborators NewServer wires up. Events and Routing
// may be nil; the corresponding features degrade gracefully.
type Deps struct {
	Payments payments.Gateway
	Users    storage.UserStore
	Rides    storage.RideStore
	Drivers  geo.Catalog
	Events   *events.Producer
	Stream   *stream.Registry
	Routing  eta.Client
	Logger   *slog.Logger
}

func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Payments: d.Payments,
		Users:    d.Users,
		Rides:    d.Rides,
		Drivers:  d.Drivers,
		Events:   d.Events,
		Stream:   d.Stream,
		Routing:  d.Routing,
		logger:   logger,
		mux:      mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

// NewServerFromConfig wires real collaborators from loaded configuration,
// with in-memory fallbacks so the binary runs without external services.
func NewServerFromConfig(cfg config.ServerConfig, logger *slog.Logger) *Server {
	d := Deps{Logger: logger}

	d.Payments = payments.NewStripeGateway(cfg.StripeAPIKey)

	var store interface {
		storage.UserStore
		storage.RideStore
	}
	if cfg.PGDSN != "" {
		if ps, err := storage.NewPostgresStore(cfg.PGDSN); err == nil {
			store = ps
		} else {
			logger.Error("postgres unavailable, using memory store", "error", err)
		}
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	d.Users = store
	d.Rides = store

	if cfg.RedisAddr != "" {
		d.Drivers = geo.NewRedisGeo(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisGeoKey)
	} else {
		d.Drivers = geo.NewIndex()
	}

	if len(cfg.KafkaBrokers) > 0 {
		d.Events = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	d.Stream = stream.NewRegistry(logger)

	if cfg.DirectionsAPIKey != "" {
		d.Routing = &eta.CachingClient{
			Inner: eta.NewDirectionsClient(cfg.DirectionsEndpoint, cfg.DirectionsAPIKey),
			Cache: eta.NewCache(cfg.DirectionsCacheTTL),
		}
	} else {
		d.Routing = &eta.NaiveClient{}
	}

	return NewServer(d)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/payments/create", s.handleCreatePaymentIntent).Methods("POST")
	s.mux.HandleFunc("/api/payments/pay", s.handleConfirmPayment).Methods("POST")
	s.mux.HandleFunc("/api/user", s.handleCreateUser).Methods("POST")
	s.mux.HandleFunc("/api/driver", s.handleListDrivers).Methods("GET")
	s.mux.HandleFunc("/api/ride", s.handleCreateRide).Methods("POST")
	s.mux.HandleFunc("/api/ride/{email}", s.handleListRides).Methods("GET")
	s.mux.HandleFunc("/internal/driver/locations", s.handleDriverLocation).Methods("POST")
	s.mux.HandleFunc("/ws/drivers", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
