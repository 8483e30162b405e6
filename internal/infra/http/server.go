package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/infra/metrics"
	"github.com/Spok95/elegance-bot/internal/infra/whatsapp"
)

// BookingStore: то, что API нужно от хранилища заявок.
type BookingStore interface {
	Create(ctx context.Context, b *bookings.Booking) error
	GetByReference(ctx context.Context, ref string) (*bookings.Booking, error)
	TakenSlots(ctx context.Context, date time.Time) ([]string, error)
}

type Deps struct {
	Log      *slog.Logger
	Pricing  *pricing.Config
	Bookings BookingStore // nil, API заявок отвечает 503
	WhatsApp *whatsapp.Service
	Location *time.Location
	Now      func() time.Time
}

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, deps Deps) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewHandler(exposeMetrics, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// NewHandler собирает mux; вынесено отдельно ради тестов.
func NewHandler(exposeMetrics bool, deps Deps) http.Handler {
	if deps.Log == nil {
		deps.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Pricing == nil {
		deps.Pricing = pricing.Default()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.WhatsApp == nil {
		deps.WhatsApp = whatsapp.NewService(whatsapp.DefaultPhone)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	api := &apiHandler{deps: deps}
	wa := whatsapp.NewHandler(deps.Log, deps.WhatsApp, deps.Pricing, deps.Bookings)

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, h))
	}
	route("GET /api/pricing", api.pricingTables)
	route("POST /api/estimate", api.estimate)
	route("GET /api/price-range", api.priceRange)
	route("POST /api/chat", api.chat)
	route("POST /api/bookings", api.createBooking)
	route("GET /api/availability", api.availability)
	route("GET /whatsapp", wa.Greeting)
	route("GET /whatsapp/booking", wa.Booking)
	route("GET /whatsapp/estimate", wa.Estimate)

	return mux
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
