package whatsapp

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
)

// GreetingText: первое сообщение клиента в чате WhatsApp.
func GreetingText(businessName string) string {
	return "Hi! I'm interested in booking an event with " + businessName + "."
}

type BookingFinder interface {
	GetByReference(ctx context.Context, ref string) (*bookings.Booking, error)
}

type Handler struct {
	log      *slog.Logger
	wa       *Service
	pricing  *pricing.Config
	bookings BookingFinder
}

func NewHandler(log *slog.Logger, wa *Service, cfg *pricing.Config, finder BookingFinder) *Handler {
	return &Handler{log: log, wa: wa, pricing: cfg, bookings: finder}
}

// Greeting: /whatsapp -> чат с приветствием
func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.wa.URL(GreetingText(h.pricing.Contact().Name)), http.StatusFound)
}

// Booking: /whatsapp/booking?ref=EE-... -> чат с текстом заявки
func (h *Handler) Booking(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		http.Error(w, "missing ref parameter", http.StatusBadRequest)
		return
	}
	if h.bookings == nil {
		http.Error(w, "bookings are not available", http.StatusServiceUnavailable)
		return
	}

	b, err := h.bookings.GetByReference(r.Context(), ref)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.log.Error("whatsapp: load booking failed", "ref", ref, "err", err)
		http.Error(w, "failed to load booking", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.wa.URL(bookings.Message(*b)), http.StatusFound)
}

// Estimate: /whatsapp/estimate?package=premium&size=medium&addons=cake,stage&distance=20&code=FESTIVE10
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	e, err := EstimateFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := h.pricing.Calculate(e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, h.wa.URL(h.pricing.EstimateMessage(e, b)), http.StatusFound)
}

// EstimateFromQuery разбирает параметры сметы из query-строки.
// Код скидки приводится к верхнему регистру.
func EstimateFromQuery(r *http.Request) (pricing.Estimate, error) {
	q := r.URL.Query()
	e := pricing.Estimate{
		Package:      pricing.PackageKey(strings.TrimSpace(q.Get("package"))),
		Size:         pricing.SizeKey(strings.TrimSpace(q.Get("size"))),
		DiscountCode: strings.ToUpper(strings.TrimSpace(q.Get("code"))),
	}
	for _, a := range strings.Split(q.Get("addons"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			e.Addons = append(e.Addons, pricing.AddonKey(a))
		}
	}
	if d := strings.TrimSpace(q.Get("distance")); d != "" {
		v, err := strconv.ParseFloat(d, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return e, errors.New("invalid distance parameter")
		}
		e.Distance = v
	}
	return e, nil
}
