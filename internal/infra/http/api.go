package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/chat"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/infra/metrics"
)

// ограничение длины сообщения в чате, как у поля ввода на сайте
const maxChatRunes = 500

const maxBodyBytes = 64 << 10

type apiHandler struct {
	deps Deps
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "message": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

/*** PRICING ***/

type keyed[K ~string, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

func (a *apiHandler) pricingTables(w http.ResponseWriter, _ *http.Request) {
	cfg := a.deps.Pricing

	pkgs := make([]keyed[pricing.PackageKey, pricing.Package], 0, len(cfg.PackageOrder))
	for _, k := range cfg.PackageOrder {
		pkgs = append(pkgs, keyed[pricing.PackageKey, pricing.Package]{Key: k, Value: cfg.Packages[k]})
	}
	sizes := make([]keyed[pricing.SizeKey, pricing.Size], 0, len(cfg.SizeOrder))
	for _, k := range cfg.SizeOrder {
		sizes = append(sizes, keyed[pricing.SizeKey, pricing.Size]{Key: k, Value: cfg.Sizes[k]})
	}
	addons := make([]keyed[pricing.AddonKey, pricing.Addon], 0, len(cfg.AddonOrder))
	for _, k := range cfg.AddonOrder {
		addons = append(addons, keyed[pricing.AddonKey, pricing.Addon]{Key: k, Value: cfg.Addons[k]})
	}

	// коды скидок наружу не отдаём
	writeJSON(w, http.StatusOK, map[string]any{
		"decorationPackages": pkgs,
		"eventSizes":         sizes,
		"addons":             addons,
		"travelCharges":      cfg.Travel,
		"gst":                cfg.Tax,
	})
}

type formattedLine struct {
	Item  string `json:"item"`
	Price string `json:"price"`
}

type estimateResponse struct {
	Estimate    pricing.Estimate  `json:"estimate"`
	Breakdown   pricing.Breakdown `json:"result"`
	Lines       []formattedLine   `json:"formattedBreakdown"`
	Total       string            `json:"formattedTotal"`
	Message     string            `json:"message"`
	WhatsAppURL string            `json:"whatsappUrl"`
}

func (a *apiHandler) estimate(w http.ResponseWriter, r *http.Request) {
	var e pricing.Estimate
	if err := decodeBody(w, r, &e); err != nil {
		metrics.EstimateErrorsTotal.WithLabelValues(metrics.ChannelHTTP).Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// движок регистр не трогает, нормализуем здесь
	e.DiscountCode = strings.ToUpper(strings.TrimSpace(e.DiscountCode))

	b, err := a.deps.Pricing.Calculate(e)
	if err != nil {
		metrics.EstimateErrorsTotal.WithLabelValues(metrics.ChannelHTTP).Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.EstimatesTotal.WithLabelValues(metrics.ChannelHTTP, string(e.Package)).Inc()

	lines := make([]formattedLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, formattedLine{Item: l.Item, Price: pricing.FormatCurrency(l.Price)})
	}
	msg := a.deps.Pricing.EstimateMessage(e, b)

	writeJSON(w, http.StatusOK, estimateResponse{
		Estimate:    e,
		Breakdown:   b,
		Lines:       lines,
		Total:       pricing.FormatRupees(b.Total),
		Message:     msg,
		WhatsAppURL: a.deps.WhatsApp.URL(msg),
	})
}

func (a *apiHandler) priceRange(w http.ResponseWriter, r *http.Request) {
	key := pricing.PackageKey(r.URL.Query().Get("package"))
	lo, hi, err := a.deps.Pricing.PriceRange(key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"package": key,
		"min":     lo,
		"max":     hi,
		"label":   pricing.FormatRupees(lo) + " - " + pricing.FormatRupees(hi),
	})
}

/*** CHAT ***/

type chatRequest struct {
	Text string `json:"text"`
}

func (a *apiHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if rs := []rune(req.Text); len(rs) > maxChatRunes {
		req.Text = string(rs[:maxChatRunes])
	}

	rule := chat.Match(req.Text)
	metrics.ChatRepliesTotal.WithLabelValues(metrics.ChannelHTTP, rule.Name).Inc()
	writeJSON(w, http.StatusOK, map[string]string{"reply": rule.Response, "rule": rule.Name})
}

/*** BOOKINGS ***/

type bookingRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EventType  string `json:"eventType"`
	EventDate  string `json:"eventDate"`
	TimeSlot   string `json:"timeSlot"`
	GuestCount int    `json:"guestCount"`
	Location   string `json:"location"`
	Budget     string `json:"budget"`
	Message    string `json:"message"`
	Source     string `json:"source"`
}

func (req bookingRequest) toBooking(loc *time.Location) bookings.Booking {
	b := bookings.Booking{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		EventType:  strings.TrimSpace(req.EventType),
		TimeSlot:   strings.ToLower(strings.TrimSpace(req.TimeSlot)),
		GuestCount: req.GuestCount,
		Location:   strings.TrimSpace(req.Location),
		Budget:     strings.TrimSpace(req.Budget),
		Message:    strings.TrimSpace(req.Message),
		Source:     bookings.SourceWebsite,
	}
	if strings.EqualFold(req.Source, string(bookings.SourceWhatsApp)) {
		b.Source = bookings.SourceWhatsApp
	}
	if d, err := bookings.ParseDate(req.EventDate, loc); err == nil {
		b.EventDate = d
	}
	return b
}

func (a *apiHandler) createBooking(w http.ResponseWriter, r *http.Request) {
	if a.deps.Bookings == nil {
		writeError(w, http.StatusServiceUnavailable, "bookings are not available")
		return
	}

	var req bookingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b := req.toBooking(a.deps.Location)

	now := a.deps.Now().In(a.deps.Location)
	if errs := bookings.Validate(b, now); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "validation failed",
			"errors":  errs,
		})
		return
	}

	ctx := r.Context()
	if b.TimeSlot != "" {
		taken, err := a.deps.Bookings.TakenSlots(ctx, b.EventDate)
		if err != nil {
			a.deps.Log.Error("availability check failed", "date", b.EventDate, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to create booking")
			return
		}
		if !contains(bookings.Availability(taken), b.TimeSlot) {
			writeError(w, http.StatusConflict, "time slot is already booked")
			return
		}
	}

	b.Reference = bookings.NewReference(now)
	if err := a.deps.Bookings.Create(ctx, &b); err != nil {
		if errors.Is(err, bookings.ErrSlotTaken) {
			writeError(w, http.StatusConflict, "time slot is already booked")
			return
		}
		a.deps.Log.Error("create booking failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}
	metrics.BookingsTotal.WithLabelValues(string(b.Source)).Inc()
	a.deps.Log.Info("booking created", "ref", b.Reference, "event_type", b.EventType, "date", b.EventDate.Format(time.DateOnly))

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Booking request submitted successfully",
		"data":        map[string]string{"bookingId": b.Reference},
		"whatsappUrl": a.deps.WhatsApp.URL(bookings.Message(b)),
	})
}

func (a *apiHandler) availability(w http.ResponseWriter, r *http.Request) {
	if a.deps.Bookings == nil {
		writeError(w, http.StatusServiceUnavailable, "bookings are not available")
		return
	}
	date, err := bookings.ParseDate(r.URL.Query().Get("date"), a.deps.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	taken, err := a.deps.Bookings.TakenSlots(r.Context(), date)
	if err != nil {
		a.deps.Log.Error("availability check failed", "date", date, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to check availability")
		return
	}
	free := bookings.Availability(taken)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date.Format(time.DateOnly),
		"available": len(free) > 0,
		"slots":     free,
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
