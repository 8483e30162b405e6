package whatsapp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
)

func TestService_URL(t *testing.T) {
	s := NewService("+91 70166-86728")
	assert.Equal(t, "917016686728", s.Phone())
	assert.Equal(t, "https://wa.me/917016686728", s.URL(""))
	assert.Equal(t,
		"https://wa.me/917016686728?text=Hi%20there%0A%2ABold%2A%20%26%20100%25%20%2B%20%E2%82%B9",
		s.URL("Hi there\n*Bold* & 100% + ₹"))
}

func TestEncode_RoundTrip(t *testing.T) {
	text := "🎉 *Cost Estimate*\n\nGST (18%): ₹540\nTotal = 3,540?"
	decoded, err := url.QueryUnescape(Encode(text))
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
	assert.NotContains(t, Encode(text), "+")
	assert.NotContains(t, Encode(text), "\n")
}

type fakeFinder struct {
	items map[string]bookings.Booking
	err   error
}

func (f *fakeFinder) GetByReference(_ context.Context, ref string) (*bookings.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.items[ref]
	if !ok {
		return nil, bookings.ErrNotFound
	}
	return &b, nil
}

func newTestHandler(f BookingFinder) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(log, NewService("917016686728"), pricing.Default(), f)
}

func TestHandler_Greeting(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(nil).Greeting(rec, httptest.NewRequest(http.MethodGet, "/whatsapp", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, NewService("917016686728").URL(GreetingText("Elegance Events")), rec.Header().Get("Location"))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pricing.Default().WithBusiness(pricing.Business{Name: "Elegance Pune"})
	rec = httptest.NewRecorder()
	NewHandler(log, NewService("917016686728"), cfg, nil).Greeting(rec, httptest.NewRequest(http.MethodGet, "/whatsapp", nil))
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Hi! I'm interested in booking an event with Elegance Pune.", loc.Query().Get("text"))
}

func TestHandler_Booking(t *testing.T) {
	b := bookings.Booking{
		Reference: "EE-42", Name: "Asha", EventType: "Anniversary",
		EventDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), GuestCount: 40, Location: "Pune",
	}
	h := newTestHandler(&fakeFinder{items: map[string]bookings.Booking{"EE-42": b}})

	rec := httptest.NewRecorder()
	h.Booking(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/booking?ref=EE-42", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, bookings.Message(b), loc.Query().Get("text"))

	rec = httptest.NewRecorder()
	h.Booking(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/booking?ref=EE-0", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Booking(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/booking", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	broken := newTestHandler(&fakeFinder{err: errors.New("db down")})
	rec = httptest.NewRecorder()
	broken.Booking(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/booking?ref=EE-42", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Estimate(t *testing.T) {
	h := newTestHandler(nil)

	rec := httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodGet,
		"/whatsapp/estimate?package=premium&size=medium&addons=photography&distance=20&code=festive10", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	text := loc.Query().Get("text")
	assert.Contains(t, text, "*Total: ₹13,122*")
	assert.Contains(t, text, "Festive Season Discount (-10%): -₹1,215")

	rec = httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/estimate?package=gold&size=small", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/estimate?package=basic&size=small&distance=far", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, d := range []string{"NaN", "Inf", "-Inf", "Infinity"} {
		rec = httptest.NewRecorder()
		h.Estimate(rec, httptest.NewRequest(http.MethodGet, "/whatsapp/estimate?package=basic&size=small&distance="+d, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, d)
	}
}

func TestEstimateFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?package=basic&size=large&addons=cake,%20stage,,cake&distance=12.5&code=%20refer15%20", nil)
	e, err := EstimateFromQuery(r)
	require.NoError(t, err)

	assert.Equal(t, pricing.PackageBasic, e.Package)
	assert.Equal(t, pricing.SizeLarge, e.Size)
	assert.Equal(t, []pricing.AddonKey{pricing.AddonCake, pricing.AddonStage, pricing.AddonCake}, e.Addons)
	assert.Equal(t, 12.5, e.Distance)
	assert.Equal(t, "REFER15", e.DiscountCode)

	_, err = EstimateFromQuery(httptest.NewRequest(http.MethodGet, "/?package=basic&size=small&distance=NaN", nil))
	assert.Error(t, err)
}
