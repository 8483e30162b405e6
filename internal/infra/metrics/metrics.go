package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elegance",
		Name:      "estimates_total",
		Help:      "Cost estimates computed, by channel and decoration package.",
	}, []string{"channel", "package"})

	EstimateErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elegance",
		Name:      "estimate_errors_total",
		Help:      "Estimate requests rejected because of unknown keys or bad input.",
	}, []string{"channel"})

	ChatRepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elegance",
		Name:      "chat_replies_total",
		Help:      "Canned chat replies, by channel and matched rule.",
	}, []string{"channel", "rule"})

	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elegance",
		Name:      "bookings_total",
		Help:      "Booking requests stored, by source.",
	}, []string{"source"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "elegance",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})
)

const (
	ChannelHTTP     = "http"
	ChannelTelegram = "telegram"
)
