package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the application's prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookViewsRecorded *prometheus.CounterVec
	favouriteChanges  *prometheus.CounterVec
}

// New creates a Registry with all collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookViewsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "book_views_recorded_total",
			Help: "Book detail views, split into newly recorded and same-day duplicates.",
		}, []string{"outcome"}),
		favouriteChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "favourite_changes_total",
			Help: "Favourite list mutations by action and outcome.",
		}, []string{"action", "outcome"}),
	}

	reg.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.bookViewsRecorded,
		r.favouriteChanges,
	)
	return r
}

// Handler serves the /metrics scrape endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one finished HTTP request.
func (r *Registry) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// View outcomes for RecordBookView.
const (
	ViewOutcomeRecorded = "recorded"
	ViewOutcomeDeduped  = "deduped"
)

// RecordBookView counts one view attempt with its dedupe outcome.
func (r *Registry) RecordBookView(outcome string) {
	r.bookViewsRecorded.WithLabelValues(outcome).Inc()
}

// Favourite actions and outcomes for RecordFavouriteChange.
const (
	FavouriteActionAdd    = "add"
	FavouriteActionRemove = "remove"

	FavouriteOutcomeApplied = "applied"
	FavouriteOutcomeNoop    = "noop"
)

// RecordFavouriteChange counts one favourites mutation.
func (r *Registry) RecordFavouriteChange(action, outcome string) {
	r.favouriteChanges.WithLabelValues(action, outcome).Inc()
}
