package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, r *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchesLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchesLabels(m *dto.Metric, labels map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestRecordBookView(t *testing.T) {
	r := New()

	r.RecordBookView(ViewOutcomeRecorded)
	r.RecordBookView(ViewOutcomeRecorded)
	r.RecordBookView(ViewOutcomeDeduped)

	assert.Equal(t, 2.0, counterValue(t, r, "book_views_recorded_total", map[string]string{"outcome": "recorded"}))
	assert.Equal(t, 1.0, counterValue(t, r, "book_views_recorded_total", map[string]string{"outcome": "deduped"}))
}

func TestObserveHTTPRequest(t *testing.T) {
	r := New()
	r.ObserveHTTPRequest("GET", "/books", 200, 25*time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, r, "http_requests_total", map[string]string{
		"method": "GET",
		"route":  "/books",
		"status": "200",
	}))
}

func TestHandlerServesScrape(t *testing.T) {
	r := New()
	r.RecordFavouriteChange(FavouriteActionAdd, FavouriteOutcomeApplied)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "favourite_changes_total"))
}
