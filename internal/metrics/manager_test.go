package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.Aggregated(AggHabitStreak)
	m.Aggregated(AggHabitStreak)
	m.Aggregated(AggWeeklyReport)
	m.Exported("s3")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterAggregations.WithLabelValues(AggHabitStreak)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterAggregations.WithLabelValues(AggWeeklyReport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterExports.WithLabelValues("s3")))

	expected := `
# HELP lifelog_test_server_workout_exports_total The total number of workout exports by destination
# TYPE lifelog_test_server_workout_exports_total counter
lifelog_test_server_workout_exports_total{destination="s3"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lifelog_test_server_workout_exports_total"))
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.Aggregated(AggDailyNutrition)
		m.Exported("download")
	})
}

func TestManager_Handler(t *testing.T) {
	m, _ := NewTestManagerAndRegistry()
	m.GaugeRequests.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lifelog_test_server_current_requests 3")
}
