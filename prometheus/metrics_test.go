package prometheus

import (
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"buildsite-service/pkg/config"
)

func TestMain(m *testing.M) {
	InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "promtest"}})
	os.Exit(m.Run())
}

func TestTrackDBOperation_RecordsDuration(t *testing.T) {
	done := TrackDBOperation("insert")
	done(time.Now().Add(-5 * time.Millisecond))

	count := testutil.CollectAndCount(DbOperationDuration, "promtest_db_operation_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestRecordLlmCall_CountsByTaskAndOutcome(t *testing.T) {
	RecordLlmCall("schedule", "success", 100*time.Millisecond)
	RecordLlmCall("schedule", "error", 50*time.Millisecond)
	RecordLlmCall("chat", "success", 10*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(LlmCallsTotal.WithLabelValues("schedule", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LlmCallsTotal.WithLabelValues("schedule", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LlmCallsTotal.WithLabelValues("chat", "success")))
}
