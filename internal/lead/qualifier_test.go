package lead

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"buildsite-service/internal/llm"
	"buildsite-service/pkg/config"
	"buildsite-service/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "leadtest"}})
	os.Exit(m.Run())
}

func qualifierWithServer(content string) (*Qualifier, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	client := llm.NewClient(config.LLMConfig{
		Endpoint: srv.URL,
		Model:    "test-model",
		Timeout:  2 * time.Second,
	})
	return NewQualifier(client, zap.NewNop()), srv
}

func TestQualify_ExtractsLead(t *testing.T) {
	q, srv := qualifierWithServer(`{
		"name": "Alice",
		"phone": "555-0101",
		"email": "alice@x.com",
		"score": 85,
		"next_action": "Call within 24 hours",
		"rationale": "Budget and timeline stated"
	}`)
	defer srv.Close()

	a := q.Qualify(context.Background(), "Hi, I'm Alice, want a villa built, budget 2M, call 555-0101")
	assert.Equal(t, "Alice", a.Name)
	assert.Equal(t, "555-0101", a.Phone)
	assert.Equal(t, "alice@x.com", a.Email)
	assert.Equal(t, 85, a.Score)
	assert.Equal(t, "Call within 24 hours", a.NextAction)
}

func TestQualify_NotALead(t *testing.T) {
	q, srv := qualifierWithServer(`{"score": 0, "rationale": "internal chatter"}`)
	defer srv.Close()

	a := q.Qualify(context.Background(), "lunch at noon?")
	assert.Equal(t, 0, a.Score)
}

func TestQualify_GarbageOutputDegradesToZero(t *testing.T) {
	q, srv := qualifierWithServer("I cannot score this message.")
	defer srv.Close()

	a := q.Qualify(context.Background(), "anything")
	assert.Equal(t, Assessment{}, a)
}

func TestQualify_OutOfRangeScoreDegradesToZero(t *testing.T) {
	q, srv := qualifierWithServer(`{"score": 900}`)
	defer srv.Close()

	a := q.Qualify(context.Background(), "anything")
	assert.Equal(t, 0, a.Score)
}

func TestQualify_UpstreamDownDegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	client := llm.NewClient(config.LLMConfig{
		Endpoint: srv.URL,
		Model:    "test-model",
		Timeout:  time.Second,
	})
	q := NewQualifier(client, zap.NewNop())
	srv.Close() // connection refused from here on

	a := q.Qualify(context.Background(), "Hi, I'm Bob, I need a warehouse")
	assert.Equal(t, Assessment{}, a)
}
