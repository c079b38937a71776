package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildsite-service/internal/llm"
	"buildsite-service/internal/model"
	"buildsite-service/pkg/config"
)

func llmServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func testClient(endpoint string) llm.Client {
	return llm.NewClient(config.LLMConfig{
		Endpoint: endpoint,
		Model:    "test-model",
		Timeout:  2 * time.Second,
	})
}

func testProject() *model.Project {
	return &model.Project{
		Name:        "Cedar Villa",
		Code:        "CEDAR1",
		ProjectType: "Residential",
		SubType:     "Villa",
		FloorCount:  2,
		TowerCount:  1,
	}
}

func TestGenerate_ParsesValidSchedule(t *testing.T) {
	content := `{"stages":[
		{"stage_name":"Foundation","start_date":"2026-03-01","tasks":[
			{"task_name":"Excavation","assigned_role":"Earthworks","subtasks":[
				{"task_name":"Dig footings","assigned_role":"Earthworks"}
			]}
		]},
		{"stage_name":"Structure","tasks":[]}
	]}`
	srv := llmServer(t, content)
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	tree, err := gen.Generate(context.Background(), testProject())
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, "Foundation", tree[0].Name)
	require.Len(t, tree[0].Tasks, 1)
	require.Len(t, tree[0].Tasks[0].Subtasks, 1)
	assert.Equal(t, "Dig footings", tree[0].Tasks[0].Subtasks[0].Name)
}

func TestGenerate_FencedOutputAccepted(t *testing.T) {
	content := "Here is your schedule:\n```json\n" +
		`{"stages":[{"stage_name":"General Construction","tasks":[{"task_name":"Build","assigned_role":"GC"}]}]}` +
		"\n```"
	srv := llmServer(t, content)
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	tree, err := gen.Generate(context.Background(), testProject())
	require.NoError(t, err)
	require.Len(t, tree, 1)
}

func TestGenerate_EmptyStagesRejected(t *testing.T) {
	srv := llmServer(t, `{"stages":[]}`)
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_EmptyStageNameRejected(t *testing.T) {
	srv := llmServer(t, `{"stages":[{"stage_name":"  ","tasks":[]}]}`)
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_EmptyTaskNameRejected(t *testing.T) {
	content := `{"stages":[{"stage_name":"Foundation","tasks":[
		{"task_name":"Excavation","assigned_role":"GC","subtasks":[
			{"task_name":"","assigned_role":"GC"}
		]}
	]}]}`
	srv := llmServer(t, content)
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_NonJSONOutputRejected(t *testing.T) {
	srv := llmServer(t, "I am unable to produce a schedule for this project.")
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_UpstreamFailureWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_PromptEmbedsTemplateAndAttributes(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[len(req.Messages)-1].Content

		body := map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant",
					"content": `{"stages":[{"stage_name":"Foundation","tasks":[]}]}`}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), testProject())
	require.NoError(t, err)

	// Villa template stages and project attributes travel in the prompt.
	assert.Contains(t, gotPrompt, "Cedar Villa")
	assert.Contains(t, gotPrompt, "Residential / Villa")
	assert.Contains(t, gotPrompt, "Pre-Construction")
	assert.Contains(t, gotPrompt, "Final Handover")
	assert.NotContains(t, gotPrompt, "High-level phasing")
}

func TestGenerate_PromptFallsBackToPhaseStructure(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[len(req.Messages)-1].Content

		body := map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant",
					"content": `{"stages":[{"stage_name":"Earthworks","tasks":[]}]}`}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	gen := NewGenerator(testClient(srv.URL), zap.NewNop())
	_, err := gen.Generate(context.Background(), &model.Project{
		Name:        "North Plant",
		Code:        "PLANT1",
		ProjectType: "Industrial",
	})
	require.NoError(t, err)

	// No sub-type: the generic backbone is supplemented with the broad-type
	// phase list.
	assert.Contains(t, gotPrompt, "General Construction")
	assert.Contains(t, gotPrompt, "High-level phasing")
	assert.Contains(t, gotPrompt, "Structural Steel")
	assert.Contains(t, gotPrompt, "Process Equipment")
}
