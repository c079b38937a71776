package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRoot(t *testing.T) {
	c, rec := request(http.MethodGet, "/", "")
	require.NoError(t, Root(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend is running!")
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHealthCheck(t *testing.T) {
	c, rec := request(http.MethodGet, "/health", "")
	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestProjectCreate_MissingName(t *testing.T) {
	h := NewProjectHandler(nil)
	c, rec := request(http.MethodPost, "/projects/create", `{"owner_id":"u1"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectJoin_MissingFields(t *testing.T) {
	h := NewProjectHandler(nil)
	c, rec := request(http.MethodPost, "/projects/join", `{"code":"ABC"}`)
	require.NoError(t, h.Join(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeamAdd_MissingFields(t *testing.T) {
	h := NewTeamHandler(nil)
	c, rec := request(http.MethodPost, "/projects/team/add", `{"email":"a@x.com"}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskAdd_MissingFields(t *testing.T) {
	h := NewTaskHandler(nil)
	c, rec := request(http.MethodPost, "/tasks/add", `{"name":"Pour slab"}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleGenerate_MissingCode(t *testing.T) {
	h := NewScheduleHandler(nil, nil, nil)
	c, rec := request(http.MethodPost, "/projects/generate-schedule", `{"name":"Tower"}`)
	require.NoError(t, h.Generate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutoSchedule_MissingProjectID(t *testing.T) {
	h := NewScheduleHandler(nil, nil, nil)
	c, rec := request(http.MethodPost, "/projects/auto-schedule", `{}`)
	require.NoError(t, h.AutoSchedule(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatSend_MissingFields(t *testing.T) {
	h := NewChatHandler(nil)
	c, rec := request(http.MethodPost, "/chat/send", `{"message":""}`)
	require.NoError(t, h.Send(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadUploadCSV_MissingProjectID(t *testing.T) {
	h := NewLeadHandler(nil)
	c, rec := request(http.MethodPost, "/leads/upload-csv", "")
	require.NoError(t, h.UploadCSV(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadIngest_MissingProjectID(t *testing.T) {
	h := NewLeadHandler(nil)
	c, rec := request(http.MethodPost, "/leads/ingest", `{"name":"A"}`)
	require.NoError(t, h.Ingest(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
