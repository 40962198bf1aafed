package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solsticehq/lumen/internal/classification"
	"github.com/solsticehq/lumen/internal/extraction"
	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/signals"
	"github.com/solsticehq/lumen/internal/storage"
	"github.com/solsticehq/lumen/internal/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "api-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	syn, err := synthesis.New(synthesis.Config{
		Storage:   store,
		Extractor: extraction.New(),
	})
	require.NoError(t, err)

	handler := NewHandler(
		classification.NewDefault(),
		extraction.New(),
		signals.New(),
		syn,
		store,
		"test",
	)

	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

const goalResponseText = `🎯 MỤC TIÊU: Kiếm thêm 100 triệu trong 6 tháng

📅 Timeline: 6 tháng

✨ "Tôi xứng đáng với sự thịnh vượng"
✨ "Tiền đến với tôi dễ dàng mỗi ngày"`

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, storage.ExpectedSchemaVersion, health.SchemaVersion)
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	srv, store := newTestServer(t)

	// A dead database connection turns the health check into a 503.
	require.NoError(t, store.Close())

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health HealthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "unhealthy", health.Status)
}

func TestClassifyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/classify", TextRequest{Text: goalResponseText})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var det model.DetectionResult
	decodeBody(t, resp, &det)
	assert.Equal(t, model.ResponseManifestationGoal, det.Type)
	assert.Equal(t, 0.95, det.Confidence)
}

func TestClassifyEndpointBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/classify", "application/json",
		strings.NewReader("{not json"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem Problem
	decodeBody(t, resp, &problem)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "Bad Request", problem.Title)
}

func TestExtractEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/extract", TextRequest{Text: goalResponseText})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fields model.ExtractedFields
	decodeBody(t, resp, &fields)
	assert.Equal(t, "Kiếm thêm 100 triệu trong 6 tháng", fields.Title)
	require.NotNil(t, fields.TargetAmount)
	assert.Equal(t, int64(100_000_000), *fields.TargetAmount)
	assert.Equal(t, model.Timeline{Months: 6}, fields.Timeline)
	assert.Len(t, fields.Affirmations, 2)
}

func TestSynthesizeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/synthesize", SynthesizeRequest{
		UserID: "u1",
		Tier:   model.TierTwo,
		Text:   goalResponseText,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SynthesizeResponse
	decodeBody(t, resp, &out)
	assert.True(t, out.Success)
	assert.Equal(t, model.ResponseManifestationGoal, out.Classification.Type)
	require.NotNil(t, out.Goal)
	assert.Equal(t, "u1", out.Goal.UserID)
	assert.Len(t, out.Widgets, 2)
	assert.Len(t, out.Reminders, 3)
}

func TestSynthesizeEndpointRequiresUserID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/synthesize", SynthesizeRequest{Text: goalResponseText})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSynthesizeEndpointQuota(t *testing.T) {
	srv, _ := newTestServer(t)

	// FREE allows one active goal; the second synthesis is refused before
	// writing anything.
	resp := postJSON(t, srv.URL+"/api/v1/synthesize", SynthesizeRequest{
		UserID: "u1",
		Text:   goalResponseText,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/synthesize", SynthesizeRequest{
		UserID: "u1",
		Text:   goalResponseText,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var problem Problem
	decodeBody(t, resp, &problem)
	assert.Equal(t, "Quota Exceeded", problem.Title)
	assert.Contains(t, problem.Type, "quota-exceeded")
}

func TestSuggestionsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/suggestions", SuggestionsRequest{
		Text: "ETH có thể break 4,000 trong tuần này",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SuggestionsResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, model.SuggestionPriceAlert, out.Suggestions[0].Kind)
	assert.Equal(t, "ETH", out.Suggestions[0].Symbol)
}
