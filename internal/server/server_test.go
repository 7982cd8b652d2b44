package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/cleanslate/internal/clock"
	"github.com/danieljhkim/cleanslate/internal/config"
	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/dataset/datasettest"
	"github.com/danieljhkim/cleanslate/internal/engine"
	"github.com/danieljhkim/cleanslate/internal/fsops"
	"github.com/danieljhkim/cleanslate/internal/hash"
	"github.com/danieljhkim/cleanslate/internal/logging"
	"github.com/danieljhkim/cleanslate/internal/state"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	fs := fsops.NewRealFS()
	return engine.New(
		dataset.NewFileStore(fs, hash.NewSHA256Hasher()),
		state.NewFileStateStore(fs, filepath.Join(t.TempDir(), "sessions")),
		clock.NewFakeClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
		config.DefaultSettings(),
	)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(newTestEngine(t), &logging.Nop).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func encode(t *testing.T, fps ...*dataset.Footprint) string {
	t.Helper()
	data, err := dataset.Encode(datasettest.New(t, fps...))
	require.NoError(t, err)
	return string(data)
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/geo+json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp, raw
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestMerge_AppliesBatch(t *testing.T) {
	ts := newTestServer(t)
	body := encode(t,
		datasettest.Building(-1, 0, 0, 2, 2),
		datasettest.WithTags(datasettest.Building(10, 0.05, 0, 2.05, 2), map[string]string{"name": "Depot"}),
		datasettest.Building(11, 9, 9, 10, 10),
	)

	resp, raw := post(t, ts.URL+"/v1/merge", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var got MergeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.Applied)
	assert.Equal(t, 1, got.Summary.NewCount)
	assert.Equal(t, 1, got.Summary.MergedCount)
	assert.Equal(t, "Merged 1 buildings\n0 new buildings, 0 conflicts", got.Message)
	require.Len(t, got.Operations, 2)
	assert.Equal(t, int64(10), got.Operations[0].TargetID)
	assert.Equal(t, int64(-1), got.Operations[1].TargetID)

	edited, err := dataset.Decode(got.Dataset)
	require.NoError(t, err)
	_, ok := edited.Get(-1)
	assert.False(t, ok)
	depot, ok := edited.Get(10)
	require.True(t, ok)
	assert.True(t, depot.Modified)
	assert.Equal(t, "Depot", depot.Tags["name"])
	assert.Equal(t, datasettest.Square(0, 0, 2, 2), depot.Ring)
}

func TestMerge_DryRunLeavesDataset(t *testing.T) {
	ts := newTestServer(t)
	body := encode(t,
		datasettest.Building(-1, 0, 0, 2, 2),
		datasettest.Building(10, 0.05, 0, 2.05, 2),
	)

	resp, raw := post(t, ts.URL+"/v1/merge?dry_run=true", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var got MergeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.False(t, got.Applied)
	assert.Len(t, got.Operations, 2)

	edited, err := dataset.Decode(got.Dataset)
	require.NoError(t, err)
	assert.Equal(t, 2, edited.Len())
	_, ok := edited.Get(-1)
	assert.True(t, ok)
}

func TestMerge_ReportsConflicts(t *testing.T) {
	ts := newTestServer(t)
	body := encode(t,
		datasettest.Building(-1, 0, 0, 2, 2),
		datasettest.Building(-2, 0.1, 0, 2.1, 2),
		datasettest.Building(10, 0.05, 0, 2.05, 2),
	)

	resp, raw := post(t, ts.URL+"/v1/merge", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var got MergeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 1, got.Summary.MergedCount)
	assert.Equal(t, 1, got.Summary.ConflictCount)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, int64(-2), got.Conflicts[0].NewID)
	assert.Equal(t, int64(-1), got.Conflicts[0].ClaimedBy)
}

func TestMerge_NothingToMerge(t *testing.T) {
	ts := newTestServer(t)
	body := encode(t, datasettest.Building(10, 0, 0, 1, 1))

	resp, raw := post(t, ts.URL+"/v1/merge", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var got MergeResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.False(t, got.Applied)
	assert.Empty(t, got.Operations)
	assert.Equal(t, "No new buildings found to merge", got.Message)
}

func TestMerge_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		url  string
		body string
	}{
		{name: "empty body", url: "/v1/merge", body: "  "},
		{name: "invalid json", url: "/v1/merge", body: "{not json"},
		{name: "invalid dry_run", url: "/v1/merge?dry_run=maybe", body: `{"type":"FeatureCollection","features":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := post(t, ts.URL+tt.url, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got errorResponse
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestMerge_BodyTooLarge(t *testing.T) {
	srv := New(newTestEngine(t), &logging.Nop)
	srv.maxBody = 16
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	resp, raw := post(t, ts.URL+"/v1/merge", encode(t, datasettest.Building(10, 0, 0, 2, 2)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	var got errorResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "request body too large", got.Error)
}

func TestMerge_BodyReadError(t *testing.T) {
	handler := New(newTestEngine(t), &logging.Nop).Routes()

	req := httptest.NewRequest(http.MethodPost, "/v1/merge", iotest.ErrReader(errors.New("connection reset")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "failed to read request body", got.Error)
}
