package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	editrepo "github.com/jpo/jpo/backend/item-service/internal/edit/repository"
	editservice "github.com/jpo/jpo/backend/item-service/internal/edit/service"
	"github.com/jpo/jpo/backend/item-service/internal/item"
	itemrepo "github.com/jpo/jpo/backend/item-service/internal/item/repository"
	itemservice "github.com/jpo/jpo/backend/item-service/internal/item/service"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/jpo/jpo/backend/item-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	router *gin.Engine
	edits  *editrepo.MemoryRepo
	ready  bool
}

func newFixture(t *testing.T, items int) *fixture {
	t.Helper()
	src := itemrepo.NewMemoryRepo()
	for i := 0; i < items; i++ {
		src.Add(models.NewSourceItem(fmt.Sprintf("tn-%d", i), fmt.Sprintf("en-%d", i)))
	}
	f := &fixture{edits: editrepo.NewMemoryRepo(), ready: true}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	f.router = NewRouter(Options{
		Items:    itemservice.New(cursor.NewMemoryAllocator(0), src),
		Edits:    editservice.New(f.edits, nil),
		Ready:    func() bool { return f.ready },
		Checks:   map[string]func() bool{"mongodb": func() bool { return f.ready }},
		Gatherer: reg,
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_PagesThroughItems(t *testing.T) {
	f := newFixture(t, 25)

	w := f.do(http.MethodGet, "/item", "")
	require.Equal(t, http.StatusOK, w.Code)
	var first []item.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Len(t, first, 20)
	assert.Equal(t, int64(0), first[0].ID)
	assert.JSONEq(t, `"tn-0"`, string(first[0].Item.TN))

	w = f.do(http.MethodGet, "/item", "")
	require.Equal(t, http.StatusOK, w.Code)
	var second []item.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Len(t, second, 5)
	assert.Equal(t, int64(20), second[0].ID)
	assert.JSONEq(t, `"en-24"`, string(second[4].Item.EN))

	w = f.do(http.MethodGet, "/item", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Items not found"}`, w.Body.String())

	w = f.do(http.MethodGet, "/cursor", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":60,"page_size":20}`, w.Body.String())
}

func TestRouter_WriteItem(t *testing.T) {
	f := newFixture(t, 0)

	w := f.do(http.MethodPost, "/write_item", `{"orig_id":"x1","tn":"a","en":"b","status":"ok"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.edits.List(), 1)
	assert.Equal(t, time.Now().UTC().Format(editservice.DateLayout), f.edits.List()[0].CreatedAt)

	w = f.do(http.MethodPost, "/write_item", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_NotReady(t *testing.T) {
	f := newFixture(t, 5)
	f.ready = false

	w := f.do(http.MethodGet, "/item", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = f.do(http.MethodPost, "/write_item", `{"tn":"a"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, f.edits.List())

	w = f.do(http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Status string          `json:"status"`
		Deps   map[string]bool `json:"deps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.False(t, body.Deps["mongodb"])

	// liveness does not depend on the database
	w = f.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())

	f.ready = true
	w = f.do(http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AmbientEndpoints(t *testing.T) {
	f := newFixture(t, 1)
	f.do(http.MethodGet, "/item", "")

	w := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jpo_pages_total")

	w = f.do(http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodOptions, "/write_item", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
