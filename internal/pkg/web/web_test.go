package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es/example"
)

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	assert.NilError(t, err)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestSummaryHandler(t *testing.T) {
	app := NewApp(example.Minimal())
	rec := get(t, app, "/system")
	assert.Equal(t, rec.Code, http.StatusOK)

	var got summary
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, got.Name, "Minimal")
	assert.Equal(t, got.Nodes, 3)
	assert.Equal(t, got.Edges, 2)
	assert.Equal(t, got.Periods, 4)
}

func TestNodesHandler(t *testing.T) {
	app := NewApp(example.Minimal())
	rec := get(t, app, "/system/nodes")
	assert.Equal(t, rec.Code, http.StatusOK)

	var got []nodeView
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, len(got), 3)
	// busses lead the fixed node order
	assert.Equal(t, got[0].Name, "Powerline")
	assert.Equal(t, got[0].Kind, "bus")
}

func TestEdgesHandler(t *testing.T) {
	app := NewApp(example.Minimal())
	rec := get(t, app, "/system/edges")
	assert.Equal(t, rec.Code, http.StatusOK)

	var got []edgeView
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Source, "Supply")
	assert.Equal(t, got[0].Target, "Powerline")
	assert.Equal(t, got[0].Carrier, "electricity")
}

func TestUnknownRouteIs404(t *testing.T) {
	app := NewApp(example.Minimal())
	rec := get(t, app, "/system/unknown")
	assert.Equal(t, rec.Code, http.StatusNotFound)
}
