// Package web serves a read-only JSON view of one energy system: its
// summary, node list and derived edge list.
package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

// App holds the served system.
type App struct {
	sys *es.System
}

// NewApp wraps sys for serving.
func NewApp(sys *es.System) *App {
	return &App{sys: sys}
}

// Router wires the read-only endpoints.
func (app *App) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/system", app.SummaryHandler).Methods("GET")
	r.HandleFunc("/system/nodes", app.NodesHandler).Methods("GET")
	r.HandleFunc("/system/edges", app.EdgesHandler).Methods("GET")
	return r
}

type summary struct {
	Name        string             `json:"name"`
	Nodes       int                `json:"nodes"`
	Edges       int                `json:"edges"`
	Periods     int                `json:"periods"`
	Constraints map[string]float64 `json:"constraints"`
}

type nodeView struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Carrier string `json:"carrier,omitempty"`
	Region  string `json:"region,omitempty"`
	Sector  string `json:"sector,omitempty"`
}

type edgeView struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Carrier string `json:"carrier,omitempty"`
}

// SummaryHandler reports system-level counts and constraints.
func (app *App) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summary{
		Name:        app.sys.UID.String(),
		Nodes:       len(app.sys.Nodes()),
		Edges:       len(app.sys.Edges()),
		Periods:     app.sys.Timeframe.Len(),
		Constraints: app.sys.GlobalConstraints,
	})
}

// NodesHandler lists every component.
func (app *App) NodesHandler(w http.ResponseWriter, r *http.Request) {
	nodes := app.sys.Nodes()
	views := make([]nodeView, len(nodes))
	for i, n := range nodes {
		uid := n.UID()
		views[i] = nodeView{
			Name:    uid.String(),
			Kind:    n.Kind(),
			Carrier: uid.Carrier,
			Region:  uid.Region,
			Sector:  uid.Sector,
		}
	}
	writeJSON(w, views)
}

// EdgesHandler lists the derived flow arcs with their carriers.
func (app *App) EdgesHandler(w http.ResponseWriter, r *http.Request) {
	carriers := app.sys.EdgeCarriers()
	edges := app.sys.Edges()
	views := make([]edgeView, len(edges))
	for i, e := range edges {
		views[i] = edgeView{Source: e.Source, Target: e.Target, Carrier: carriers[e]}
	}
	writeJSON(w, views)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("web: encode response:", err)
	}
}
