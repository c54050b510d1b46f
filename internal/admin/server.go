package admin

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"meshplan/internal/plan"
	"meshplan/internal/propagation"
	"meshplan/internal/site"
)

//go:embed templates/index.html templates/map.html
var content embed.FS

// Server exposes the current plan over HTTP: an overview page, a coverage
// map, and JSON endpoints the map and external tools consume.
type Server struct {
	Planner *plan.Planner
	tpl     *template.Template
	mapTpl  *template.Template
	mux     *http.ServeMux
}

// NewServer builds a Server around a planner.
func NewServer(p *plan.Planner) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	mapTpl := template.Must(template.New("map.html").ParseFS(content, "templates/map.html"))
	s := &Server{Planner: p, tpl: tpl, mapTpl: mapTpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/map", s.handleMap)
	s.mux.HandleFunc("/map-data", s.handleMapData)
	s.mux.HandleFunc("/coverage", s.handleCoverage)
	s.mux.HandleFunc("/links", s.handleLinks)
	s.mux.HandleFunc("/receiver", s.handleReceiver)
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

type indexRow struct {
	Site   site.TransmitterSite
	Result site.CoverageResult
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	results := s.Planner.Coverage()
	sites := s.Planner.Sites()
	rows := make([]indexRow, 0, len(sites))
	for i := range sites {
		rows = append(rows, indexRow{Site: sites[i], Result: results[i]})
	}
	model := s.Planner.Model()
	if model == (propagation.Model{}) {
		model = propagation.DefaultModel()
	}
	data := struct {
		PlanID   string
		Receiver site.ReceiverConfig
		Model    propagation.Model
		Rows     []indexRow
	}{
		PlanID:   s.Planner.PlanID(),
		Receiver: s.Planner.Receiver(),
		Model:    model,
		Rows:     rows,
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.mapTpl.Execute(w, nil)
}

// mapSite is used for the coverage map data response.
type mapSite struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	RangeM float64 `json:"range_m"`
	Valid  bool    `json:"valid"`
	Error  string  `json:"error,omitempty"`
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	results := s.Planner.Coverage()
	sites := s.Planner.Sites()
	out := make([]mapSite, 0, len(sites))
	for i, st := range sites {
		ms := mapSite{ID: st.ID, Name: st.Name, Lat: st.Lat, Lon: st.Lon}
		if results[i].Err != nil {
			ms.Error = results[i].Err.Error()
		} else {
			ms.Valid = true
			ms.RangeM = results[i].RangeMeters
		}
		out = append(out, ms)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleCoverage returns coverage results, optionally recomputed against
// receiver overrides given as query parameters.
func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	rx := s.Planner.Receiver()
	if err := applyOverrides(&rx, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results := s.Planner.CoverageWith(rx)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Planner.Links())
}

// handleReceiver swaps the planner's receiver profile.
func (s *Server) handleReceiver(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	rx := s.Planner.Receiver()
	if err := applyOverrides(&rx, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Planner.SetReceiver(rx)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rx)
}

// applyOverrides reads height/gain/sensitivity/margin query parameters into
// the receiver profile. Missing parameters leave the current value alone.
func applyOverrides(rx *site.ReceiverConfig, r *http.Request) error {
	fields := map[string]*float64{
		"height":      &rx.AntennaHeightM,
		"gain":        &rx.GainDbi,
		"sensitivity": &rx.SensitivityDbm,
		"margin":      &rx.FadingMarginDb,
	}
	for name, dst := range fields {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		// ParseFloat accepts "NaN" and "Inf"; neither is a usable profile value.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %q", name, raw)
		}
		*dst = v
	}
	return nil
}
