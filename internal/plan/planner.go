// Planner orchestrating coverage prediction and result writing
package plan

import (
	"sync"
	"time"

	"meshplan/internal/config"
	"meshplan/internal/link"
	"meshplan/internal/propagation"
	"meshplan/internal/site"
)

// CoverageWriter is an interface to support different output writers.
type CoverageWriter interface {
	Write(site.CoverageRow) error
}

// LinkWriter handles site-to-site reachability edges.
type LinkWriter interface {
	WriteLink(link.Edge) error
}

// Optional: writers can also support batch mode
type batchWriter interface {
	WriteBatch([]site.CoverageRow) error
}

// Optional: link writers may support batch mode
type batchLinkWriter interface {
	WriteLinks([]link.Edge) error
}

// CoverageForSites maps every site to its coverage result, in input order.
// Each site is computed independently; a site with invalid parameters gets
// its error recorded without affecting the rest of the batch.
func CoverageForSites(m propagation.Model, sites []site.TransmitterSite, rx site.ReceiverConfig) []site.CoverageResult {
	results := make([]site.CoverageResult, 0, len(sites))
	for _, s := range sites {
		res := site.CoverageResult{SiteID: s.ID}
		r, err := m.PredictRangeKm(s, rx)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		res.RangeKm = r
		res.RangeMeters = r * 1000
		if horizon, herr := propagation.HorizonKm(s.AntennaHeightM, rx.AntennaHeightM); herr == nil {
			res.Limit = string(propagation.RangeLimit(r, horizon))
		}
		results = append(results, res)
	}
	return results
}

// Planner computes coverage for a configured plan and feeds the writers.
// All prediction is stateless; the only mutable piece is the receiver
// profile, which the admin server may swap at runtime.
type Planner struct {
	planID     string
	sites      []site.TransmitterSite
	model      propagation.Model
	writer     CoverageWriter
	linkWriter LinkWriter
	linksOn    bool

	mu       sync.Mutex
	receiver site.ReceiverConfig
}

// NewPlanner builds a Planner from a loaded plan config.
func NewPlanner(cfg *config.PlanConfig, writer CoverageWriter, linkWriter LinkWriter) *Planner {
	return &Planner{
		planID:     cfg.PlanID,
		sites:      cfg.Sites,
		model:      cfg.Model,
		writer:     writer,
		linkWriter: linkWriter,
		linksOn:    cfg.Links.Enabled,
		receiver:   cfg.ReceiverProfile(),
	}
}

// PlanID returns the plan identity used as the row tag.
func (p *Planner) PlanID() string { return p.planID }

// Sites returns the configured transmitter sites.
func (p *Planner) Sites() []site.TransmitterSite { return p.sites }

// Model returns the propagation model in use.
func (p *Planner) Model() propagation.Model { return p.model }

// Receiver returns the current receiver profile.
func (p *Planner) Receiver() site.ReceiverConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.receiver
}

// SetReceiver swaps the receiver profile used for subsequent computations.
func (p *Planner) SetReceiver(rx site.ReceiverConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.receiver = rx
}

// Coverage recomputes all site results with the current receiver profile.
func (p *Planner) Coverage() []site.CoverageResult {
	return CoverageForSites(p.model, p.sites, p.Receiver())
}

// CoverageWith recomputes all site results against an arbitrary receiver,
// leaving the planner's own profile untouched.
func (p *Planner) CoverageWith(rx site.ReceiverConfig) []site.CoverageResult {
	return CoverageForSites(p.model, p.sites, rx)
}

// Links recomputes the pairwise reachability matrix.
func (p *Planner) Links() []link.Edge {
	return link.Matrix(p.model, p.sites, p.Receiver())
}

// Rows converts fresh coverage results into writable rows.
func (p *Planner) Rows() []site.CoverageRow {
	now := time.Now().UTC()
	results := p.Coverage()
	rows := make([]site.CoverageRow, 0, len(results))
	for i, res := range results {
		s := p.sites[i]
		row := site.CoverageRow{
			PlanID:    p.planID,
			SiteID:    res.SiteID,
			SiteName:  s.Name,
			Lat:       s.Lat,
			Lon:       s.Lon,
			RangeKm:   res.RangeKm,
			RangeM:    res.RangeMeters,
			Limit:     res.Limit,
			Valid:     res.Err == nil,
			Timestamp: now,
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// Run computes the plan once and writes coverage rows plus, when enabled,
// the link matrix.
func (p *Planner) Run() error {
	rows := p.Rows()
	if bw, ok := p.writer.(batchWriter); ok {
		if err := bw.WriteBatch(rows); err != nil {
			return err
		}
	} else {
		for _, r := range rows {
			if err := p.writer.Write(r); err != nil {
				return err
			}
		}
	}

	if !p.linksOn || p.linkWriter == nil {
		return nil
	}
	edges := p.Links()
	if bw, ok := p.linkWriter.(batchLinkWriter); ok {
		return bw.WriteLinks(edges)
	}
	for _, e := range edges {
		if err := p.linkWriter.WriteLink(e); err != nil {
			return err
		}
	}
	return nil
}
