package plan

import (
	"context"
	"log"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"meshplan/internal/link"
	"meshplan/internal/site"
)

// LinkTableName is the GreptimeDB table used for reachability edges.
const LinkTableName = "mesh_links"

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeWriter writes coverage rows and link edges to GreptimeDB via the
// ingester client.
type GreptimeWriter struct {
	client        greptimeClient
	coverageTable string
	linkTable     string
}

// NewGreptimeWriter connects to a GreptimeDB endpoint. Tables are created
// automatically on first write.
func NewGreptimeWriter(host, database string) (*GreptimeWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeWriter{
		client:        client,
		coverageTable: site.CoverageTableName,
		linkTable:     LinkTableName,
	}, nil
}

// Write inserts a single coverage row.
func (w *GreptimeWriter) Write(row site.CoverageRow) error {
	return w.WriteBatch([]site.CoverageRow{row})
}

// WriteBatch inserts multiple coverage rows.
func (w *GreptimeWriter) WriteBatch(rows []site.CoverageRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.coverageTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("plan_id", types.STRING)
	tbl.AddTagColumn("site_id", types.STRING)
	tbl.AddFieldColumn("site_name", types.STRING)
	tbl.AddFieldColumn("lat", types.FLOAT)
	tbl.AddFieldColumn("lon", types.FLOAT)
	tbl.AddFieldColumn("range_km", types.FLOAT)
	tbl.AddFieldColumn("range_m", types.FLOAT)
	tbl.AddFieldColumn("limit", types.STRING)
	tbl.AddFieldColumn("valid", types.BOOLEAN)
	tbl.AddFieldColumn("error", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.PlanID, r.SiteID, r.SiteName, r.Lat, r.Lon,
			r.RangeKm, r.RangeM, r.Limit, r.Valid, r.Error, r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeWriter] coverage write failed: %v", err)
		return err
	}
	log.Printf("[GreptimeWriter] wrote %d coverage rows", len(rows))
	return nil
}

// WriteLink inserts a single reachability edge.
func (w *GreptimeWriter) WriteLink(e link.Edge) error {
	return w.WriteLinks([]link.Edge{e})
}

// WriteLinks inserts multiple reachability edges.
func (w *GreptimeWriter) WriteLinks(edges []link.Edge) error {
	if len(edges) == 0 {
		return nil
	}

	tbl, err := table.New(w.linkTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("from_id", types.STRING)
	tbl.AddTagColumn("to_id", types.STRING)
	tbl.AddFieldColumn("distance_km", types.FLOAT)
	tbl.AddFieldColumn("range_km", types.FLOAT)
	tbl.AddFieldColumn("reachable", types.BOOLEAN)
	tbl.AddFieldColumn("error", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, e := range edges {
		if err := tbl.AddRow(e.FromID, e.ToID, e.DistanceKm, e.RangeKm,
			e.Reachable, e.Error, e.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeWriter] link write failed: %v", err)
		return err
	}
	return nil
}
