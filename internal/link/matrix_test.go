package link

import (
	"testing"

	"meshplan/internal/propagation"
	"meshplan/internal/site"
)

func testSites() []site.TransmitterSite {
	base := site.TransmitterSite{
		AntennaHeightM: 10,
		TxPowerDbm:     30,
		TxGainDbi:      2.15,
		FrequencyMHz:   906.875,
	}
	a, b, c := base, base, base
	a.ID, a.Lat, a.Lon = "a", 48.20, 16.37
	b.ID, b.Lat, b.Lon = "b", 48.30, 16.37 // ~11 km north of a
	c.ID, c.Lat, c.Lon = "c", 53.20, 16.37 // far out of range
	return []site.TransmitterSite{a, b, c}
}

func edgeBetween(t *testing.T, edges []Edge, from, to string) Edge {
	t.Helper()
	for _, e := range edges {
		if e.FromID == from && e.ToID == to {
			return e
		}
	}
	t.Fatalf("edge %s->%s not found", from, to)
	return Edge{}
}

func TestMatrix_Reachability(t *testing.T) {
	edges := Matrix(propagation.DefaultModel(), testSites(), site.DefaultReceiver())
	if len(edges) != 6 {
		t.Fatalf("expected 6 directed edges, got %d", len(edges))
	}

	ab := edgeBetween(t, edges, "a", "b")
	if !ab.Reachable {
		t.Errorf("a->b should be reachable at %f km with %f km range", ab.DistanceKm, ab.RangeKm)
	}
	if ab.DistanceKm < 10 || ab.DistanceKm > 13 {
		t.Errorf("a->b distance = %f km, expected about 11", ab.DistanceKm)
	}

	ac := edgeBetween(t, edges, "a", "c")
	if ac.Reachable {
		t.Errorf("a->c should be out of range at %f km", ac.DistanceKm)
	}
}

func TestMatrix_InvalidSiteDoesNotAbortBatch(t *testing.T) {
	sites := testSites()
	sites[2].FrequencyMHz = 0

	edges := Matrix(propagation.DefaultModel(), sites, site.DefaultReceiver())
	if len(edges) != 6 {
		t.Fatalf("expected 6 edges despite the invalid site, got %d", len(edges))
	}
	ca := edgeBetween(t, edges, "c", "a")
	if ca.Error == "" {
		t.Errorf("expected error recorded on c->a")
	}
	ab := edgeBetween(t, edges, "a", "b")
	if ab.Error != "" || !ab.Reachable {
		t.Errorf("a->b should be unaffected: %+v", ab)
	}
}

func TestDegreesAndIsolated(t *testing.T) {
	edges := Matrix(propagation.DefaultModel(), testSites(), site.DefaultReceiver())
	degrees := Degrees(edges)
	if degrees["a"] != 1 || degrees["b"] != 1 {
		t.Errorf("a and b should each reach one neighbor: %v", degrees)
	}
	isolated := Isolated(edges)
	if len(isolated) != 1 || isolated[0] != "c" {
		t.Errorf("expected only c isolated, got %v", isolated)
	}
}

func TestMatrix_ReceiverHeightComesFromDestination(t *testing.T) {
	sites := testSites()[:2]
	sites[1].AntennaHeightM = 0
	sites[0].AntennaHeightM = 0

	edges := Matrix(propagation.DefaultModel(), sites, site.DefaultReceiver())
	ab := edgeBetween(t, edges, "a", "b")
	if ab.RangeKm != 0 || ab.Reachable {
		t.Errorf("two ground-level masts should have no horizon: %+v", ab)
	}
}
