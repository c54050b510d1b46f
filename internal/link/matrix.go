// Pairwise reachability analysis between planned mesh sites
package link

import (
	"math"
	"time"

	"meshplan/internal/propagation"
	"meshplan/internal/site"
)

// Edge describes one directed site-to-site link prediction. A link a->b uses
// a's transmitter against a receiver profile at b's mast.
type Edge struct {
	FromID     string    `json:"from_id"`
	ToID       string    `json:"to_id"`
	DistanceKm float64   `json:"distance_km"`
	RangeKm    float64   `json:"range_km"`
	Reachable  bool      `json:"reachable"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"ts"`
}

// Matrix predicts every ordered site pair. The receiver profile supplies
// sensitivity and fading margin; antenna height and gain come from the
// destination site so each end is judged at its own mast. A pair with invalid
// parameters is recorded with its error and never aborts the rest.
func Matrix(m propagation.Model, sites []site.TransmitterSite, rx site.ReceiverConfig) []Edge {
	now := time.Now().UTC()
	edges := make([]Edge, 0, len(sites)*(len(sites)-1))
	for _, from := range sites {
		for _, to := range sites {
			if from.ID == to.ID {
				continue
			}
			e := Edge{FromID: from.ID, ToID: to.ID, Timestamp: now}
			e.DistanceKm = distanceMeters(from.Lat, from.Lon, to.Lat, to.Lon) / 1000

			profile := rx
			profile.AntennaHeightM = to.AntennaHeightM
			profile.GainDbi = to.TxGainDbi

			r, err := m.PredictRangeKm(from, profile)
			if err != nil {
				e.Error = err.Error()
				edges = append(edges, e)
				continue
			}
			e.RangeKm = r
			e.Reachable = e.DistanceKm <= r
			edges = append(edges, e)
		}
	}
	return edges
}

// Degrees counts reachable outgoing neighbors per site ID. Sites with a zero
// degree are isolated and worth flagging in reports.
func Degrees(edges []Edge) map[string]int {
	degrees := make(map[string]int)
	for _, e := range edges {
		if _, ok := degrees[e.FromID]; !ok {
			degrees[e.FromID] = 0
		}
		if e.Reachable {
			degrees[e.FromID]++
		}
	}
	return degrees
}

// Isolated returns the IDs of sites that cannot reach any neighbor.
func Isolated(edges []Edge) []string {
	degrees := Degrees(edges)
	var isolated []string
	for id, d := range degrees {
		if d == 0 {
			isolated = append(isolated, id)
		}
	}
	return isolated
}

// distanceMeters calculates the haversine distance between two lat/lon points.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
