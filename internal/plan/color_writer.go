// ColorStdoutWriter prints human-friendly, colorized coverage tables.
package plan

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"meshplan/internal/config"
	"meshplan/internal/link"
	"meshplan/internal/site"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// ColorStdoutWriter prints coverage rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.PlanConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.PlanConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	rx := w.cfg.ReceiverProfile()
	fmt.Fprintf(w.out, "Coverage Plan: %s\n", w.cfg.PlanID)
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "RX Antenna Height (m):\t%.1f\n", rx.AntennaHeightM)
	fmt.Fprintf(tw, "RX Gain (dBi):\t%.2f\n", rx.GainDbi)
	fmt.Fprintf(tw, "RX Sensitivity (dBm):\t%.1f\n", rx.SensitivityDbm)
	fmt.Fprintf(tw, "Fading Margin (dB):\t%.1f\n", rx.FadingMarginDb)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// Write outputs a single coverage row in colorized format.
func (w *ColorStdoutWriter) Write(row site.CoverageRow) error {
	w.once.Do(w.printOverview)

	if !row.Valid {
		fmt.Fprintf(w.out, "%ssite=%s%s %sINVALID%s %s\n",
			colorBlue, row.SiteName, colorReset, colorRed, colorReset, row.Error)
		return nil
	}

	limitColor := colorGreen
	if row.Limit == "budget" {
		limitColor = colorYellow
	}
	fmt.Fprintf(w.out, "%ssite=%s%s ", colorBlue, row.SiteName, colorReset)
	fmt.Fprintf(w.out, "%slat=%.5f lon=%.5f%s ", colorGray, row.Lat, row.Lon, colorReset)
	fmt.Fprintf(w.out, "%srange=%.2fkm%s ", colorCyan, row.RangeKm, colorReset)
	fmt.Fprintf(w.out, "%slimit=%s%s\n", limitColor, row.Limit, colorReset)
	return nil
}

// WriteBatch outputs multiple coverage rows.
func (w *ColorStdoutWriter) WriteBatch(rows []site.CoverageRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteLink prints a reachability edge to STDOUT.
func (w *ColorStdoutWriter) WriteLink(e link.Edge) error {
	w.once.Do(w.printOverview)
	if e.Error != "" {
		fmt.Fprintf(w.out, "%sLINK%s %s -> %s %sINVALID%s %s\n",
			colorCyan, colorReset, e.FromID, e.ToID, colorRed, colorReset, e.Error)
		return nil
	}
	verdict := colorGreen + "reachable" + colorReset
	if !e.Reachable {
		verdict = colorRed + "out-of-range" + colorReset
	}
	fmt.Fprintf(w.out, "%sLINK%s %s -> %s dist=%.2fkm range=%.2fkm %s\n",
		colorCyan, colorReset, e.FromID, e.ToID, e.DistanceKm, e.RangeKm, verdict)
	return nil
}

// WriteLinks prints multiple reachability edges.
func (w *ColorStdoutWriter) WriteLinks(edges []link.Edge) error {
	for _, e := range edges {
		_ = w.WriteLink(e)
	}
	return nil
}
