package plan

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"meshplan/internal/link"
	"meshplan/internal/site"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// rowsMsg replaces the displayed coverage rows.
type rowsMsg struct{ rows []site.CoverageRow }

// linksMsg replaces the displayed link summary.
type linksMsg struct{ edges []link.Edge }

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	tuiStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiTableStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// TUIWriter renders coverage results in an interactive bubbletea table. The
// receiver profile can be edited in place; every edit recomputes the plan.
type TUIWriter struct {
	program teaProgram
	done    chan struct{}
}

// NewTUIWriter starts a bubbletea program bound to the planner and returns
// the writer feeding it.
func NewTUIWriter(p *Planner) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	m := newTUIModel(p)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	w.program = prog
	go func() {
		_, _ = prog.Run()
		close(w.done)
	}()
	return w
}

// Write sends a single coverage row to the TUI.
func (w *TUIWriter) Write(row site.CoverageRow) error {
	return w.WriteBatch([]site.CoverageRow{row})
}

// WriteBatch replaces the displayed coverage rows.
func (w *TUIWriter) WriteBatch(rows []site.CoverageRow) error {
	w.program.Send(rowsMsg{rows: rows})
	return nil
}

// WriteLink sends a single link edge to the TUI.
func (w *TUIWriter) WriteLink(e link.Edge) error {
	return w.WriteLinks([]link.Edge{e})
}

// WriteLinks replaces the displayed link summary.
func (w *TUIWriter) WriteLinks(edges []link.Edge) error {
	w.program.Send(linksMsg{edges: edges})
	return nil
}

// Wait blocks until the user quits the TUI.
func (w *TUIWriter) Wait() {
	<-w.done
}

type tuiModel struct {
	planner   *Planner
	table     table.Model
	input     textinput.Model
	editing   bool
	width     int
	linkLines []string
	status    string
}

func newTUIModel(p *Planner) tuiModel {
	columns := []table.Column{
		{Title: "Site", Width: 20},
		{Title: "Lat", Width: 10},
		{Title: "Lon", Width: 10},
		{Title: "Range (km)", Width: 12},
		{Title: "Limit", Width: 18},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ti := textinput.New()
	ti.Placeholder = "sensitivity=-120"
	ti.CharLimit = 40

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	m := tuiModel{planner: p, table: t, input: ti, width: width}
	m.reload(p.Rows())
	return m
}

func (m *tuiModel) reload(rows []site.CoverageRow) {
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		limit := r.Limit
		if !r.Valid {
			limit = "invalid: " + r.Error
		}
		trows = append(trows, table.Row{
			r.SiteName,
			fmt.Sprintf("%.4f", r.Lat),
			fmt.Sprintf("%.4f", r.Lon),
			fmt.Sprintf("%.2f", r.RangeKm),
			limit,
		})
	}
	m.table.SetRows(trows)
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case rowsMsg:
		m.reload(msg.rows)
		return m, nil

	case linksMsg:
		m.linkLines = summarizeLinks(msg.edges)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.Type {
			case tea.KeyEnter:
				m.applyEdit(m.input.Value())
				m.input.Reset()
				m.input.Blur()
				m.editing = false
				return m, nil
			case tea.KeyEsc:
				m.input.Reset()
				m.input.Blur()
				m.editing = false
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "e":
			m.editing = true
			m.input.Focus()
			return m, textinput.Blink
		case "r":
			m.reload(m.planner.Rows())
			m.linkLines = summarizeLinks(m.planner.Links())
			m.status = "recomputed"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyEdit parses "field=value" and updates the receiver profile. Fields:
// height, gain, sensitivity, margin.
func (m *tuiModel) applyEdit(expr string) {
	parts := strings.SplitN(strings.TrimSpace(expr), "=", 2)
	if len(parts) != 2 {
		m.status = tuiErrStyle.Render("expected field=value")
		return
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		m.status = tuiErrStyle.Render("not a number: " + parts[1])
		return
	}

	rx := m.planner.Receiver()
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "height":
		rx.AntennaHeightM = val
	case "gain":
		rx.GainDbi = val
	case "sensitivity":
		rx.SensitivityDbm = val
	case "margin":
		rx.FadingMarginDb = val
	default:
		m.status = tuiErrStyle.Render("unknown field: " + parts[0])
		return
	}
	m.planner.SetReceiver(rx)
	m.reload(m.planner.Rows())
	m.linkLines = summarizeLinks(m.planner.Links())
	m.status = fmt.Sprintf("receiver %s set to %g", parts[0], val)
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("meshplan coverage: "+m.planner.PlanID()) + "\n\n")
	b.WriteString(tuiTableStyle.Render(m.table.View()) + "\n")

	rx := m.planner.Receiver()
	b.WriteString(tuiStatusStyle.Render(fmt.Sprintf(
		"receiver: height=%.1fm gain=%.2fdBi sensitivity=%.1fdBm margin=%.1fdB",
		rx.AntennaHeightM, rx.GainDbi, rx.SensitivityDbm, rx.FadingMarginDb)) + "\n")

	for _, line := range m.linkLines {
		b.WriteString(line + "\n")
	}

	if m.editing {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	help := "e: edit receiver (height/gain/sensitivity/margin) | r: recompute | q: quit"
	b.WriteString("\n" + tuiStatusStyle.Render(wordwrap.String(help, m.width)))
	return b.String()
}

// summarizeLinks condenses the edge list into per-site degree lines.
func summarizeLinks(edges []link.Edge) []string {
	if len(edges) == 0 {
		return nil
	}
	degrees := link.Degrees(edges)
	ids := make([]string, 0, len(degrees))
	for id := range degrees {
		ids = append(ids, id)
	}
	// stable output for rendering and tests
	sort.Strings(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		d := degrees[id]
		line := fmt.Sprintf("link %s: %d reachable neighbor(s)", id, d)
		if d == 0 {
			line = tuiErrStyle.Render(line + " (isolated)")
		}
		lines = append(lines, line)
	}
	return lines
}
