// Package ui draws the interactive progress view of multi-file runs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stylekit/internal/driver"
)

// stageInfo is how a working stage is shown and how far along it counts.
type stageInfo struct {
	label  string
	weight float64
}

var stages = map[driver.Stage]stageInfo{
	driver.StageLoad:     {"loading", 0.05},
	driver.StageParse:    {"parsing", 0.2},
	driver.StageRework:   {"prefixing", 0.5},
	driver.StageValidate: {"validating", 0.7},
	driver.StageWrite:    {"writing", 0.9},
}

var (
	styleWorking = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyles = map[string]lipgloss.Style{
		"done":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// fileRow is one line of the view.
type fileRow struct {
	path   string
	status driver.Status
	stage  driver.Stage
	cached bool
}

func (r fileRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

func (r fileRow) label() string {
	switch r.status {
	case driver.StatusDone:
		if r.cached {
			return "cached"
		}
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return stages[r.stage].label
	}
	return "queued"
}

func (r fileRow) style() lipgloss.Style {
	if st, ok := statusStyles[r.label()]; ok {
		return st
	}
	if r.status == driver.StatusWorking {
		return styleWorking
	}
	return styleIdle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   string // stage of the run as a whole
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows per-file progress
// until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleWorking)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(header) + "\n\n")
	nameWidth := max(m.width-16, 20)
	for _, row := range m.rows {
		status := row.style().Render(fmt.Sprintf("%12s", row.label()))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(row.path, nameWidth))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if info, ok := stages[ev.Stage]; ok && ev.Status == driver.StatusWorking {
			m.phase = info.label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.status = ev.Status
	row.stage = ev.Stage
	row.cached = row.cached || ev.Cached
	return m.bar.SetPercent(m.percent())
}

// percent is the mean completion over all rows.
func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		switch {
		case row.finished():
			sum++
		case row.status == driver.StatusWorking:
			sum += stages[row.stage].weight
		}
	}
	return sum / float64(len(m.rows))
}

// truncate shortens value to width display cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
