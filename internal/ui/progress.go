package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"calc/internal/driver"
)

// maxProgressRows caps how many in-flight or failed files are listed.
const maxProgressRows = 10

var (
	progressTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyles  = map[driver.FileStatus]lipgloss.Style{
		driver.FileQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.FileParsing: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.FileDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.FileFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// batchProgress shows a spinner, the files being parsed or already failed,
// per-status counters and a progress bar.
type batchProgress struct {
	title  string
	events <-chan driver.FileEvent
	spin   spinner.Model
	bar    progress.Model

	paths  []string
	status map[string]driver.FileStatus
	counts map[driver.FileStatus]int
	width  int
	closed bool
}

type eventMsg driver.FileEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model for a batch of files. It quits
// once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.FileEvent) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = statusStyles[driver.FileParsing]

	m := &batchProgress{
		title:  title,
		events: events,
		spin:   spin,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		paths:  files,
		status: make(map[string]driver.FileStatus, len(files)),
		counts: map[driver.FileStatus]int{driver.FileQueued: len(files)},
		width:  80,
	}
	for _, f := range files {
		m.status[f] = driver.FileQueued
	}
	return m
}

func (m *batchProgress) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *batchProgress) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *batchProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.record(driver.FileEvent(msg)), m.next())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.closed {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// record moves a file to its new status and updates the bar.
func (m *batchProgress) record(ev driver.FileEvent) tea.Cmd {
	prev, known := m.status[ev.Path]
	if !known || prev == ev.Status {
		return nil
	}
	m.status[ev.Path] = ev.Status
	m.counts[prev]--
	m.counts[ev.Status]++
	return m.bar.SetPercent(m.fraction())
}

func (m *batchProgress) fraction() float64 {
	if len(m.paths) == 0 {
		return 1
	}
	return float64(m.counts[driver.FileDone]+m.counts[driver.FileFailed]) / float64(len(m.paths))
}

func (m *batchProgress) View() string {
	if len(m.paths) == 0 {
		return ""
	}
	var b strings.Builder

	head := m.spin.View() + " " + m.title
	if m.closed {
		head = "done: " + m.title
	}
	b.WriteString(progressTitle.Render(head) + "\n\n")

	nameWidth := max(m.width-16, 20)
	shown, hidden := 0, 0
	for _, p := range m.paths {
		st := m.status[p]
		if st != driver.FileParsing && st != driver.FileFailed {
			continue
		}
		if shown == maxProgressRows {
			hidden++
			continue
		}
		shown++
		fmt.Fprintf(&b, "  %s %s\n", statusStyles[st].Render(fmt.Sprintf("%-8s", st)), truncate(p, nameWidth))
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", hidden)
	}

	parts := make([]string, 0, 4)
	for _, st := range []driver.FileStatus{driver.FileDone, driver.FileFailed, driver.FileParsing, driver.FileQueued} {
		if n := m.counts[st]; n > 0 {
			parts = append(parts, statusStyles[st].Render(fmt.Sprintf("%s %d", st, n)))
		}
	}
	fmt.Fprintf(&b, "\n  %s\n\n", strings.Join(parts, "  "))

	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
