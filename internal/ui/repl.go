package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"calc/internal/fix"
	"calc/internal/highlight"
)

// ReplOptions configures the interactive session.
type ReplOptions struct {
	Color      bool // colored diagnostics
	HistoryMax int  // 0 - 100
	ShowTree   bool
}

type replEntry struct {
	analysis Analysis
}

type replModel struct {
	ctx     context.Context
	opts    ReplOptions
	input   textinput.Model
	painter highlight.Painter

	live    Analysis // анализ текущего буфера
	history []replEntry
	recall  int // позиция при листании истории; len(history) - новый ввод
	status  string
	width   int
	err     error
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// NewReplModel returns a Bubble Tea model that re-parses the input line on
// every keystroke and shows the highlighted text, canonical form, tree and
// diagnostics.
func NewReplModel(ctx context.Context, opts ReplOptions) tea.Model {
	if opts.HistoryMax <= 0 {
		opts.HistoryMax = 100
	}
	in := textinput.New()
	in.Prompt = "calc> "
	in.PromptStyle = promptStyle
	in.Placeholder = "1 + 2 * (3 - 4)"
	in.Focus()

	painter := highlight.Painter(highlight.Plain{})
	if opts.Color {
		painter = highlight.DefaultStyleTheme()
	}
	return &replModel{
		ctx:     ctx,
		opts:    opts,
		input:   in,
		painter: painter,
		width:   80,
	}
}

// RunRepl runs the REPL on the terminal until the user quits.
func RunRepl(ctx context.Context, opts ReplOptions) error {
	_, err := tea.NewProgram(NewReplModel(ctx, opts), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.commit()
			return m, nil
		case tea.KeyUp:
			m.recallHistory(-1)
			return m, nil
		case tea.KeyDown:
			m.recallHistory(1)
			return m, nil
		case tea.KeyCtrlF:
			m.applyFixes()
			return m, nil
		case tea.KeyCtrlT:
			m.opts.ShowTree = !m.opts.ShowTree
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.status = ""
		m.reanalyze()
	}
	return m, cmd
}

func (m *replModel) reanalyze() {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.live = Analysis{}
		return
	}
	m.live, m.err = Analyze(m.ctx, text, m.painter, m.opts.Color)
}

func (m *replModel) commit() {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return
	}
	m.reanalyze()
	m.history = append(m.history, replEntry{analysis: m.live})
	if over := len(m.history) - m.opts.HistoryMax; over > 0 {
		m.history = m.history[over:]
	}
	m.recall = len(m.history)
	m.input.SetValue("")
	m.live = Analysis{}
	m.status = ""
}

func (m *replModel) recallHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.recall = min(max(m.recall+delta, 0), len(m.history))
	if m.recall == len(m.history) {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.history[m.recall].analysis.Input)
	}
	m.input.CursorEnd()
	m.reanalyze()
}

func (m *replModel) applyFixes() {
	text := m.input.Value()
	fixed, result, err := ApplyFixes(m.ctx, text)
	switch {
	case errors.Is(err, fix.ErrNoFixes):
		m.status = "no fixes to apply"
		return
	case err != nil:
		m.status = "fix failed: " + err.Error()
		return
	}
	m.input.SetValue(fixed)
	m.input.CursorEnd()
	m.status = fmt.Sprintf("applied %d fix(es)", len(result.Applied))
	m.reanalyze()
}

func (m *replModel) View() string {
	var b strings.Builder
	for _, e := range m.history {
		b.WriteString(promptStyle.Render("› "))
		b.WriteString(e.analysis.Highlighted)
		b.WriteString("\n")
		writeAnalysis(&b, e.analysis, m.opts.ShowTree, m.width)
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.live.Input != "" {
		b.WriteString(labelStyle.Render("  ") + m.live.Highlighted + "\n")
		writeAnalysis(&b, m.live, m.opts.ShowTree, m.width)
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("enter: record  ↑/↓: history  ctrl+f: apply fixes  ctrl+t: tree  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func writeAnalysis(b *strings.Builder, a Analysis, showTree bool, width int) {
	if a.OK {
		b.WriteString(okStyle.Render("  ok ") + truncate(a.Canonical, width-5) + "\n")
	} else if a.Canonical != "" {
		b.WriteString(labelStyle.Render("  ~  ") + truncate(a.Canonical, width-5) + "\n")
	}
	if showTree && a.Tree != "" {
		for _, line := range strings.Split(a.Tree, "\n") {
			b.WriteString("    " + runewidth.Truncate(line, max(width-4, 1), "") + "\n")
		}
	}
	if a.Diagnostics != "" {
		summary := fmt.Sprintf("  %d error(s)", a.Errors)
		if a.Fixable > 0 {
			summary += fmt.Sprintf(", %d fixable (ctrl+f)", a.Fixable)
		}
		b.WriteString(errStyle.Render(summary) + "\n")
		for _, line := range strings.Split(a.Diagnostics, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
}
