package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"calc/internal/driver"
)

func TestBatchProgressCounts(t *testing.T) {
	files := []string{"a.calc", "b.calc", "c.calc"}
	events := make(chan driver.FileEvent)
	m := NewProgressModel("checking", files, events).(*batchProgress)

	steps := []driver.FileEvent{
		{Path: "a.calc", Status: driver.FileParsing},
		{Path: "a.calc", Status: driver.FileDone},
		{Path: "b.calc", Status: driver.FileParsing},
		{Path: "b.calc", Status: driver.FileFailed},
		{Path: "unknown.calc", Status: driver.FileDone},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}

	want := map[driver.FileStatus]int{driver.FileDone: 1, driver.FileFailed: 1, driver.FileQueued: 1}
	for st, n := range want {
		if m.counts[st] != n {
			t.Errorf("%s = %d, want %d", st, m.counts[st], n)
		}
	}
	if got := m.fraction(); got < 0.66 || got > 0.67 {
		t.Errorf("fraction = %v", got)
	}

	view := m.View()
	if !strings.Contains(view, "b.calc") || strings.Contains(view, "a.calc") {
		t.Errorf("only failed and in-flight files are listed:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.closed {
		t.Fatal("doneMsg must quit")
	}
	if !strings.Contains(m.View(), "done: checking") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestBatchProgressHidesOverflow(t *testing.T) {
	var files []string
	for i := range maxProgressRows + 3 {
		files = append(files, fmt.Sprintf("f%02d.calc", i))
	}
	m := NewProgressModel("checking", files, nil).(*batchProgress)
	for _, f := range files {
		m.Update(eventMsg{Path: f, Status: driver.FileParsing})
	}
	if view := m.View(); !strings.Contains(view, "... and 3 more") {
		t.Errorf("view:\n%s", view)
	}
}

func TestBatchProgressResize(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.calc"}, nil).(*batchProgress)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if m.width != 40 || m.bar.Width != 36 {
		t.Errorf("width=%d bar=%d", m.width, m.bar.Width)
	}
}
