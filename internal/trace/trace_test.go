package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(strings.ToUpper(l.String()))
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStartSpanNestsUnderContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := StartSpan(ctx, ScopeDriver, "check")
	inner, _ := StartSpan(ctx, ScopeFile, "file:a.calc")
	inner.WithExtra("tokens", "3").End("ok")
	skipped, _ := StartSpan(ctx, ScopeNode, "node")
	skipped.End("")
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	if events[1].ParentID != outer.ID() || events[1].Name != "file:a.calc" {
		t.Errorf("inner begin = %+v", events[1])
	}
	if events[2].Kind != KindSpanEnd || events[2].Extra["tokens"] != "3" || events[2].Detail != "ok" {
		t.Errorf("inner end = %+v", events[2])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("sequence not monotonic at %d", i)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopePass, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Errorf("snapshot = %+v", events)
	}
}

func TestStreamTracerFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelPhase, FormatText)
	Begin(st, ScopePass, "parse", 0).WithExtra("b", "2").WithExtra("a", "1").End("done")
	out := text.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (done) {a=1, b=2}") {
		t.Errorf("text output:\n%s", out)
	}

	var nd bytes.Buffer
	st = NewStreamTracer(&nd, LevelPhase, FormatNDJSON)
	Point(st, ScopeDriver, "start", "x", 0)
	var ev jsonEvent
	if err := json.Unmarshal(bytes.TrimSpace(nd.Bytes()), &ev); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", nd.String(), err)
	}
	if ev.Kind != "point" || ev.Scope != "driver" || ev.Name != "start" || ev.Detail != "x" {
		t.Errorf("event = %+v", ev)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("LevelOff tracer must be disabled")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if d := span.End(""); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
}

func TestTeeFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	m := Tee(LevelPhase, a, b)
	m.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopePass, Name: "p"})
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Error("event not delivered to every tracer")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
}

func TestNewModes(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		mode StorageMode
		ring bool
	}{
		{ModeStream, false},
		{ModeRing, true},
		{ModeBoth, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tr, err := New(Config{Level: LevelPhase, Mode: tt.mode, Output: &out})
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := tr.(*RingTracer); ok != tt.ring {
				t.Errorf("ring tracer = %v, want %v", ok, tt.ring)
			}
			if !tr.Enabled() {
				t.Error("tracer should be enabled")
			}
		})
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(BOTH) = %v, %v", m, err)
	}
}
