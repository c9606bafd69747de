package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
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
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, s := BeginCtx(ctx, ScopeDriver, "process")
	_, inner := BeginCtx(ctx, ScopePass, "parse")
	inner.End("ok")
	Point(tr, ScopeNode, "broadcast:rule", "", s.ID()) // filtered at phase level
	s.WithExtra("files", "2").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string `json:"kind"`
		Name     string `json:"name"`
		ParentID uint64 `json:"parent_id"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "begin" || ev.Name != "parse" || ev.ParentID != s.ID() {
		t.Errorf("unexpected inner begin: %+v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(r, ScopeNode, "n", string(rune('a'+i)), 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	if snap[0].Detail != "c" || snap[2].Detail != "e" {
		t.Errorf("order: %q %q", snap[0].Detail, snap[2].Detail)
	}
	var buf bytes.Buffer
	if err := DumpRing(NewMultiTracer(LevelDebug, r), &buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestNopFromEmptyContext(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("expected nop tracer")
	}
	s := Begin(Nop, ScopeDriver, "x", 0)
	s.End("")
	if s.ID() != 0 {
		t.Errorf("nop span has id %d", s.ID())
	}
}

func TestParseFormatAndMode(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "JSON": FormatNDJSON, "ndjson": FormatNDJSON} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil || !strings.Contains(err.Error(), "both|ring|stream") {
		t.Errorf("ParseMode error = %v", err)
	}
	if formatFor(FormatAuto, "run.ndjson") != FormatNDJSON || formatFor(FormatAuto, "run.log") != FormatText {
		t.Errorf("auto format not resolved from extension")
	}
}

func TestNewBothDumpsRing(t *testing.T) {
	var stream bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &stream, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	Point(tr, ScopeFile, "skipped", "", 0)

	var dump bytes.Buffer
	if err := DumpRing(tr, &dump, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(stream.String(), "\n") != strings.Count(dump.String(), "\n") {
		t.Errorf("stream %q, ring %q", stream.String(), dump.String())
	}
	if strings.Count(dump.String(), "parse") != 2 {
		t.Errorf("dump:\n%s", dump.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHeartbeatStops(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if ev := r.Snapshot()[0]; ev.Kind != KindHeartbeat || ev.Detail != "#1" {
		t.Errorf("first event = %+v", ev)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Errorf("heartbeat started for disabled tracer")
	}
}
