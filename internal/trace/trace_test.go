package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFilter(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePhase, false},
		{LevelDetail, ScopePhase, true},
		{LevelDetail, ScopeRecord, false},
		{LevelDebug, ScopeRecord, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeFile, "check", 0)
	Point(tr, ScopeRecord, "skip", "too deep", span.ID(), nil)
	span.WithExtra("diagnostics", "2").End("done")

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected begin and end lines only, got:\n%s", out)
	}
	if !strings.Contains(out, "→ check") || !strings.Contains(out, "← check (done)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "diagnostics=2") {
		t.Fatalf("extra missing:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeRecord, "malformed", "line", 0, map[string]string{"index": "3"})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["name"] != "malformed" || got["scope"] != "record" || got["kind"] != "point" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	if snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("wrong order: %v %v", snap[0].Name, snap[2].Name)
	}
}

func TestRingKeepsFileEventsAtErrorLevel(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: "file"})
	r.Emit(&Event{Kind: KindPoint, Scope: ScopePhase, Name: "phase"})
	if snap := r.Snapshot(); len(snap) != 1 || snap[0].Name != "file" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	off, err := New(Config{Level: LevelOff})
	if err != nil || off != Nop {
		t.Fatalf("LevelOff must give Nop, got %T %v", off, err)
	}
	both, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(both); !ok {
		t.Fatal("both mode must expose its ring")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "run", 0)
	ctx = WithSpan(ctx, span)
	if ParentSpan(ctx) != span.ID() || span.ID() == 0 {
		t.Fatal("span not propagated")
	}
}

func TestHeartbeatStops(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeats recorded")
	}
	var nilHB *Heartbeat
	nilHB.Stop()
}
