package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReportSkipsFilePhasesInTotal(t *testing.T) {
	tm := NewTimer()
	tm.Record("load-config", 2*time.Millisecond, "")
	tm.Record("lint", 10*time.Millisecond, "3 files")
	tm.Record("file:a.js", 4*time.Millisecond, "")

	r := tm.Report()
	if len(r.Phases) != 3 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.TotalMS < 11.99 || r.TotalMS > 12.01 {
		t.Fatalf("total = %v", r.TotalMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "// 3 files") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestTimerConcurrentRecord(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Record("file:x.js", time.Duration(i)*time.Millisecond, "")
		}()
	}
	wg.Wait()

	slow := tm.Slowest(3)
	if len(slow) != 3 || slow[0].Dur != 15*time.Millisecond {
		t.Fatalf("slowest = %+v", slow)
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lint")
	tm.End(idx, "ok")
	tm.End(42, "ignored")
	r := tm.Report()
	if r.Phases[0].Note != "ok" {
		t.Fatalf("note = %q", r.Phases[0].Note)
	}
}
