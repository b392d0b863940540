package diag

import "sync"

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter пишет в *Bag; безопасен для нескольких горутин.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.mu.Lock()
	r.Bag.Add(d)
	r.mu.Unlock()
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
