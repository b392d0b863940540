package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit. It is not synchronized.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means
// unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors - есть ли хотя бы одна диагностика с Severity >= Error.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез; не модифицируйте его.
func (b *Bag) Items() []Diagnostic { return b.items }

// Files returns the distinct files in the bag, in first-seen order.
func (b *Bag) Files() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, d := range b.items {
		if _, ok := seen[d.File]; ok {
			continue
		}
		seen[d.File] = struct{}{}
		out = append(out, d.File)
	}
	return out
}

// Merge appends other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file only. Diagnostics of one file keep analyzer order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Compare(x.File, y.File)
	})
}
