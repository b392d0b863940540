package options

import (
	"fmt"
	"slices"
	"sort"
)

// LinterKey is the reserved option key that selects the analyzer flavour.
// It is never passed to the analyzer itself.
const LinterKey = "linter"

// Binding is one resolved option ready to be handed to the analyzer.
type Binding struct {
	Name  string
	Value any
}

// Store holds the resolved options of one checker instance.
//
// Store is not synchronized: callers that share one instance between
// goroutines must not call Set/Apply/SetProfile while a check is running.
type Store struct {
	profile Profile
	opts    Options
	// explicit запоминает значения, заданные вызывающим, чтобы
	// пересобрать опции при смене профиля.
	explicit map[string]any
	order    []string
}

// NewStore seeds a store from profile p and applies overrides on top.
// Order: shared defaults, profile extras, caller overrides.
func NewStore(p Profile, overrides map[string]any) *Store {
	s := &Store{
		profile:  p,
		opts:     Defaults(p),
		explicit: make(map[string]any, len(overrides)),
	}
	s.Apply(overrides)
	return s
}

// Profile returns the active default profile.
func (s *Store) Profile() Profile { return s.profile }

// SetProfile switches the default table and re-applies every explicit
// override on top of the new defaults.
func (s *Store) SetProfile(p Profile) {
	if p == s.profile {
		return
	}
	s.profile = p
	s.opts = Defaults(p)
	for _, name := range s.order {
		s.assign(name, s.explicit[name])
	}
}

// Apply sets every key of m. Keys are applied in sorted order so that the
// outcome does not depend on map iteration.
func (s *Store) Apply(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Set(k, m[k])
	}
}

// Set stores value under name. Known options of the active profile take
// bool values into their typed field; anything else is kept verbatim in
// Extra. Unknown names are accepted.
func (s *Store) Set(name string, value any) {
	if _, seen := s.explicit[name]; !seen {
		s.order = append(s.order, name)
	}
	s.explicit[name] = value
	s.assign(name, value)
}

func (s *Store) assign(name string, value any) {
	if spec, ok := Lookup(name); ok && spec.Profile <= s.profile {
		if b, isBool := value.(bool); isBool {
			*spec.field(&s.opts) = b
			delete(s.opts.Extra, name)
			return
		}
	}
	if s.opts.Extra == nil {
		s.opts.Extra = make(map[string]any)
	}
	s.opts.Extra[name] = value
}

// Get returns the current value of name and whether it is set.
func (s *Store) Get(name string) (any, bool) {
	if v, ok := s.opts.Extra[name]; ok {
		return v, true
	}
	if spec, ok := Lookup(name); ok && spec.Profile <= s.profile {
		return *spec.field(&s.opts), true
	}
	return nil, false
}

// Bool reports the value of name as a boolean; unset or non-bool values
// report false.
func (s *Store) Bool(name string) bool {
	v, _ := s.Get(name)
	b, _ := v.(bool)
	return b
}

// Names lists every option currently resolvable on the store: the profile
// table first, then extra keys in sorted order.
func (s *Store) Names() []string {
	bindings := s.Bindings()
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.Name
	}
	return out
}

// Snapshot returns a deep copy of the typed record.
func (s *Store) Snapshot() Options { return s.opts.Clone() }

// Bindings resolves the store into the ordered list handed to the analyzer.
// Each call returns fresh values that share nothing with the store.
func (s *Store) Bindings() []Binding {
	snap := s.opts.Clone()
	table := Table(s.profile)
	out := make([]Binding, 0, len(table)+len(snap.Extra))
	for _, spec := range table {
		if v, ok := snap.Extra[spec.Name]; ok {
			out = append(out, Binding{Name: spec.Name, Value: v})
			delete(snap.Extra, spec.Name)
			continue
		}
		out = append(out, Binding{Name: spec.Name, Value: *spec.field(&snap)})
	}
	extra := make([]string, 0, len(snap.Extra))
	for k := range snap.Extra {
		extra = append(extra, k)
	}
	slices.Sort(extra)
	for _, k := range extra {
		out = append(out, Binding{Name: k, Value: snap.Extra[k]})
	}
	return out
}

// SplitLinter removes the reserved linter key from m and returns its value
// as a string together with the remaining overrides. m is not modified.
func SplitLinter(m map[string]any) (string, map[string]any) {
	rest := make(map[string]any, len(m))
	linter := ""
	for k, v := range m {
		if k == LinterKey {
			if v != nil {
				linter = fmt.Sprint(v)
			}
			continue
		}
		rest[k] = v
	}
	return linter, rest
}
