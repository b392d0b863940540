package options

import "maps"

// Options is the typed option record of one checker. Every known analyzer
// option has a field here; anything else (unknown keys, numbers, strings,
// predefined globals) travels in Extra and is handed to the analyzer as is.
type Options struct {
	Adsafe   bool
	Bitwise  bool
	Browser  bool
	Cap      bool
	CSS      bool
	Debug    bool
	Eqeqeq   bool
	Evil     bool
	Forin    bool
	Fragment bool
	Immed    bool
	Laxbreak bool
	Newcap   bool
	Nomen    bool
	On       bool
	Onevar   bool
	Passfail bool
	Plusplus bool
	Regexp   bool
	Rhino    bool
	Undef    bool
	Safe     bool
	Sidebar  bool
	Strict   bool
	Sub      bool
	White    bool
	Widget   bool

	// JSHint only.
	Asi     bool
	Boss    bool
	Curly   bool
	Devel   bool
	Noarg   bool
	Noempty bool
	Nonew   bool

	// Extra holds pass-through values. A key present here wins over the
	// typed field of the same name.
	Extra map[string]any
}

// Defaults returns the option record seeded for profile p. Fields outside
// the profile keep their zero value and are not passed to the analyzer.
func Defaults(p Profile) Options {
	var o Options
	for _, s := range Table(p) {
		*s.field(&o) = s.Default
	}
	return o
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	out := o
	if o.Extra != nil {
		out.Extra = make(map[string]any, len(o.Extra))
		for k, v := range o.Extra {
			out.Extra[k] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case []any:
		cp := make([]any, len(tv))
		for i := range tv {
			cp[i] = cloneValue(tv[i])
		}
		return cp
	case []string:
		cp := make([]string, len(tv))
		copy(cp, tv)
		return cp
	case map[string]any:
		cp := make(map[string]any, len(tv))
		for k, item := range tv {
			cp[k] = cloneValue(item)
		}
		return cp
	case map[string]bool:
		return maps.Clone(tv)
	default:
		return v
	}
}
