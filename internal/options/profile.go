package options

import "fmt"

// Profile selects the default option table of an analyzer flavour.
type Profile uint8

const (
	// ProfileJSLint is the strict table shared by both analyzers.
	ProfileJSLint Profile = iota + 1
	// ProfileJSHint extends ProfileJSLint with the lenient JSHint extras.
	ProfileJSHint
)

func (p Profile) String() string {
	switch p {
	case ProfileJSLint:
		return "jslint"
	case ProfileJSHint:
		return "jshint"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// Spec describes one known option: its name, default and a short help line.
type Spec struct {
	Name    string
	Default bool
	Doc     string
	// Profile is the first profile that consumes the option.
	Profile Profile

	field func(*Options) *bool
}

// Table returns the option table consumed by profile, in resolution order:
// the shared JSLint options first, then the JSHint extras.
func Table(p Profile) []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if s.Profile <= p {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds a known option by exact (case-sensitive) name.
func Lookup(name string) (Spec, bool) {
	idx, ok := specIndex[name]
	if !ok {
		return Spec{}, false
	}
	return specs[idx], true
}

var specIndex = func() map[string]int {
	m := make(map[string]int, len(specs))
	for i, s := range specs {
		m[s.Name] = i
	}
	return m
}()

// specs - таблица опций в порядке передачи в движок.
var specs = []Spec{
	{Name: "adsafe", Default: false, Doc: "if ADsafe should be enforced", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Adsafe }},
	{Name: "bitwise", Default: true, Doc: "if bitwise operators should not be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Bitwise }},
	{Name: "browser", Default: false, Doc: "if the standard browser globals should be predefined", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Browser }},
	{Name: "cap", Default: false, Doc: "if upper case HTML should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Cap }},
	{Name: "css", Default: false, Doc: "if CSS workarounds should be tolerated", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.CSS }},
	{Name: "debug", Default: false, Doc: "if debugger statements should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Debug }},
	{Name: "eqeqeq", Default: true, Doc: "if === should be required", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Eqeqeq }},
	{Name: "evil", Default: false, Doc: "if eval should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Evil }},
	{Name: "forin", Default: false, Doc: "if for in statements must filter", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Forin }},
	{Name: "fragment", Default: false, Doc: "if HTML fragments should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Fragment }},
	{Name: "immed", Default: true, Doc: "if immediate invocations must be wrapped in parens", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Immed }},
	{Name: "laxbreak", Default: false, Doc: "if line breaks should not be checked", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Laxbreak }},
	{Name: "newcap", Default: true, Doc: "if constructor names must be capitalized", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Newcap }},
	{Name: "nomen", Default: true, Doc: "disallow initial or trailing underscores in names", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Nomen }},
	{Name: "on", Default: false, Doc: "if HTML event handlers should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.On }},
	{Name: "onevar", Default: true, Doc: "if only one var statement per function should be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Onevar }},
	{Name: "passfail", Default: false, Doc: "if the scan should stop on first error", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Passfail }},
	{Name: "plusplus", Default: true, Doc: "if increment/decrement should not be allowed", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Plusplus }},
	{Name: "regexp", Default: true, Doc: "if the . should not be allowed in regexp literals", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Regexp }},
	{Name: "rhino", Default: false, Doc: "if the Rhino environment globals should be predefined", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Rhino }},
	{Name: "undef", Default: true, Doc: "if variables should be declared before used", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Undef }},
	{Name: "safe", Default: false, Doc: "if use of some browser features should be restricted", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Safe }},
	{Name: "sidebar", Default: false, Doc: "if the System object should be predefined", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Sidebar }},
	{Name: "strict", Default: true, Doc: `require the "use strict"; pragma`, Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Strict }},
	{Name: "sub", Default: false, Doc: "if all forms of subscript notation are tolerated", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Sub }},
	{Name: "white", Default: false, Doc: "if strict whitespace rules apply", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.White }},
	{Name: "widget", Default: false, Doc: "if the Yahoo Widgets globals should be predefined", Profile: ProfileJSLint, field: func(o *Options) *bool { return &o.Widget }},

	// JSHint
	{Name: "asi", Default: false, Doc: "tolerate automatic semicolon insertion", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Asi }},
	{Name: "boss", Default: false, Doc: "allow assignments inside if, for and while conditions", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Boss }},
	{Name: "curly", Default: true, Doc: "require curly braces around logical blocks", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Curly }},
	{Name: "devel", Default: false, Doc: "allow logging functions that should be removed for production", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Devel }},
	{Name: "noarg", Default: true, Doc: "prohibit use of arguments.caller and arguments.callee", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Noarg }},
	{Name: "noempty", Default: true, Doc: "prohibit empty blocks", Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Noempty }},
	{Name: "nonew", Default: false, Doc: `prohibit construction using "new" for side effects`, Profile: ProfileJSHint, field: func(o *Options) *bool { return &o.Nonew }},
}
