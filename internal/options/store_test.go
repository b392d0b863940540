package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingMap(bs []Binding) map[string]any {
	m := make(map[string]any, len(bs))
	for _, b := range bs {
		m[b.Name] = b.Value
	}
	return m
}

func TestNewStore_ProfileDefaults(t *testing.T) {
	lint := NewStore(ProfileJSLint, nil)
	hint := NewStore(ProfileJSHint, nil)

	assert.Len(t, lint.Bindings(), 27)
	assert.Len(t, hint.Bindings(), 34)

	_, ok := lint.Get("curly")
	assert.False(t, ok, "jshint-only option must not resolve on the jslint profile")

	v, ok := hint.Get("curly")
	require.True(t, ok)
	assert.Equal(t, true, v)
	assert.True(t, hint.Bool("strict"))
	assert.False(t, hint.Bool("asi"))
}

func TestBindings_EveryOptionResolved(t *testing.T) {
	for _, p := range []Profile{ProfileJSLint, ProfileJSHint} {
		for _, b := range NewStore(p, nil).Bindings() {
			assert.NotNil(t, b.Value, "%s: %s resolved to nil", p, b.Name)
		}
	}
}

func TestBindings_OrderIsTableThenSortedExtras(t *testing.T) {
	s := NewStore(ProfileJSLint, map[string]any{"zeta": 1, "alpha": "x"})
	names := s.Names()

	require.Len(t, names, 29)
	assert.Equal(t, "adsafe", names[0])
	assert.Equal(t, "widget", names[26])
	assert.Equal(t, []string{"alpha", "zeta"}, names[27:])
}

func TestOverridesReplaceDefaults(t *testing.T) {
	s := NewStore(ProfileJSHint, map[string]any{"strict": false, "asi": true})
	m := bindingMap(s.Bindings())

	assert.Equal(t, false, m["strict"])
	assert.Equal(t, true, m["asi"])
	assert.Equal(t, true, m["eqeqeq"])
}

func TestUnknownAndNonBoolValuesPassThrough(t *testing.T) {
	s := NewStore(ProfileJSLint, map[string]any{
		"maxerr": int64(3),
		"predef": []any{"jQuery"},
		"white":  "yes",
	})
	m := bindingMap(s.Bindings())

	assert.Equal(t, int64(3), m["maxerr"])
	assert.Equal(t, []any{"jQuery"}, m["predef"])
	assert.Equal(t, "yes", m["white"], "non-bool value for a known option wins over the field")

	s.Set("white", true)
	v, _ := s.Get("white")
	assert.Equal(t, true, v)
	_, inExtra := s.Snapshot().Extra["white"]
	assert.False(t, inExtra)
}

func TestJSHintOptionOnJSLintProfileIsPassedThrough(t *testing.T) {
	s := NewStore(ProfileJSLint, map[string]any{"asi": true})
	m := bindingMap(s.Bindings())

	assert.Equal(t, true, m["asi"])
	_, hasCurly := m["curly"]
	assert.False(t, hasCurly)
}

func TestSetProfileReappliesExplicitValues(t *testing.T) {
	s := NewStore(ProfileJSLint, map[string]any{"asi": true, "strict": false})
	s.SetProfile(ProfileJSHint)

	m := bindingMap(s.Bindings())
	assert.Equal(t, true, m["asi"])
	assert.Equal(t, false, m["strict"])
	assert.Equal(t, true, m["curly"])
	assert.Len(t, m, 34)

	s.SetProfile(ProfileJSLint)
	m = bindingMap(s.Bindings())
	assert.Equal(t, true, m["asi"])
	assert.Len(t, m, 28)
}

func TestBindingsAreSnapshots(t *testing.T) {
	list := []any{"a"}
	s := NewStore(ProfileJSLint, map[string]any{"predef": list})
	first := bindingMap(s.Bindings())

	first["predef"].([]any)[0] = "mutated"
	s.Set("bitwise", false)

	second := bindingMap(s.Bindings())
	assert.Equal(t, []any{"a"}, second["predef"])
	assert.Equal(t, true, first["bitwise"])
	assert.Equal(t, false, second["bitwise"])
}

func TestSplitLinter(t *testing.T) {
	in := map[string]any{"linter": "JSLint", "undef": false}
	linter, rest := SplitLinter(in)

	assert.Equal(t, "JSLint", linter)
	assert.Equal(t, map[string]any{"undef": false}, rest)
	assert.Contains(t, in, "linter", "input map must not be modified")
}
