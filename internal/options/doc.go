// Package options holds the analyzer option tables and the per-checker
// option store.
//
// Two profiles exist. ProfileJSLint is the strict table shared by both
// analyzers; ProfileJSHint adds the seven lenient JSHint options on top of
// it. A Store is seeded from a profile and then overridden by caller values:
//
//	store := options.NewStore(options.ProfileJSHint, map[string]any{"undef": false})
//	store.Set("maxerr", 25) // unknown to the table, passed through
//	bindings := store.Bindings()
//
// Known options live in the typed Options record. Unknown keys and values of
// an unexpected type are kept verbatim in Options.Extra; the analyzer ignores
// keys it does not understand, so the store never rejects them.
package options
