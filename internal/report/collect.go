package report

import (
	"errors"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"jshint/internal/diag"
	"jshint/internal/source"
	"jshint/internal/trace"
)

// ErrMalformedDiagnostic classifies records that lack a usable line,
// character or reason.
var ErrMalformedDiagnostic = errors.New("malformed diagnostic")

// MalformedError points at the offending record.
type MalformedError struct {
	Index int    // position in the analyzer's errors array
	Field string // "record" when the entry is not an object
	Value any
}

func (e *MalformedError) Error() string {
	if e.Field == "record" {
		return fmt.Sprintf("malformed diagnostic #%d: not an object (%T)", e.Index, e.Value)
	}
	return fmt.Sprintf("malformed diagnostic #%d: bad %s field (%v)", e.Index, e.Field, e.Value)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedDiagnostic }

// Policy decides what happens to malformed records.
type Policy uint8

const (
	// SkipMalformed drops the record and notes it in the trace.
	SkipMalformed Policy = iota
	// FailMalformed turns the first malformed record into an error.
	FailMalformed
)

func (p Policy) String() string {
	if p == FailMalformed {
		return "fail"
	}
	return "skip"
}

// Collector converts raw analyzer records into diagnostics. Counters
// accumulate over calls.
type Collector struct {
	Policy Policy
	Tracer trace.Tracer
	Parent uint64 // span the trace events hang under

	Skipped   int // malformed records dropped
	Sentinels int // null entries
}

// Collect is Collector.Collect with fresh counters.
func Collect(records []any, input string, policy Policy, tr trace.Tracer) ([]diag.Diagnostic, error) {
	c := Collector{Policy: policy, Tracer: tr}
	return c.Collect(records, input)
}

// Collect keeps engine order. Null entries mark where the analyzer stopped
// and are skipped. A missing evidence is recovered from input.
func (c *Collector) Collect(records []any, input string) ([]diag.Diagnostic, error) {
	out := make([]diag.Diagnostic, 0, len(records))
	for i, raw := range records {
		if raw == nil {
			c.Sentinels++
			trace.Point(c.Tracer, trace.ScopeRecord, "sentinel", "", c.Parent, map[string]string{"index": strconv.Itoa(i)})
			continue
		}
		d, err := convert(i, raw, input)
		if err != nil {
			if c.Policy == FailMalformed {
				return nil, err
			}
			c.Skipped++
			trace.Point(c.Tracer, trace.ScopeRecord, "malformed", err.Error(), c.Parent, map[string]string{"index": strconv.Itoa(i)})
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func convert(i int, raw any, input string) (diag.Diagnostic, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return diag.Diagnostic{}, &MalformedError{Index: i, Field: "record", Value: raw}
	}
	line, ok := position(rec["line"])
	if !ok {
		return diag.Diagnostic{}, &MalformedError{Index: i, Field: "line", Value: rec["line"]}
	}
	char, ok := position(rec["character"])
	if !ok {
		return diag.Diagnostic{}, &MalformedError{Index: i, Field: "character", Value: rec["character"]}
	}
	reason, ok := rec["reason"].(string)
	if !ok {
		return diag.Diagnostic{}, &MalformedError{Index: i, Field: "reason", Value: rec["reason"]}
	}
	evidence, ok := rec["evidence"].(string)
	if !ok {
		evidence = source.Line(input, line)
	}
	var code string
	switch v := rec["code"].(type) {
	case string:
		code = v
	case nil:
	default:
		code = fmt.Sprint(v)
	}
	return diag.New(line, char, reason, evidence, code), nil
}

// position accepts any non-negative integral number the runtime exported.
func position(v any) (int, bool) {
	var (
		n   int
		err error
	)
	switch x := v.(type) {
	case int:
		n = x
	case int32:
		n, err = safecast.Conv[int](x)
	case int64:
		n, err = safecast.Conv[int](x)
	case uint32:
		n, err = safecast.Conv[int](x)
	case uint64:
		n, err = safecast.Conv[int](x)
	case float64:
		n, err = safecast.Convert[int](x)
	case float32:
		n, err = safecast.Convert[int](x)
	default:
		return 0, false
	}
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
