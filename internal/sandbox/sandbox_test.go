package sandbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jshint/internal/engine"
	"jshint/internal/options"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stub(src string) engine.Script {
	return engine.NewScript(engine.JSHint, "stub.js", src)
}

// echo reports the input as reason and the options object as evidence.
const echo = `
var JSHINT = function (src, opts) {
	JSHINT.errors = [{line: 0, character: 1, reason: src, evidence: JSON.stringify(opts)}, null];
};`

func TestRunMarshalsInputAndOptions(t *testing.T) {
	recs, err := Run(context.Background(), Request{
		Script: stub(echo),
		Input:  "var a = \"}); evil(); //\";\n",
		Bindings: []options.Binding{
			{Name: "strict", Value: true},
			{Name: "maxerr", Value: int64(3)},
			{Name: "indent", Value: "tab"},
		},
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[1], "null sentinel must be preserved")

	rec, ok := recs[0].(map[string]any)
	require.True(t, ok, "record exported as %T", recs[0])
	assert.Equal(t, "var a = \"}); evil(); //\";\n", rec["reason"])
	assert.Equal(t, `{"strict":true,"maxerr":3,"indent":"tab"}`, rec["evidence"])
	assert.EqualValues(t, 1, rec["character"])
}

func TestGlueQuotesHostileNames(t *testing.T) {
	bs := []options.Binding{{Name: `"}); throw 1; ({"`, Value: true}}
	glue := Glue("JSHINT", bs)
	assert.Contains(t, glue, `{"\"}); throw 1; ({\"": __jshint_opt_0}`)

	recs, err := Run(context.Background(), Request{
		Script: stub(`var JSHINT = function (s, o) { JSHINT.errors = [{line: 0, character: 0, reason: Object.keys(o)[0]}]; };`),
		Bindings: bs,
	})
	require.NoError(t, err)
	assert.Equal(t, bs[0].Name, recs[0].(map[string]any)["reason"])
}

func TestRunIsIsolated(t *testing.T) {
	script := stub(`
var JSHINT = function () {
	JSHINT.errors = [{line: typeof leaked === "undefined" ? 0 : 1, character: 0, reason: "r"}];
	leaked = true;
};`)
	for range 2 {
		recs, err := Run(context.Background(), Request{Script: script})
		require.NoError(t, err)
		assert.EqualValues(t, 0, recs[0].(map[string]any)["line"], "global state leaked between runs")
	}
}

func TestRunFailures(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		stage Stage
		msg   string
	}{
		{"syntax", "var JSHINT = function( {", StageLoad, ""},
		{"missing entry", "var OTHER = 1;", StageLoad, "does not define function JSHINT"},
		{"throws", `var JSHINT = function () { throw new Error("boom"); };`, StageEval, "boom"},
		{"no errors array", `var JSHINT = function () {};`, StageCollect, "not an array"},
		{"recursion", `var JSHINT = function f() { f(); };`, StageEval, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			recs, err := Run(context.Background(), Request{Script: stub(c.src)})
			require.Error(t, err)
			assert.Nil(t, recs)
			assert.ErrorIs(t, err, ErrEngineExecution)
			var ee *ExecutionError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, c.stage, ee.Stage)
			if c.msg != "" {
				assert.Contains(t, ee.Message, c.msg)
			}
		})
	}
}

func TestRunTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, Request{Script: stub(`var JSHINT = function () { for (;;) {} };`)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineExecution)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func sparseErrors(length string) engine.Script {
	return stub(`var JSHINT = function () { var a = []; a.length = ` + length + `; JSHINT.errors = a; };`)
}

func TestRunRejectsOversizedErrorsArray(t *testing.T) {
	start := time.Now()
	recs, err := Run(context.Background(), Request{Script: sparseErrors("4294967295")})
	require.Error(t, err)
	assert.Nil(t, recs)
	var ee *ExecutionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StageCollect, ee.Stage)
	var tooMany *TooManyRecordsError
	require.ErrorAs(t, err, &tooMany)
	assert.EqualValues(t, 4294967295, tooMany.Length)
	assert.Equal(t, DefaultLimits.MaxRecords, tooMany.Max)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunMaxerrRaisesRecordLimit(t *testing.T) {
	recs, err := Run(context.Background(), Request{
		Script:   sparseErrors("20000"),
		Bindings: []options.Binding{{Name: "maxerr", Value: float64(10000)}},
	})
	require.NoError(t, err)
	assert.Len(t, recs, 20000)

	_, err = Run(context.Background(), Request{
		Script:   sparseErrors("20000"),
		Bindings: []options.Binding{{Name: "maxerr", Value: int64(50)}},
	})
	var tooMany *TooManyRecordsError
	assert.ErrorAs(t, err, &tooMany)
}

func TestRunTimeoutWhileCollecting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, Request{
		Script: sparseErrors("30000000"),
		Limits: Limits{MaxRecords: 30000000},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineExecution)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Request{Script: stub(echo)})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClosedContextRefusesUse(t *testing.T) {
	c := New(Limits{})
	require.NoError(t, c.Load(stub(echo)))
	c.Close()
	c.Close()
	assert.ErrorIs(t, c.BindInput("x"), ErrEngineExecution)
	assert.ErrorIs(t, c.Eval(), ErrEngineExecution)
}

func TestProgramsAreCached(t *testing.T) {
	PurgePrograms()
	s := stub(echo)
	for range 3 {
		_, err := Run(context.Background(), Request{Script: s})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, CachedPrograms())
}

func TestBundledAnalyzerRuns(t *testing.T) {
	s, err := engine.Bundled().Load("jslint")
	require.NoError(t, err)
	recs, err := Run(context.Background(), Request{
		Script:   s,
		Input:    "var x = 5",
		Bindings: options.NewStore(options.ProfileJSLint, nil).Bindings(),
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	var reasons []string
	for _, r := range recs {
		reasons = append(reasons, r.(map[string]any)["reason"].(string))
	}
	assert.Equal(t, `Missing "use strict" statement.|Missing semicolon.`, strings.Join(reasons, "|"))
}
