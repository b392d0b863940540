package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/dop251/goja"

	"jshint/internal/engine"
	"jshint/internal/options"
)

// Names injected into the analyzer's global scope.
const (
	inputFunc     = "__jshint_input"
	optionPrefix  = "__jshint_opt_"
	collectorFunc = "__jshint_report"
)

var identRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

var errClosed = errors.New("context is closed")

// Limits bounds a single evaluation.
type Limits struct {
	// MaxCallStackSize caps JS recursion depth; 0 keeps DefaultLimits.
	MaxCallStackSize int
	// MaxRecords caps the length of the reported errors array; 0 keeps
	// DefaultLimits. A larger maxerr option raises the cap to
	// maxerrFactor*maxerr.
	MaxRecords int
}

// DefaultLimits applies to zero fields of Limits.
var DefaultLimits = Limits{MaxCallStackSize: 4096, MaxRecords: 10000}

const (
	maxerrFactor = 4
	// how many records are copied between context checks
	recordCheckEvery = 1024
)

// Context is one isolated analyzer execution. It is created for a single
// check and discarded afterwards; nothing in it survives Close.
type Context struct {
	ctx      context.Context
	vm       *goja.Runtime
	limits   Limits
	script   engine.Script
	loaded   bool
	bindings []options.Binding

	records    []any
	reported   bool
	collectErr error
}

// New creates a fresh runtime.
func New(limits Limits) *Context {
	if limits.MaxCallStackSize <= 0 {
		limits.MaxCallStackSize = DefaultLimits.MaxCallStackSize
	}
	if limits.MaxRecords <= 0 {
		limits.MaxRecords = DefaultLimits.MaxRecords
	}
	vm := goja.New()
	vm.SetMaxCallStackSize(limits.MaxCallStackSize)
	return &Context{ctx: context.Background(), vm: vm, limits: limits}
}

// Load evaluates the analyzer script and checks that it defines its entry
// point.
func (c *Context) Load(s engine.Script) error {
	if c.vm == nil {
		return execErr(StageLoad, errClosed)
	}
	if !identRe.MatchString(s.Entry) {
		return &ExecutionError{Stage: StageLoad, Message: fmt.Sprintf("invalid entry point %q", s.Entry)}
	}
	prog, err := compile(s)
	if err != nil {
		return wrapJSError(StageLoad, err)
	}
	if _, err := c.vm.RunProgram(prog); err != nil {
		return wrapJSError(StageLoad, err)
	}
	if _, ok := goja.AssertFunction(c.vm.Get(s.Entry)); !ok {
		return &ExecutionError{Stage: StageLoad, Message: fmt.Sprintf("%s does not define function %s", s.Name, s.Entry)}
	}
	c.script = s
	c.loaded = true
	return nil
}

// BindInput exposes text through a zero-argument accessor, so the source
// is never spliced into code.
func (c *Context) BindInput(text string) error {
	if c.vm == nil {
		return execErr(StageBind, errClosed)
	}
	if err := c.vm.Set(inputFunc, func() string { return text }); err != nil {
		return execErr(StageBind, err)
	}
	return nil
}

// BindOptions binds each value under an indexed global. Names only appear
// in the glue as JSON string keys.
func (c *Context) BindOptions(bs []options.Binding) error {
	if c.vm == nil {
		return execErr(StageBind, errClosed)
	}
	for i, b := range bs {
		if err := c.vm.Set(optionPrefix+fmt.Sprint(i), b.Value); err != nil {
			return execErr(StageBind, fmt.Errorf("option %q: %w", b.Name, err))
		}
		if b.Name == "maxerr" {
			if n, ok := intValue(b.Value); ok && n > 0 && n <= math.MaxInt/maxerrFactor {
				c.limits.MaxRecords = max(c.limits.MaxRecords, n*maxerrFactor)
			}
		}
	}
	c.bindings = bs
	return nil
}

// BindCollector installs the callback that receives ENTRY.errors.
func (c *Context) BindCollector() error {
	if c.vm == nil {
		return execErr(StageBind, errClosed)
	}
	err := c.vm.Set(collectorFunc, func(call goja.FunctionCall) goja.Value {
		c.reported = true
		c.records, c.collectErr = c.exportRecords(call.Argument(0))
		return goja.Undefined()
	})
	if err != nil {
		return execErr(StageBind, err)
	}
	return nil
}

// Glue renders the invocation evaluated by Eval.
func Glue(entry string, bs []options.Binding) string {
	var sb strings.Builder
	sb.WriteString(entry)
	sb.WriteString("(" + inputFunc + "(), {")
	for i, b := range bs {
		if i > 0 {
			sb.WriteString(", ")
		}
		key, _ := json.Marshal(b.Name) // a string always marshals
		sb.Write(key)
		fmt.Fprintf(&sb, ": %s%d", optionPrefix, i)
	}
	sb.WriteString("});\n")
	fmt.Fprintf(&sb, "%s(%s.errors);\n", collectorFunc, entry)
	return sb.String()
}

// Eval invokes the analyzer and collects its findings.
func (c *Context) Eval() error {
	if c.vm == nil {
		return execErr(StageEval, errClosed)
	}
	if !c.loaded {
		return &ExecutionError{Stage: StageEval, Message: "no analyzer loaded"}
	}
	if _, err := c.vm.RunScript("glue.js", Glue(c.script.Entry, c.bindings)); err != nil {
		return wrapJSError(StageEval, err)
	}
	if !c.reported {
		return &ExecutionError{Stage: StageCollect, Message: "analyzer results were not reported"}
	}
	if c.collectErr != nil {
		return execErr(StageCollect, c.collectErr)
	}
	return nil
}

// Records returns what the collector received. Null entries stay nil.
func (c *Context) Records() []any { return c.records }

// Interrupt stops a running evaluation from another goroutine.
func (c *Context) Interrupt(reason any) {
	if c.vm != nil {
		c.vm.Interrupt(reason)
	}
}

// Close drops the runtime. A closed context refuses further use.
func (c *Context) Close() {
	if c.vm == nil {
		return
	}
	c.vm.ClearInterrupt()
	c.vm = nil
	c.bindings = nil
}

// watch interrupts the runtime when ctx ends. The returned stop must be
// called before the context is closed.
func (c *Context) watch(ctx context.Context) (stop func()) {
	if ctx.Done() == nil {
		return func() {}
	}
	c.ctx = ctx
	vm := c.vm
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-quit:
		}
	}()
	return func() {
		close(quit)
		<-done
	}
}

// exportRecords copies the errors array out of the runtime. The copy runs
// inside a host callback, where the runtime does not see interrupts, so
// it checks the check's context itself.
func (c *Context) exportRecords(v goja.Value) ([]any, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, errors.New("analyzer errors is not an array")
	}
	obj := v.ToObject(c.vm)
	if obj.ClassName() != "Array" {
		return nil, fmt.Errorf("analyzer errors is %s, not an array", obj.ClassName())
	}
	n := obj.Get("length").ToInteger()
	if n > int64(c.limits.MaxRecords) {
		return nil, &TooManyRecordsError{Length: n, Max: c.limits.MaxRecords}
	}
	out := make([]any, 0, min(n, recordCheckEvery))
	for i := int64(0); i < n; i++ {
		if i%recordCheckEvery == 0 {
			if err := c.ctx.Err(); err != nil {
				return nil, fmt.Errorf("interrupted: %w", err)
			}
		}
		el := obj.Get(strconv.FormatInt(i, 10))
		if el == nil || goja.IsUndefined(el) || goja.IsNull(el) {
			out = append(out, nil)
			continue
		}
		out = append(out, el.Export())
	}
	return out, nil
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		i, err := safecast.Conv[int](n)
		return i, err == nil
	case float64:
		i, err := safecast.Convert[int](n)
		return i, err == nil
	}
	return 0, false
}

func wrapJSError(stage Stage, err error) *ExecutionError {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		cause, _ := interrupted.Value().(error)
		if cause == nil {
			cause = err
		}
		return &ExecutionError{Stage: stage, Message: "interrupted: " + cause.Error(), Err: cause}
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return &ExecutionError{Stage: stage, Message: exc.Value().String(), Err: err}
	}
	return execErr(stage, err)
}
