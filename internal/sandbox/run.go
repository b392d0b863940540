package sandbox

import (
	"context"

	"jshint/internal/engine"
	"jshint/internal/options"
)

// Request is everything one check hands to the sandbox.
type Request struct {
	Script   engine.Script
	Input    string
	Bindings []options.Binding
	Limits   Limits
}

// Run executes the full protocol in a fresh context: load, bind, evaluate,
// collect, tear down. Records are raw analyzer output in engine order.
func Run(ctx context.Context, req Request) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExecutionError{Stage: StageLoad, Message: "interrupted: " + err.Error(), Err: err}
	}
	c := New(req.Limits)
	defer c.Close()
	stop := c.watch(ctx)
	defer stop()

	if err := c.Load(req.Script); err != nil {
		return nil, err
	}
	if err := c.BindInput(req.Input); err != nil {
		return nil, err
	}
	if err := c.BindOptions(req.Bindings); err != nil {
		return nil, err
	}
	if err := c.BindCollector(); err != nil {
		return nil, err
	}
	if err := c.Eval(); err != nil {
		return nil, err
	}
	return c.Records(), nil
}
