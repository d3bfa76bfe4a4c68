package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpr "github.com/chromedp/cdproto/runtime"
	"github.com/mailru/easyjson"
)

// Runtime exposes the CDP Runtime domain actions.
type Runtime interface {
	Enable(context.Context) error
	AddBinding(ctx context.Context, name string) error
	// Evaluate runs expression in the page and returns its JSON value.
	Evaluate(ctx context.Context, expression string) (easyjson.RawMessage, error)
}

var _ Runtime = &runtime{}

type runtime struct {
	exec cdp.Executor
}

// NewRuntime returns a new CDP Runtime domain wrapper.
func NewRuntime(exec cdp.Executor) Runtime {
	return &runtime{exec}
}

func (r *runtime) Enable(ctx context.Context) error {
	action := cdpr.Enable()
	if err := action.Do(cdp.WithExecutor(ctx, r.exec)); err != nil {
		return fmt.Errorf("enabling runtime CDP domain: %w", err)
	}

	return nil
}

func (r *runtime) AddBinding(ctx context.Context, name string) error {
	action := cdpr.AddBinding(name)
	if err := action.Do(cdp.WithExecutor(ctx, r.exec)); err != nil {
		return fmt.Errorf("adding binding %q: %w", name, err)
	}

	return nil
}

func (r *runtime) Evaluate(ctx context.Context, expression string) (easyjson.RawMessage, error) {
	action := cdpr.Evaluate(expression).WithReturnByValue(true)

	res, exc, err := action.Do(cdp.WithExecutor(ctx, r.exec))
	switch {
	case err != nil:
		return nil, fmt.Errorf("evaluating expression: %w", err)
	case exc != nil:
		return nil, fmt.Errorf("evaluating expression: %w", exc)
	case res == nil:
		return nil, nil
	}

	return res.Value, nil
}
