package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpt "github.com/chromedp/cdproto/target"
)

// Target exposes the CDP Target domain actions.
type Target interface {
	CreateBrowserContext(ctx context.Context, disposeOnDetach bool) (id string, err error)
	DisposeBrowserContext(ctx context.Context, id string) error
	CreateTarget(ctx context.Context, url, browserContextID string) (cdpt.ID, error)
	AttachToTarget(ctx context.Context, id cdpt.ID) (cdpt.SessionID, error)
}

var _ Target = &target{}

type target struct {
	exec cdp.Executor
}

// NewTarget returns a new CDP Target domain wrapper.
func NewTarget(exec cdp.Executor) Target {
	return &target{exec}
}

func (t *target) CreateBrowserContext(ctx context.Context, disposeOnDetach bool) (id string, err error) {
	action := cdpt.CreateBrowserContext().WithDisposeOnDetach(disposeOnDetach)
	bctxID, err := action.Do(cdp.WithExecutor(ctx, t.exec))
	if err != nil {
		return "", fmt.Errorf("creating browser context: %w", err)
	}

	return string(bctxID), nil
}

func (t *target) DisposeBrowserContext(ctx context.Context, id string) error {
	action := cdpt.DisposeBrowserContext(cdp.BrowserContextID(id))
	if err := action.Do(cdp.WithExecutor(ctx, t.exec)); err != nil {
		return fmt.Errorf("disposing browser context %q: %w", id, err)
	}

	return nil
}

func (t *target) CreateTarget(ctx context.Context, url, browserContextID string) (cdpt.ID, error) {
	action := cdpt.CreateTarget(url)
	if browserContextID != "" {
		action = action.WithBrowserContextID(cdp.BrowserContextID(browserContextID))
	}
	id, err := action.Do(cdp.WithExecutor(ctx, t.exec))
	if err != nil {
		return "", fmt.Errorf("creating target: %w", err)
	}

	return id, nil
}

// AttachToTarget attaches in flat mode: messages for the target carry the
// returned session ID.
func (t *target) AttachToTarget(ctx context.Context, id cdpt.ID) (cdpt.SessionID, error) {
	action := cdpt.AttachToTarget(id).WithFlatten(true)
	sid, err := action.Do(cdp.WithExecutor(ctx, t.exec))
	if err != nil {
		return "", fmt.Errorf("attaching to target %q: %w", id, err)
	}

	return sid, nil
}
