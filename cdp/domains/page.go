package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpp "github.com/chromedp/cdproto/page"
)

// Page exposes the CDP Page domain actions.
type Page interface {
	Enable(context.Context) error
	AddScriptToEvaluateOnNewDocument(ctx context.Context, source string) error
	Navigate(ctx context.Context, url, referrer string) (loaderID string, err error)
}

var _ Page = &page{}

type page struct {
	exec cdp.Executor
}

// NewPage returns a new CDP Page domain wrapper.
func NewPage(exec cdp.Executor) Page {
	return &page{exec}
}

func (p *page) Enable(ctx context.Context) error {
	action := cdpp.Enable()
	if err := action.Do(cdp.WithExecutor(ctx, p.exec)); err != nil {
		return fmt.Errorf("enabling page CDP domain: %w", err)
	}

	return nil
}

func (p *page) AddScriptToEvaluateOnNewDocument(ctx context.Context, source string) error {
	action := cdpp.AddScriptToEvaluateOnNewDocument(source)
	if _, err := action.Do(cdp.WithExecutor(ctx, p.exec)); err != nil {
		return fmt.Errorf("adding script to evaluate on new document: %w", err)
	}

	return nil
}

func (p *page) Navigate(ctx context.Context, url, referrer string) (string, error) {
	action := cdpp.Navigate(url).WithReferrer(referrer)

	_, loaderID, errorText, err := action.Do(cdp.WithExecutor(ctx, p.exec))
	if err != nil {
		return "", fmt.Errorf("navigating to %q: %w", url, err)
	}
	if errorText != "" {
		return "", fmt.Errorf("navigating to %q: %s", url, errorText)
	}

	return loaderID.String(), nil
}
