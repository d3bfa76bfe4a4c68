package api

// ReadyState mirrors document.readyState.
type ReadyState string

// Document ready states.
const (
	ReadyStateLoading     ReadyState = "loading"
	ReadyStateInteractive ReadyState = "interactive"
	ReadyStateComplete    ReadyState = "complete"
)

// Ready reports whether the DOM can be observed.
func (r ReadyState) Ready() bool {
	return r == ReadyStateInteractive || r == ReadyStateComplete
}

// ClickListener receives the target node of every click.
type ClickListener func(target Node)

// Document is the public interface of the page hosting the SDK.
type Document interface {
	// ReadyState returns the current loading state of the document.
	ReadyState() ReadyState
	// OnDOMContentLoaded registers fn to run once when the DOM becomes
	// interactive.
	OnDOMContentLoaded(fn func())
	// AddClickListener registers a capturing click listener on the
	// document root.
	AddClickListener(fn ClickListener)
}
