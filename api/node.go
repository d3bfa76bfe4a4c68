package api

// Node is the public interface of a DOM node as seen by the click
// classifier. Implementations exist for parsed HTML trees and for nodes
// received over the DevTools protocol.
type Node interface {
	// TagName returns the upper-cased element name ("BUTTON", "A", ...)
	// or an empty string for non-element nodes.
	TagName() string
	// Attribute returns the value of the named attribute and whether
	// the attribute is present.
	Attribute(name string) (string, bool)
	// TextContent returns the concatenated text of all descendants.
	TextContent() string
	// HasClickHandler reports whether the element carries a registered
	// click behaviour (an onclick handler).
	HasClickHandler() bool
	// Parent returns the parent element or nil at the top of the tree.
	Parent() Node
	// IsRoot reports whether the node is the page root boundary at
	// which an upward walk stops.
	IsRoot() bool
}
