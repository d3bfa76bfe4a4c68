// Package dom adapts concrete DOM representations to api.Node and
// provides an in-process api.Document over a parsed HTML tree.
package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/grafana/xk6-abtest/api"
)

var _ api.Node = &HTMLNode{}

// HTMLNode adapts an *html.Node to api.Node.
type HTMLNode struct {
	n   *html.Node
	doc *Document
}

// NewHTMLNode wraps n. It returns nil for a nil n.
func NewHTMLNode(n *html.Node) *HTMLNode {
	return wrap(n, nil)
}

func wrap(n *html.Node, doc *Document) *HTMLNode {
	if n == nil {
		return nil
	}
	return &HTMLNode{n: n, doc: doc}
}

// Node returns the wrapped node.
func (h *HTMLNode) Node() *html.Node {
	return h.n
}

// TagName implements api.Node.
func (h *HTMLNode) TagName() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(h.n.Data)
}

// Attribute implements api.Node.
func (h *HTMLNode) Attribute(name string) (string, bool) {
	return attr(h.n, name)
}

// TextContent implements api.Node.
func (h *HTMLNode) TextContent() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(h.n)

	return b.String()
}

// HasClickHandler implements api.Node. An onclick attribute or a handler
// registered on the owning Document counts.
func (h *HTMLNode) HasClickHandler() bool {
	if _, ok := attr(h.n, "onclick"); ok {
		return true
	}
	return h.doc != nil && h.doc.hasClickHandler(h.n)
}

// Parent implements api.Node.
func (h *HTMLNode) Parent() api.Node {
	if h.n.Parent == nil {
		return nil
	}
	return wrap(h.n.Parent, h.doc)
}

// IsRoot implements api.Node. The body, the html element and the
// document node bound the upward walk.
func (h *HTMLNode) IsRoot() bool {
	switch {
	case h.n.Type == html.DocumentNode:
		return true
	case h.n.Type != html.ElementNode:
		return false
	}
	return h.n.DataAtom == atom.Body || h.n.DataAtom == atom.Html
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

var _ api.Document = &Document{}

// Document is an api.Document over a parsed HTML tree. Clicks are
// dispatched explicitly with Click.
type Document struct {
	root *html.Node

	mu         sync.Mutex
	readyState api.ReadyState
	readyFired bool
	readyFns   []func()
	listeners  []api.ClickListener
	handlers   map[*html.Node]bool
}

// Parse parses an HTML page into a Document in the loading state.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML document: %w", err)
	}
	return NewDocument(root, api.ReadyStateLoading), nil
}

// NewDocument returns a Document over root in the given state.
func NewDocument(root *html.Node, state api.ReadyState) *Document {
	return &Document{
		root:       root,
		readyState: state,
		readyFired: state.Ready(),
		handlers:   make(map[*html.Node]bool),
	}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// ReadyState implements api.Document.
func (d *Document) ReadyState() api.ReadyState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readyState
}

// SetReadyState moves the document to state. The first move to a ready
// state fires the DOMContentLoaded callbacks; later moves don't.
func (d *Document) SetReadyState(state api.ReadyState) {
	d.mu.Lock()
	d.readyState = state
	var fns []func()
	if state.Ready() && !d.readyFired {
		d.readyFired = true
		fns, d.readyFns = d.readyFns, nil
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnDOMContentLoaded implements api.Document. Callbacks registered after
// the event fired are never called, as in a browser.
func (d *Document) OnDOMContentLoaded(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readyFired {
		return
	}
	d.readyFns = append(d.readyFns, fn)
}

// AddClickListener implements api.Document.
func (d *Document) AddClickListener(fn api.ClickListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Listeners returns the number of registered click listeners.
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Click dispatches a click on target to every listener in registration
// order.
func (d *Document) Click(target *html.Node) {
	if target == nil {
		return
	}
	d.mu.Lock()
	listeners := append([]api.ClickListener{}, d.listeners...)
	d.mu.Unlock()

	node := d.Node(target)
	for _, fn := range listeners {
		fn(node)
	}
}

// Node wraps n as a node of d, so that click handlers registered with
// SetClickHandler are visible through it.
func (d *Document) Node(n *html.Node) *HTMLNode {
	return wrap(n, d)
}

// SetClickHandler registers a click behaviour on n, as assigning
// element.onclick would.
func (d *Document) SetClickHandler(n *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[n] = true
}

func (d *Document) hasClickHandler(n *html.Node) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handlers[n]
}

// Body returns the body element, if any.
func (d *Document) Body() *html.Node {
	return d.find(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
}

// GetElementByID returns the first element whose id is id.
func (d *Document) GetElementByID(id string) *html.Node {
	return d.find(func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	})
}

// GetElementsByTagName returns all elements named tag, in document order.
func (d *Document) GetElementsByTagName(tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var found []*html.Node
	d.walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		return false
	})
	return found
}

// AppendHTML parses fragment in the context of parent and appends the
// resulting nodes to it.
func (d *Document) AppendHTML(parent *html.Node, fragment string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nodes, nil
}

func (d *Document) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	d.walk(d.root, func(n *html.Node) bool {
		if match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

// walk visits n and its descendants in document order until visit
// returns true.
func (d *Document) walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if d.walk(c, visit) {
			return true
		}
	}
	return false
}
