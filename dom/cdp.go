package dom

import (
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"gopkg.in/guregu/null.v3"

	"github.com/grafana/xk6-abtest/api"
)

var _ api.Node = &CDPNode{}

// Properties are the live value and type of a form control. They can
// differ from the attributes once script or the user changed the value,
// or when the browser normalised an unknown type.
type Properties struct {
	Value null.String
	Type  null.String
}

// CDPNode adapts a DevTools protocol node to api.Node. The parent chain
// is followed through cdp.Node.Parent.
type CDPNode struct {
	n        *cdp.Node
	handlers map[cdp.NodeID]bool
	props    map[cdp.NodeID]Properties
}

// NewCDPNode wraps n. handlers marks the nodes carrying a click handler
// that is not visible as an onclick attribute. It returns nil for a nil n.
func NewCDPNode(n *cdp.Node, handlers map[cdp.NodeID]bool) *CDPNode {
	if n == nil {
		return nil
	}
	return &CDPNode{n: n, handlers: handlers}
}

// WithProperties attaches live properties, keyed by node id, to c and
// the ancestors reached from it.
func (c *CDPNode) WithProperties(props map[cdp.NodeID]Properties) *CDPNode {
	c.props = props
	return c
}

// Node returns the wrapped node.
func (c *CDPNode) Node() *cdp.Node {
	return c.n
}

// TagName implements api.Node.
func (c *CDPNode) TagName() string {
	if c.n.NodeType != cdp.NodeTypeElement {
		return ""
	}
	return strings.ToUpper(c.n.NodeName)
}

// Attribute implements api.Node. Attributes are stored as a flat
// name, value list. For value and type the live property wins over the
// attribute when one was captured.
func (c *CDPNode) Attribute(name string) (string, bool) {
	if p, ok := c.props[c.n.NodeID]; ok {
		switch {
		case name == "value" && p.Value.Valid:
			return p.Value.String, true
		case name == "type" && p.Type.Valid:
			return p.Type.String, true
		}
	}
	for i := 0; i+1 < len(c.n.Attributes); i += 2 {
		if c.n.Attributes[i] == name {
			return c.n.Attributes[i+1], true
		}
	}
	return "", false
}

// TextContent implements api.Node.
func (c *CDPNode) TextContent() string {
	var b strings.Builder
	var walk func(n *cdp.Node)
	walk = func(n *cdp.Node) {
		if n.NodeType == cdp.NodeTypeText {
			b.WriteString(n.NodeValue)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(c.n)

	return b.String()
}

// HasClickHandler implements api.Node.
func (c *CDPNode) HasClickHandler() bool {
	if _, ok := c.Attribute("onclick"); ok {
		return true
	}
	return c.handlers[c.n.NodeID]
}

// Parent implements api.Node.
func (c *CDPNode) Parent() api.Node {
	if c.n.Parent == nil {
		return nil
	}
	return NewCDPNode(c.n.Parent, c.handlers).WithProperties(c.props)
}

// IsRoot implements api.Node.
func (c *CDPNode) IsRoot() bool {
	if c.n.NodeType == cdp.NodeTypeDocument {
		return true
	}
	switch c.TagName() {
	case "BODY", "HTML":
		return true
	}
	return false
}
