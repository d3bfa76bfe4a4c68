package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	k6metrics "go.k6.io/k6/metrics"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultAPIBase is used when the hosting element carries no API URL.
	DefaultAPIBase = "http://localhost:8000"

	attrTestID = "data-test-id"
	attrAPIURL = "data-api-url"
)

// Options stores the SDK options.
type Options struct {
	TestID  string
	APIBase string

	// AssignmentTimeout bounds a single assignment request. Zero leaves
	// the request unbounded.
	AssignmentTimeout time.Duration

	// MetricTags are added to every metric sample and span.
	MetricTags map[string]string
	// Samples receives metric samples. Metrics are dropped when nil.
	Samples chan<- k6metrics.SampleContainer
	// Registry is the k6 metrics registry to register metrics on.
	Registry *k6metrics.Registry
}

// NewOptions creates a default set of SDK options.
func NewOptions() *Options {
	return &Options{
		APIBase:    DefaultAPIBase,
		MetricTags: make(map[string]string),
	}
}

// Validate validates the SDK options.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.TestID) == "" {
		return ErrMissingTestID
	}
	if o.AssignmentTimeout < 0 {
		return fmt.Errorf("invalid assignment timeout %s: must not be negative", o.AssignmentTimeout)
	}

	return nil
}

func (o *Options) endpoint(path string) string {
	base := o.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	return strings.TrimRight(base, "/") + path
}

// ParseScriptAttributes reads the SDK options from the script element
// hosting the SDK in an HTML page. The hosting element is the last script
// element carrying a data-test-id attribute, or the last script element
// when none does. The options are not validated.
func ParseScriptAttributes(r io.Reader) (*Options, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	var last, tagged *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			last = n
			if _, ok := htmlAttr(n, attrTestID); ok {
				tagged = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	opts := NewOptions()
	script := tagged
	if script == nil {
		script = last
	}
	if script == nil {
		return opts, nil
	}
	if v, ok := htmlAttr(script, attrTestID); ok {
		opts.TestID = strings.TrimSpace(v)
	}
	if v, ok := htmlAttr(script, attrAPIURL); ok && strings.TrimSpace(v) != "" {
		opts.APIBase = strings.TrimSpace(v)
	}

	return opts, nil
}

func htmlAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
