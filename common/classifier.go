package common

import (
	"strings"

	"github.com/grafana/xk6-abtest/api"
)

const (
	tagButton = "BUTTON"
	tagInput  = "INPUT"
	tagAnchor = "A"

	// fallbackLabel is used when a control has neither a type nor a tag.
	fallbackLabel = "button"
)

// Classify walks from target up to the page root and returns the label of
// the first actionable control on the way. It returns false when the click
// did not land on or inside an actionable control.
func Classify(target api.Node) (string, bool) {
	for n := target; n != nil && !n.IsRoot(); n = n.Parent() {
		if isActionable(n) {
			return controlLabel(n), true
		}
	}

	return "", false
}

// isActionable reports whether n is a button, a button-like input, an
// anchor with a click handler or anything with role="button".
func isActionable(n api.Node) bool {
	switch n.TagName() {
	case tagButton:
		return true
	case tagInput:
		if t := effectiveType(n); t == "button" || t == "submit" {
			return true
		}
	case tagAnchor:
		if n.HasClickHandler() {
			return true
		}
	}
	role, _ := n.Attribute("role")

	return role == "button"
}

// controlLabel picks the first non-empty value among aria-label, text
// content, value and placeholder, then falls back to the type or tag.
func controlLabel(n api.Node) string {
	if v, ok := n.Attribute("aria-label"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(n.TextContent()); v != "" {
		return v
	}
	for _, name := range [...]string{"value", "placeholder"} {
		if v, ok := n.Attribute(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}

	if t := effectiveType(n); t != "" {
		return t
	}
	if tag := n.TagName(); tag != "" {
		return tag
	}

	return fallbackLabel
}

// effectiveType returns the type a browser reports for n, applying the
// defaults of button and input elements.
func effectiveType(n api.Node) string {
	if t, ok := n.Attribute("type"); ok {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			return t
		}
	}
	switch n.TagName() {
	case tagButton:
		return "submit"
	case tagInput:
		return "text"
	}

	return ""
}
