package devserver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grafana/xk6-abtest/common"
)

// ParseTestFlag parses a test definition of the form
// "testId:variant=percent,variant=percent". Every variant gets a single
// "main" section pointing at /content/<testId>/<variant>.html.
func ParseTestFlag(s string) (Test, error) {
	id, arms, ok := strings.Cut(s, ":")
	id = strings.TrimSpace(id)
	if !ok || id == "" || strings.TrimSpace(arms) == "" {
		return Test{}, fmt.Errorf("invalid test %q: want testId:variant=percent,...", s)
	}

	t := Test{ID: id, Name: id}
	seen := make(map[string]bool)
	for _, arm := range strings.Split(arms, ",") {
		name, pct, ok := strings.Cut(arm, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return Test{}, fmt.Errorf("invalid variant %q in test %q", arm, id)
		}
		if seen[name] {
			return Test{}, fmt.Errorf("duplicate variant %q in test %q", name, id)
		}
		seen[name] = true

		dist, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return Test{}, fmt.Errorf("invalid distribution for variant %q: %w", name, err)
		}
		t.Variants = append(t.Variants, Variant{
			ID:           name,
			Distribution: dist,
			Sections: []common.Section{{
				"id":         "main",
				"contentUrl": fmt.Sprintf("/content/%s/%s.html", id, name),
			}},
		})
	}
	if err := validateDistribution(t.Variants); err != nil {
		return Test{}, fmt.Errorf("test %q: %w", id, err)
	}

	return t, nil
}
