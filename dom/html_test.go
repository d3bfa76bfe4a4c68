package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/xk6-abtest/api"
)

const page = `<!doctype html>
<html><body>
	<section id="s"><button id="b" aria-label="Buy" type="button">Buy <b id="bold">now</b></button></section>
	<a id="a" href="/x">Link</a>
	<a id="on" onclick="f()">On</a>
</body></html>`

func parsePage(t *testing.T) *Document {
	t.Helper()

	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestHTMLNode(t *testing.T) {
	t.Parallel()

	doc := parsePage(t)
	b := wrap(doc.GetElementByID("bold"), doc)

	assert.Equal(t, "B", b.TagName())
	assert.Equal(t, "now", b.TextContent())
	assert.False(t, b.IsRoot())

	button := b.Parent()
	require.NotNil(t, button)
	assert.Equal(t, "BUTTON", button.TagName())
	assert.Equal(t, "Buy now", button.TextContent())
	label, ok := button.Attribute("aria-label")
	assert.True(t, ok)
	assert.Equal(t, "Buy", label)
	_, ok = button.Attribute("value")
	assert.False(t, ok)

	section := button.Parent()
	assert.Equal(t, "SECTION", section.TagName())
	body := section.Parent()
	assert.Equal(t, "BODY", body.TagName())
	assert.True(t, body.IsRoot())

	text := wrap(doc.GetElementByID("bold").FirstChild, doc)
	assert.Empty(t, text.TagName())
	assert.False(t, text.IsRoot())

	assert.True(t, wrap(doc.Root(), doc).IsRoot())
	assert.Nil(t, wrap(doc.Root(), doc).Parent())
	assert.Nil(t, NewHTMLNode(nil))
}

func TestHTMLNodeClickHandler(t *testing.T) {
	t.Parallel()

	doc := parsePage(t)
	a := doc.GetElementByID("a")
	assert.False(t, wrap(a, doc).HasClickHandler())
	assert.True(t, wrap(doc.GetElementByID("on"), doc).HasClickHandler())

	doc.SetClickHandler(a)
	assert.True(t, wrap(a, doc).HasClickHandler())
	assert.False(t, NewHTMLNode(a).HasClickHandler(), "handlers belong to the document")
}

func TestDocumentReadyState(t *testing.T) {
	t.Parallel()

	doc := parsePage(t)
	assert.Equal(t, api.ReadyStateLoading, doc.ReadyState())

	var fired int
	doc.OnDOMContentLoaded(func() { fired++ })
	doc.OnDOMContentLoaded(func() { fired++ })

	doc.SetReadyState(api.ReadyStateInteractive)
	assert.Equal(t, 2, fired)
	doc.SetReadyState(api.ReadyStateComplete)
	assert.Equal(t, 2, fired)
	assert.Equal(t, api.ReadyStateComplete, doc.ReadyState())

	doc.OnDOMContentLoaded(func() { fired++ })
	doc.SetReadyState(api.ReadyStateComplete)
	assert.Equal(t, 2, fired)
}

func TestDocumentClick(t *testing.T) {
	t.Parallel()

	doc := parsePage(t)
	var got []string
	doc.AddClickListener(func(target api.Node) { got = append(got, "1:"+target.TagName()) })
	doc.AddClickListener(func(target api.Node) { got = append(got, "2:"+target.TagName()) })
	assert.Equal(t, 2, doc.Listeners())

	doc.Click(doc.GetElementByID("bold"))
	doc.Click(nil)
	assert.Equal(t, []string{"1:B", "2:B"}, got)
}

func TestDocumentQueries(t *testing.T) {
	t.Parallel()

	doc := parsePage(t)
	assert.Len(t, doc.GetElementsByTagName("A"), 2)
	assert.Nil(t, doc.GetElementByID("missing"))
	require.NotNil(t, doc.Body())

	nodes, err := doc.AppendHTML(doc.Body(), `<button id="late">Late</button><span>x</span>`)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	late := doc.GetElementByID("late")
	require.NotNil(t, late)
	assert.Same(t, doc.Body(), late.Parent)
	assert.Len(t, doc.GetElementsByTagName("button"), 2)
}
