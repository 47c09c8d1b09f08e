package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowweb/willow/parser/dom"
)

func fragmentContext(name string) *dom.Node {
	doc := dom.NewDocument()
	return dom.NewElement(doc, name, dom.HTMLNamespace, nil)
}

func TestParseFragmentRowContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<td>a</td><td>b</td>`), fragmentContext("tr"))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	for i, want := range []string{"a", "b"} {
		cell := nodes[i]
		assert.Equal(t, "td", cell.Name)
		require.Len(t, cell.ChildNodes, 1)
		assert.Equal(t, want, cell.ChildNodes[0].Text.Data)
	}
	assert.Nil(t, nodes[0].Parent)
}

func TestParseFragmentBodyContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<p>x</p>y`), fragmentContext("body"))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "p", nodes[0].Name)
	assert.Equal(t, "y", nodes[1].Text.Data)
}

func TestParseFragmentTextareaContextIsRawText(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<b>bold</b>`), fragmentContext("textarea"))
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	require.Equal(t, dom.TextNode, nodes[0].Type)
	assert.Equal(t, "<b>bold</b>", nodes[0].Text.Data)
}

func TestParseFragmentScriptContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`if (a < b) go();`), fragmentContext("script"))
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	require.Equal(t, dom.TextNode, nodes[0].Type)
	assert.Equal(t, "if (a < b) go();", nodes[0].Text.Data)
}

func TestParseFragmentSelectContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<option>a<option>b`), fragmentContext("select"))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "option", nodes[0].Name)
	assert.Equal(t, "option", nodes[1].Name)
}

func TestParseFragmentStrayTableParts(t *testing.T) {
	t.Parallel()

	// Cell markup without a surrounding table context melts down to its
	// text content, the way innerHTML on a div behaves.
	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<td>a</td>`), fragmentContext("div"))
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	require.Equal(t, dom.TextNode, nodes[0].Type)
	assert.Equal(t, "a", nodes[0].Text.Data)
	assert.NotEmpty(t, p.Errors())
}

func TestParseFragmentTemplateContext(t *testing.T) {
	t.Parallel()

	p := NewParser()
	nodes, err := p.ParseFragment(strings.NewReader(`<td>x</td>`), fragmentContext("template"))
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	assert.Equal(t, "td", nodes[0].Name)
}

func TestParseFragmentContextValidation(t *testing.T) {
	t.Parallel()

	p := NewParser()

	_, err := p.ParseFragment(strings.NewReader(`x`), nil)
	assert.ErrorIs(t, err, ErrNilContext)

	doc := dom.NewDocument()
	_, err = p.ParseFragment(strings.NewReader(`x`), dom.NewText(doc, "t"))
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = p.ParseFragment(strings.NewReader(``), fragmentContext("div"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}
