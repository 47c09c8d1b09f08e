package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildDetachesFromOldParent(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	a := NewElement(doc, "a", HTMLNamespace, nil)
	b := NewElement(doc, "b", HTMLNamespace, nil)
	child := NewText(doc, "x")

	a.AppendChild(child)
	require.Equal(t, a, child.Parent)

	b.AppendChild(child)
	assert.Equal(t, b, child.Parent)
	assert.Empty(t, a.ChildNodes)
	require.Len(t, b.ChildNodes, 1)
}

func TestSiblingLinks(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	parent := NewElement(doc, "div", HTMLNamespace, nil)
	first := NewText(doc, "1")
	second := NewText(doc, "2")
	third := NewText(doc, "3")
	parent.AppendChild(first)
	parent.AppendChild(third)
	parent.InsertBefore(second, third)

	assert.Equal(t, []*Node{first, second, third}, parent.ChildNodes)
	assert.Equal(t, second, first.NextSibling)
	assert.Equal(t, first, second.PrevSibling)
	assert.Equal(t, third, second.NextSibling)
	assert.Equal(t, second, third.PrevSibling)

	parent.RemoveChild(second)
	assert.Equal(t, third, first.NextSibling)
	assert.Equal(t, first, third.PrevSibling)
	assert.Nil(t, second.Parent)
	assert.Nil(t, second.PrevSibling)
	assert.Nil(t, second.NextSibling)
}

func TestInsertBeforeNilRefAppends(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	parent := NewElement(doc, "div", HTMLNamespace, nil)
	a := NewText(doc, "a")
	b := NewText(doc, "b")
	parent.InsertBefore(a, nil)
	parent.InsertBefore(b, nil)
	assert.Equal(t, []*Node{a, b}, parent.ChildNodes)
}

func TestContains(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	outer := NewElement(doc, "div", HTMLNamespace, nil)
	inner := NewElement(doc, "span", HTMLNamespace, nil)
	text := NewText(doc, "x")
	doc.AppendChild(outer)
	outer.AppendChild(inner)
	inner.AppendChild(text)

	assert.True(t, doc.Contains(text))
	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))
}

func TestCloneDeep(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	el := NewElement(doc, "div", HTMLNamespace, AttrList{{Name: "id", Value: "x"}})
	el.AppendChild(NewText(doc, "hello"))
	doc.AppendChild(el)

	clone := el.Clone(true)
	assert.Nil(t, clone.Parent)
	assert.Equal(t, "div", clone.Name)
	require.Len(t, clone.ChildNodes, 1)
	assert.Equal(t, "hello", clone.ChildNodes[0].Text.Data)

	// The clone's attributes are independent of the original's.
	clone.Element.Attributes.Set("id", "y")
	got, _ := el.Element.Attributes.Get("id")
	assert.Equal(t, "x", got)

	shallow := el.Clone(false)
	assert.Empty(t, shallow.ChildNodes)
}

func TestDocumentAccessors(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	html := NewElement(doc, "html", HTMLNamespace, nil)
	head := NewElement(doc, "head", HTMLNamespace, nil)
	body := NewElement(doc, "body", HTMLNamespace, nil)
	doc.AppendChild(NewDocumentType("html", "", ""))
	doc.AppendChild(html)
	html.AppendChild(head)
	html.AppendChild(body)

	assert.Equal(t, html, doc.DocumentElement())
	assert.Equal(t, head, doc.Head())
	assert.Equal(t, body, doc.Body())
	assert.Nil(t, html.DocumentElement())
}

func TestDumpBareNodes(t *testing.T) {
	t.Parallel()

	// A document with no children renders just its own line.
	doc := NewDocument()
	assert.Equal(t, "#document", doc.String())

	doc.AppendChild(NewElement(doc, "html", HTMLNamespace, nil))
	assert.Equal(t, "#document\n| <html>", doc.String())
}

func TestDumpFormat(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.AppendChild(NewDocumentType("html", "", ""))
	html := NewElement(doc, "html", HTMLNamespace, nil)
	doc.AppendChild(html)
	div := NewElement(doc, "div", HTMLNamespace, AttrList{
		{Name: "id", Value: "z"},
		{Name: "class", Value: "a"},
	})
	html.AppendChild(div)
	div.AppendChild(NewText(doc, "text"))
	div.AppendChild(NewComment(doc, "note"))
	svg := NewElement(doc, "svg", SVGNamespace, nil)
	div.AppendChild(svg)

	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <div>`,
		`|     class="a"`,
		`|     id="z"`,
		`|     "text"`,
		`|     <!-- note -->`,
		`|     <svg svg>`,
	}, "\n")
	assert.Equal(t, want, doc.String())
}

func TestAttrList(t *testing.T) {
	t.Parallel()

	var l AttrList
	l.Set("a", "1")
	l.Set("b", "2")
	l.Set("a", "3")
	require.Len(t, l, 2)
	got, ok := l.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", got)
	assert.False(t, l.Has("c"))

	l.Merge(AttrList{{Name: "b", Value: "ignored"}, {Name: "c", Value: "4"}})
	require.Len(t, l, 3)
	got, _ = l.Get("b")
	assert.Equal(t, "2", got)

	assert.True(t, l.Equal(AttrList{
		{Name: "c", Value: "4"}, {Name: "a", Value: "3"}, {Name: "b", Value: "2"},
	}))
	assert.False(t, l.Equal(AttrList{{Name: "a", Value: "3"}}))
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.AppendChild(NewDocumentType("html", "", ""))
	html := NewElement(doc, "html", HTMLNamespace, nil)
	doc.AppendChild(html)
	p := NewElement(doc, "p", HTMLNamespace, AttrList{{Name: "title", Value: `a"b`}})
	html.AppendChild(p)
	p.AppendChild(NewText(doc, `1 < 2 & 3 > 2`))
	p.AppendChild(NewElement(doc, "br", HTMLNamespace, nil))
	p.AppendChild(NewComment(doc, "c"))
	style := NewElement(doc, "style", HTMLNamespace, nil)
	style.AppendChild(NewText(doc, "a > b { color: red }"))
	html.AppendChild(style)

	got := Serialize(doc)
	assert.Equal(t,
		`<!DOCTYPE html><html>`+
			`<p title="a&quot;b">1 &lt; 2 &amp; 3 &gt; 2<br><!--c--></p>`+
			`<style>a > b { color: red }</style>`+
			`</html>`,
		got)
}
