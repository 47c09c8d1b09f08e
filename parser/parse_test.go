package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowweb/willow/parser/dom"
)

func parseDump(t *testing.T, input string, opts ...Option) (*dom.Node, string, *Parser) {
	t.Helper()
	p := NewParser(opts...)
	doc, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc, doc.String(), p
}

func TestParseDocumentSkeleton(t *testing.T) {
	t.Parallel()

	_, dump, p := parseDump(t, `<!DOCTYPE html><p>hi</p>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       "hi"`,
	}, "\n")
	assert.Equal(t, want, dump)
	assert.Empty(t, p.Errors())
}

func TestParseImpliedElements(t *testing.T) {
	t.Parallel()

	// No doctype, no html/head/body: everything gets synthesized and the
	// document ends up in quirks mode.
	doc, dump, p := parseDump(t, `hello`)
	want := strings.Join([]string{
		`#document`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     "hello"`,
	}, "\n")
	assert.Equal(t, want, dump)
	assert.Equal(t, dom.Quirks, doc.Document.Mode)
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, ErrUnexpectedToken, p.Errors()[0].Kind)
}

func TestParseQuirksModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  dom.QuirksMode
	}{
		{"standard doctype", `<!DOCTYPE html><p>x`, dom.NoQuirks},
		{"missing doctype", `<p>x`, dom.Quirks},
		{
			"legacy public id",
			`<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN"><p>x`,
			dom.Quirks,
		},
		{
			"limited quirks public id",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd"><p>x`,
			dom.LimitedQuirks,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, _, _ := parseDump(t, tc.input)
			assert.Equal(t, tc.want, doc.Document.Mode)
		})
	}
}

func TestParseMisnestedFormatting(t *testing.T) {
	t.Parallel()

	// The classic adoption agency case: the <b> is split around the
	// paragraph boundary and "3" ends up unformatted inside the <p>.
	_, dump, _ := parseDump(t, `<b>1<p>2</b>3`)
	want := strings.Join([]string{
		`#document`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <b>`,
		`|       "1"`,
		`|     <p>`,
		`|       <b>`,
		`|         "2"`,
		`|       "3"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseAdoptionAgencyRestructure(t *testing.T) {
	t.Parallel()

	// The <b> end tag crosses both the <i> and the <p>. The agency splits
	// the italic run around the paragraph and clones the bold run back
	// inside it, keeping the text in source order.
	_, dump, _ := parseDump(t, `<b>1<i>2<p>3</b>4</p>5</i>`)
	want := strings.Join([]string{
		`#document`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <b>`,
		`|       "1"`,
		`|       <i>`,
		`|         "2"`,
		`|     <i>`,
		`|       <p>`,
		`|         <b>`,
		`|           "3"`,
		`|         "4"`,
		`|       "5"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseFormattingReconstruction(t *testing.T) {
	t.Parallel()

	// The unclosed <b> stays in the active formatting list and is
	// reconstructed inside the second paragraph.
	_, dump, p := parseDump(t, `<!DOCTYPE html><p><b>x</p><p>y</p>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       <b>`,
		`|         "x"`,
		`|     <p>`,
		`|       <b>`,
		`|         "y"`,
	}, "\n")
	assert.Equal(t, want, dump)

	var kinds []ErrorKind
	for _, pe := range p.Errors() {
		kinds = append(kinds, pe.Kind)
	}
	assert.Contains(t, kinds, ErrMissingEndTag)
}

func TestParseFormattingReconstructionCap(t *testing.T) {
	t.Parallel()

	// Four identical <b> elements, but only three survive in the active
	// formatting list, so the second paragraph reopens exactly three.
	_, dump, _ := parseDump(t, `<!DOCTYPE html><p><b><b><b><b>x</p><p>y`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       <b>`,
		`|         <b>`,
		`|           <b>`,
		`|             <b>`,
		`|               "x"`,
		`|     <p>`,
		`|       <b>`,
		`|         <b>`,
		`|           <b>`,
		`|             "y"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseTableFosterParenting(t *testing.T) {
	t.Parallel()

	_, dump, p := parseDump(t, `<!DOCTYPE html><table>x<td>y</td></table>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     "x"`,
		`|     <table>`,
		`|       <tbody>`,
		`|         <tr>`,
		`|           <td>`,
		`|             "y"`,
	}, "\n")
	assert.Equal(t, want, dump)

	var kinds []ErrorKind
	for _, pe := range p.Errors() {
		kinds = append(kinds, pe.Kind)
	}
	assert.Contains(t, kinds, ErrFosterParentedContent)
}

func TestParseTableSections(t *testing.T) {
	t.Parallel()

	_, dump, p := parseDump(t,
		`<!DOCTYPE html><table><caption>c</caption><colgroup><col></colgroup><tr><th>h</th><td>d</td></tr></table>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <table>`,
		`|       <caption>`,
		`|         "c"`,
		`|       <colgroup>`,
		`|         <col>`,
		`|       <tbody>`,
		`|         <tr>`,
		`|           <th>`,
		`|             "h"`,
		`|           <td>`,
		`|             "d"`,
	}, "\n")
	assert.Equal(t, want, dump)
	assert.Empty(t, p.Errors())
}

func TestParseVoidElements(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><p>a<br>b<img src="i">c`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       "a"`,
		`|       <br>`,
		`|       "b"`,
		`|       <img>`,
		`|         src="i"`,
		`|       "c"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseListItemAutoClose(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><ul><li>a<li>b</ul>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <ul>`,
		`|       <li>`,
		`|         "a"`,
		`|       <li>`,
		`|         "b"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseHeadingAutoClose(t *testing.T) {
	t.Parallel()

	_, dump, p := parseDump(t, `<!DOCTYPE html><h1>a<h2>b`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <h1>`,
		`|       "a"`,
		`|     <h2>`,
		`|       "b"`,
	}, "\n")
	assert.Equal(t, want, dump)
	require.NotEmpty(t, p.Errors())
}

func TestParseSelectOptions(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><select><option>a<option>b</select>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <select>`,
		`|       <option>`,
		`|         "a"`,
		`|       <option>`,
		`|         "b"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseHeadContent(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><head><title>a<b>c</title><meta charset="utf-8"></head><body>x`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|     <title>`,
		`|       "a<b>c"`,
		`|     <meta>`,
		`|       charset="utf-8"`,
		`|   <body>`,
		`|     "x"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseTemplateContents(t *testing.T) {
	t.Parallel()

	// Table parts are legal inside a template even without a table.
	_, dump, _ := parseDump(t, `<!DOCTYPE html><head><template><td>x</td></template></head>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|     <template>`,
		`|       <td>`,
		`|         "x"`,
		`|   <body>`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseTemplateInsideTable(t *testing.T) {
	t.Parallel()

	// Template content belongs to the template even when the template
	// sits inside a table; it must not get foster-parented out.
	_, dump, _ := parseDump(t, `<!DOCTYPE html><table><template>x</template></table>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <table>`,
		`|       <template>`,
		`|         "x"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseFosterParentingInsideTemplate(t *testing.T) {
	t.Parallel()

	// A table opened inside a template fosters stray text to the
	// template, never past its boundary.
	_, dump, p := parseDump(t, `<!DOCTYPE html><template><table>y</table></template>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|     <template>`,
		`|       "y"`,
		`|       <table>`,
		`|   <body>`,
	}, "\n")
	assert.Equal(t, want, dump)

	var kinds []ErrorKind
	for _, pe := range p.Errors() {
		kinds = append(kinds, pe.Kind)
	}
	assert.Contains(t, kinds, ErrFosterParentedContent)
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!-- a --><!DOCTYPE html><p>x</p><!-- b -->`)
	want := strings.Join([]string{
		`#document`,
		`| <!--  a  -->`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       "x"`,
		`|     <!--  b  -->`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseForeignContent(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><p><svg><circle r="1"/></svg>done`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       <svg svg>`,
		`|         <svg circle>`,
		`|           r="1"`,
		`|       "done"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseCDATAInForeignContent(t *testing.T) {
	t.Parallel()

	_, dump, _ := parseDump(t, `<!DOCTYPE html><svg><![CDATA[a<b]]></svg>`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <svg svg>`,
		`|       "a<b"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParsePreNewline(t *testing.T) {
	t.Parallel()

	// The newline right after <pre> is dropped, later ones are kept.
	_, dump, _ := parseDump(t, "<!DOCTYPE html><pre>\na\nb</pre>")
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <pre>`,
		`|       "a` + "\n" + `b"`,
	}, "\n")
	assert.Equal(t, want, dump)
}

func TestParseStrayEndTagIgnored(t *testing.T) {
	t.Parallel()

	_, dump, p := parseDump(t, `<!DOCTYPE html><p>a</div>b`)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <p>`,
		`|       "ab"`,
	}, "\n")
	assert.Equal(t, want, dump)
	require.NotEmpty(t, p.Errors())
}

func TestParseNeverFailsOnMalformedInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<`,
		`</`,
		`<!`,
		`<p <div</`,
		`<table><table><table>`,
		`</b></b></b>`,
		`<!DOCTYPE`,
		`<a href=`,
		`<select><table><tr><td>`,
		strings.Repeat(`<b><i>`, 50),
	}
	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			p := NewParser()
			doc, err := p.Parse(strings.NewReader(input))
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.NotNil(t, doc.DocumentElement())
		})
	}
}
