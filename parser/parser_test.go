package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowweb/willow/parser/dom"
)

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	p := NewParser()
	doc, err := p.Parse(strings.NewReader(""))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseErrorCallback(t *testing.T) {
	t.Parallel()

	var seen []ParseError
	p := NewParser(WithErrorHandler(func(pe ParseError) {
		seen = append(seen, pe)
	}))
	_, err := p.Parse(strings.NewReader(`<!DOCTYPE html><!-- oops`))
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	pe := seen[0]
	assert.Equal(t, ErrUnexpectedEOF, pe.Kind)
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, 25, pe.Col)
	assert.Equal(t, seen, p.Errors())
}

func TestParseScriptHandlerSplicesOutput(t *testing.T) {
	t.Parallel()

	var scripts []string
	p := NewParser(
		WithScripting(true),
		WithScriptHandler(func(script string) string {
			scripts = append(scripts, script)
			if strings.Contains(script, "write") {
				return `<b>w</b>`
			}
			return ""
		}),
	)
	doc, err := p.Parse(strings.NewReader(
		`<!DOCTYPE html><body><script>document.write()</script>after`))
	require.NoError(t, err)

	require.Equal(t, []string{"document.write()"}, scripts)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|   <body>`,
		`|     <script>`,
		`|       "document.write()"`,
		`|     <b>`,
		`|       "w"`,
		`|     "after"`,
	}, "\n")
	assert.Equal(t, want, doc.String())
}

func TestParseScriptingFlagControlsNoscript(t *testing.T) {
	t.Parallel()

	const input = `<!DOCTYPE html><head><noscript><link></noscript></head>`

	// Scripting off: noscript contents are parsed as markup.
	p := NewParser()
	doc, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|     <noscript>`,
		`|       <link>`,
		`|   <body>`,
	}, "\n")
	assert.Equal(t, want, doc.String())

	// Scripting on: noscript is raw text.
	p = NewParser(WithScripting(true))
	doc, err = p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	want = strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <head>`,
		`|     <noscript>`,
		`|       "<link>"`,
		`|   <body>`,
	}, "\n")
	assert.Equal(t, want, doc.String())
}

func TestSerializeParsedDocument(t *testing.T) {
	t.Parallel()

	p := NewParser()
	doc, err := p.Parse(strings.NewReader(
		`<!DOCTYPE html><p id="one" class="two">a &amp; b</p><br>`))
	require.NoError(t, err)

	got := dom.Serialize(doc)
	assert.Equal(t,
		`<!DOCTYPE html><html><head></head><body>`+
			`<p id="one" class="two">a &amp; b</p><br></body></html>`,
		got)
}

func TestSerializeRawTextUnescaped(t *testing.T) {
	t.Parallel()

	p := NewParser()
	doc, err := p.Parse(strings.NewReader(
		`<!DOCTYPE html><script>if (a < b) go();</script>`))
	require.NoError(t, err)

	got := dom.Serialize(doc)
	assert.Contains(t, got, `<script>if (a < b) go();</script>`)
}

func TestSerializeRoundTripPreservesAttributes(t *testing.T) {
	t.Parallel()

	doc, err := NewParser().Parse(strings.NewReader(
		`<!DOCTYPE html><p b="2" a="1" c="3">x</p>`))
	require.NoError(t, err)
	first := dom.Serialize(doc)
	assert.Contains(t, first, `<p b="2" a="1" c="3">`)

	doc, err = NewParser().Parse(strings.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, first, dom.Serialize(doc))
}

func TestParserReusableAcrossDocuments(t *testing.T) {
	t.Parallel()

	p := NewParser()
	_, err := p.Parse(strings.NewReader(`<p>first`))
	require.NoError(t, err)
	first := len(p.Errors())
	require.NotZero(t, first)

	doc, err := p.Parse(strings.NewReader(`<!DOCTYPE html><p>second</p>`))
	require.NoError(t, err)
	assert.Equal(t, "second", doc.Body().ChildNodes[0].ChildNodes[0].Text.Data)
}
