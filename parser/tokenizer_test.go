package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(input string) (*Tokenizer, []Token) {
	tk := NewTokenizer(strings.NewReader(input))
	var toks []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return tk, toks
}

// textOf joins consecutive character tokens back into a string.
func textOf(toks []Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		if tok.Type == CharacterToken {
			sb.WriteString(tok.Data)
		}
	}
	return sb.String()
}

func TestTokenizeStartTagAttributes(t *testing.T) {
	t.Parallel()

	_, toks := tokenize(`<div id="a" class='b' data-x=c>`)
	require.Len(t, toks, 2)
	tag := toks[0]
	assert.Equal(t, StartTagToken, tag.Type)
	assert.Equal(t, "div", tag.Name)
	require.Len(t, tag.Attributes, 3)
	assert.Equal(t, "id", tag.Attributes[0].Name)
	assert.Equal(t, "a", tag.Attributes[0].Value)
	assert.Equal(t, "class", tag.Attributes[1].Name)
	assert.Equal(t, "b", tag.Attributes[1].Value)
	assert.Equal(t, "data-x", tag.Attributes[2].Name)
	assert.Equal(t, "c", tag.Attributes[2].Value)
	assert.Equal(t, EndOfFileToken, toks[1].Type)
}

func TestTokenizeUppercaseFolding(t *testing.T) {
	t.Parallel()

	_, toks := tokenize(`<DIV CLASS="x">text</DIV>`)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, "div", toks[0].Name)
	require.Len(t, toks[0].Attributes, 1)
	assert.Equal(t, "class", toks[0].Attributes[0].Name)
	assert.Equal(t, "x", toks[0].Attributes[0].Value)
	last := toks[len(toks)-2]
	assert.Equal(t, EndTagToken, last.Type)
	assert.Equal(t, "div", last.Name)
}

func TestTokenizeDuplicateAttributeDropped(t *testing.T) {
	t.Parallel()

	tk, toks := tokenize(`<div id="a" id="b">`)
	require.Len(t, toks, 2)
	require.Len(t, toks[0].Attributes, 1)
	assert.Equal(t, "a", toks[0].Attributes[0].Value)

	require.Len(t, tk.errs.errs, 1)
	assert.Equal(t, ErrDuplicateAttribute, tk.errs.errs[0].Kind)
}

func TestTokenizeEndTagAttributesCleared(t *testing.T) {
	t.Parallel()

	tk, toks := tokenize(`</div id="x">`)
	require.Len(t, toks, 2)
	assert.Equal(t, EndTagToken, toks[0].Type)
	assert.Empty(t, toks[0].Attributes)
	require.NotEmpty(t, tk.errs.errs)
	assert.Equal(t, ErrUnexpectedToken, tk.errs.errs[0].Kind)
}

func TestTokenizeSelfClosing(t *testing.T) {
	t.Parallel()

	_, toks := tokenize(`<br/>`)
	require.Len(t, toks, 2)
	assert.Equal(t, StartTagToken, toks[0].Type)
	assert.True(t, toks[0].SelfClosing)
}

func TestTokenizeCharacterReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"named", "a&amp;b", "a&b"},
		{"named no semicolon", "a&amp b", "a& b"},
		{"unknown name", "x&nosuchthing;y", "x&nosuchthing;y"},
		{"decimal", "&#65;", "A"},
		{"hex", "&#x41;", "A"},
		{"hex uppercase x", "&#X41;", "A"},
		{"bare ampersand", "fish & chips", "fish & chips"},
		{"numeric overflow", "&#x110000;", "�"},
		{"null reference", "&#0;", "�"},
		{"windows-1252 remap", "&#x80;", "€"},
		{"nbsp", "&nbsp;", " "},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, toks := tokenize(tc.input)
			assert.Equal(t, tc.want, textOf(toks))
		})
	}
}

func TestTokenizeLegacyReferenceInAttribute(t *testing.T) {
	t.Parallel()

	// "&not=" inside an attribute value must stay literal text.
	_, toks := tokenize(`<a href="?a=b&not=c">`)
	require.Len(t, toks, 2)
	href, ok := toks[0].Attributes.Get("href")
	require.True(t, ok)
	assert.Equal(t, "?a=b&not=c", href)

	// Outside an attribute the legacy form decodes.
	_, toks = tokenize("a&not b")
	assert.Equal(t, "a¬ b", textOf(toks))
}

func TestTokenizeComment(t *testing.T) {
	t.Parallel()

	_, toks := tokenize(`<!-- hello -->`)
	require.Len(t, toks, 2)
	assert.Equal(t, CommentToken, toks[0].Type)
	assert.Equal(t, " hello ", toks[0].Data)
}

func TestTokenizeTruncatedCommentRecovers(t *testing.T) {
	t.Parallel()

	tk, toks := tokenize(`<!-- oops`)
	require.Len(t, toks, 2)
	assert.Equal(t, CommentToken, toks[0].Type)
	assert.Equal(t, " oops", toks[0].Data)
	assert.Equal(t, EndOfFileToken, toks[1].Type)

	require.NotEmpty(t, tk.errs.errs)
	pe := tk.errs.errs[0]
	assert.Equal(t, ErrUnexpectedEOF, pe.Kind)
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, 10, pe.Col)
}

func TestTokenizeBogusComment(t *testing.T) {
	t.Parallel()

	_, toks := tokenize(`<?xml version="1.0"?>`)
	require.Len(t, toks, 2)
	assert.Equal(t, CommentToken, toks[0].Type)
	assert.Equal(t, `?xml version="1.0"?`, toks[0].Data)
}

func TestTokenizeDoctype(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantName    string
		wantPublic  string
		wantSystem  string
		forceQuirks bool
	}{
		{"plain", "<!DOCTYPE html>", "html", "", "", false},
		{"lowercase keyword", "<!doctype HTML>", "html", "", "", false},
		{
			"public and system",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
			"html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd", false,
		},
		{"missing name", "<!DOCTYPE>", "", "", "", true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, toks := tokenize(tc.input)
			require.Len(t, toks, 2)
			dt := toks[0]
			assert.Equal(t, DoctypeToken, dt.Type)
			assert.Equal(t, tc.wantName, dt.Name)
			assert.Equal(t, tc.wantPublic, dt.PublicID)
			assert.Equal(t, tc.wantSystem, dt.SystemID)
			assert.Equal(t, tc.forceQuirks, dt.ForceQuirks)
		})
	}
}

func TestTokenizeRCDataAppropriateEndTag(t *testing.T) {
	t.Parallel()

	tk := NewTokenizer(strings.NewReader(`a<b>c</title>d`))
	tk.setState(rcDataState)
	tk.setLastStartTag("title")

	var toks []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	assert.Equal(t, "a<b>c", textOf(toks[:len(toks)-3]))
	endTag := toks[len(toks)-3]
	assert.Equal(t, EndTagToken, endTag.Type)
	assert.Equal(t, "title", endTag.Name)
	assert.Equal(t, "d", toks[len(toks)-2].Data)
}

func TestTokenizeScriptDataEscapes(t *testing.T) {
	t.Parallel()

	tk := NewTokenizer(strings.NewReader(`x<!--<b>--></script>`))
	tk.setState(scriptDataState)
	tk.setLastStartTag("script")

	var toks []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	assert.Equal(t, "x<!--<b>-->", textOf(toks))
	endTag := toks[len(toks)-2]
	assert.Equal(t, EndTagToken, endTag.Type)
	assert.Equal(t, "script", endTag.Name)
}

func TestTokenizeNewlineNormalization(t *testing.T) {
	t.Parallel()

	_, toks := tokenize("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", textOf(toks))
}

func TestTokenizeLocations(t *testing.T) {
	t.Parallel()

	_, toks := tokenize("\n<p>")
	require.Len(t, toks, 3)
	tag := toks[1]
	require.Equal(t, StartTagToken, tag.Type)
	assert.Equal(t, 2, tag.Loc.Line)
	assert.Equal(t, 2, tag.Loc.Col)
}

func TestTokenizeTruncatedTagDiscarded(t *testing.T) {
	t.Parallel()

	tk, toks := tokenize(`text<div class="x`)
	assert.Equal(t, "text", textOf(toks))
	assert.Equal(t, EndOfFileToken, toks[len(toks)-1].Type)
	require.NotEmpty(t, tk.errs.errs)
	assert.Equal(t, ErrUnexpectedEOF, tk.errs.errs[len(tk.errs.errs)-1].Kind)
}

func TestTokenizePushInput(t *testing.T) {
	t.Parallel()

	tk := NewTokenizer(strings.NewReader("ab"))
	tok, ok := tk.Next()
	require.True(t, ok)
	require.Equal(t, "a", tok.Data)

	tk.PushInput("XY")
	var rest strings.Builder
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		if tok.Type == CharacterToken {
			rest.WriteString(tok.Data)
		}
	}
	assert.Equal(t, "XYb", rest.String())
}
