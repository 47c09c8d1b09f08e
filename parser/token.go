package parser

import (
	"strings"

	"github.com/willowweb/willow/parser/dom"
)

// TokenType identifies the kind of a Token.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	DoctypeToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "character"
	case StartTagToken:
		return "start-tag"
	case EndTagToken:
		return "end-tag"
	case CommentToken:
		return "comment"
	case DoctypeToken:
		return "doctype"
	case EndOfFileToken:
		return "eof"
	}
	return "unknown"
}

// Location is a 1-based line/column position in the input stream.
type Location struct {
	Line int
	Col  int
}

// Token is a single unit emitted by the tokenizer. The fields that are
// meaningful depend on Type: Data carries character and comment data, Name
// the tag or doctype name, Attributes the start tag's ordered attribute
// list. Loc is the position the token started at.
type Token struct {
	Type        TokenType
	Name        string
	Data        string
	Attributes  dom.AttrList
	SelfClosing bool
	ForceQuirks bool
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
	Loc         Location
}

type tagKind uint

const (
	startTag tagKind = iota
	endTag
)

// tokenBuilder accumulates the pieces of the token currently being
// tokenized. One builder is reused for the lifetime of a tokenizer.
type tokenBuilder struct {
	name        strings.Builder
	data        strings.Builder
	publicID    strings.Builder
	systemID    strings.Builder
	attrName    strings.Builder
	attrValue   strings.Builder
	attrs       dom.AttrList
	tempBuffer  []rune
	kind        tagKind
	selfClosing bool
	forceQuirks bool
	hasPublicID bool
	hasSystemID bool
	dropAttr    bool
	charRefCode int32
	loc         Location
}

// reset clears everything except the temp buffer, recording where in the
// input the new token begins.
func (b *tokenBuilder) reset(loc Location) {
	b.name.Reset()
	b.data.Reset()
	b.publicID.Reset()
	b.systemID.Reset()
	b.attrName.Reset()
	b.attrValue.Reset()
	b.attrs = nil
	b.selfClosing = false
	b.forceQuirks = false
	b.hasPublicID = false
	b.hasSystemID = false
	b.dropAttr = false
	b.loc = loc
}

func (b *tokenBuilder) resetTempBuffer()      { b.tempBuffer = b.tempBuffer[:0] }
func (b *tokenBuilder) writeTempBuffer(r rune) { b.tempBuffer = append(b.tempBuffer, r) }
func (b *tokenBuilder) tempBufferString() string {
	return string(b.tempBuffer)
}

func (b *tokenBuilder) writeName(r rune)      { b.name.WriteRune(r) }
func (b *tokenBuilder) writeData(r rune)      { b.data.WriteRune(r) }
func (b *tokenBuilder) writePublicID(r rune)  { b.publicID.WriteRune(r) }
func (b *tokenBuilder) writeSystemID(r rune)  { b.systemID.WriteRune(r) }
func (b *tokenBuilder) writeAttrName(r rune)  { b.attrName.WriteRune(r) }
func (b *tokenBuilder) writeAttrValue(r rune) { b.attrValue.WriteRune(r) }

// startAttribute commits any attribute under construction and begins a new
// one.
func (b *tokenBuilder) startAttribute() {
	b.commitAttribute()
}

// markDuplicateAttribute checks the attribute name finished so far against
// the committed list. A duplicate is dropped at commit time; the first
// occurrence wins.
func (b *tokenBuilder) markDuplicateAttribute() bool {
	if b.attrs.Has(b.attrName.String()) {
		b.dropAttr = true
		return true
	}
	return false
}

// commitAttribute moves the in-progress name/value pair into the attribute
// list, unless it was flagged as a duplicate. Reports whether a duplicate
// was dropped.
func (b *tokenBuilder) commitAttribute() bool {
	name := b.attrName.String()
	dropped := false
	if name != "" {
		if b.dropAttr || b.attrs.Has(name) {
			dropped = true
		} else {
			b.attrs = append(b.attrs, dom.Attr{Name: name, Value: b.attrValue.String()})
		}
	}
	b.attrName.Reset()
	b.attrValue.Reset()
	b.dropAttr = false
	return dropped
}

func (b *tokenBuilder) startTagToken() Token {
	return Token{
		Type:        StartTagToken,
		Name:        b.name.String(),
		Attributes:  b.attrs,
		SelfClosing: b.selfClosing,
		Loc:         b.loc,
	}
}

func (b *tokenBuilder) endTagToken() Token {
	return Token{
		Type:        EndTagToken,
		Name:        b.name.String(),
		Attributes:  b.attrs,
		SelfClosing: b.selfClosing,
		Loc:         b.loc,
	}
}

func (b *tokenBuilder) commentToken() Token {
	return Token{
		Type: CommentToken,
		Data: b.data.String(),
		Loc:  b.loc,
	}
}

func (b *tokenBuilder) doctypeToken() Token {
	return Token{
		Type:        DoctypeToken,
		Name:        b.name.String(),
		ForceQuirks: b.forceQuirks,
		PublicID:    b.publicID.String(),
		SystemID:    b.systemID.String(),
		HasPublicID: b.hasPublicID,
		HasSystemID: b.hasSystemID,
		Loc:         b.loc,
	}
}

func characterToken(r rune, loc Location) Token {
	return Token{Type: CharacterToken, Data: string(r), Loc: loc}
}

func endOfFileToken(loc Location) Token {
	return Token{Type: EndOfFileToken, Loc: loc}
}

// tempBufferCharTokens returns one character token per rune currently in the
// temp buffer, used when a would-be end tag in a raw text state turns out to
// be plain text.
func (b *tokenBuilder) tempBufferCharTokens(loc Location) []Token {
	toks := make([]Token, 0, len(b.tempBuffer))
	for _, r := range b.tempBuffer {
		toks = append(toks, characterToken(r, loc))
	}
	return toks
}
