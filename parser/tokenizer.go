package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

// A stateHandler consumes one input character (or the end of the stream)
// and returns whether the same character must be reconsumed, plus the state
// to continue in.
type stateHandler func(r rune, eof bool) (bool, tokenizerState)

// Tokenizer scans a character stream and produces tokens on demand. The
// cursor never rewinds beyond the bounded lookahead used to disambiguate
// markup declarations and named character references.
//
// The input is a stack of buffers: text spliced in at the script yield
// point is consumed ahead of whatever remains of the original input.
type Tokenizer struct {
	inputs      []*bufio.Reader
	state       tokenizerState
	returnState tokenizerState
	builder     tokenBuilder
	pending     []Token
	lastStartTag string
	inForeign   bool
	done        bool

	// cur is the position of the rune being processed; next is where the
	// following rune will land.
	cur  Location
	next Location

	errs *errorSink
	log  *logrus.Logger
}

// NewTokenizer creates a tokenizer over r, positioned in the data state.
func NewTokenizer(r io.Reader) *Tokenizer {
	t := &Tokenizer{
		inputs: []*bufio.Reader{bufio.NewReader(r)},
		next:   Location{Line: 1, Col: 1},
		errs:   &errorSink{},
		log:    discardLogger(),
	}
	t.builder.reset(t.next)
	return t
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// PushInput splices s ahead of the remaining input. The next character
// consumed comes from s; once s is exhausted the tokenizer continues where
// it left off.
func (t *Tokenizer) PushInput(s string) {
	if s == "" {
		return
	}
	t.inputs = append(t.inputs, bufio.NewReader(strings.NewReader(s)))
}

// Next returns the next token. The second result is false once the
// EndOfFile token has been delivered.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			if tok.Type == EndOfFileToken {
				t.done = true
			}
			t.log.WithField("type", tok.Type.String()).Debugf("token %q", tok.Name+tok.Data)
			return tok, true
		}

		r, eof := t.readRune()
		if !eof {
			r = t.normalizeNewlines(r)
			t.cur = t.next
			if r == '\n' {
				t.next.Line++
				t.next.Col = 1
			} else {
				t.next.Col++
			}
		}
		t.processRune(r, eof)
	}
}

func (t *Tokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		reconsume, t.state = t.handlerFor(t.state)(r, eof)
	}
}

func (t *Tokenizer) readRune() (rune, bool) {
	for len(t.inputs) > 0 {
		r, _, err := t.active().ReadRune()
		if err == nil {
			return r, false
		}
		t.inputs = t.inputs[:len(t.inputs)-1]
	}
	return 0, true
}

func (t *Tokenizer) active() *bufio.Reader {
	return t.inputs[len(t.inputs)-1]
}

// normalizeNewlines folds CRLF and lone CR into LF before the state machine
// sees them.
func (t *Tokenizer) normalizeNewlines(r rune) rune {
	if r != '\r' {
		return r
	}
	if len(t.inputs) > 0 {
		if b, err := t.active().Peek(1); err == nil && len(b) == 1 && b[0] == '\n' {
			t.active().Discard(1)
		}
	}
	return '\n'
}

// peek looks ahead n bytes in the active buffer without consuming them.
func (t *Tokenizer) peek(n int) ([]byte, error) {
	if len(t.inputs) == 0 {
		return nil, io.EOF
	}
	return t.active().Peek(n)
}

func (t *Tokenizer) discard(n int) {
	if len(t.inputs) == 0 {
		return
	}
	t.active().Discard(n)
	t.next.Col += n
}

// setState lets the tree constructor retarget the tokenizer, e.g. into the
// raw text or RCDATA states after inserting <script>, <style>, <textarea>
// or <title>.
func (t *Tokenizer) setState(s tokenizerState) {
	t.state = s
}

// setLastStartTag seeds the "appropriate end tag" check; used by fragment
// parsing when the context element is a raw text element.
func (t *Tokenizer) setLastStartTag(name string) {
	t.lastStartTag = name
}

// setForeignContext records whether the adjusted current node is outside
// the HTML namespace, which gates CDATA section recognition.
func (t *Tokenizer) setForeignContext(foreign bool) {
	t.inForeign = foreign
}

func (t *Tokenizer) emit(tokens ...Token) {
	for _, tok := range tokens {
		switch tok.Type {
		case EndTagToken:
			if len(tok.Attributes) > 0 {
				t.errs.report(ErrUnexpectedToken, tok.Loc, "end tag </%s> with attributes", tok.Name)
				tok.Attributes = nil
			}
			if tok.SelfClosing {
				t.errs.report(ErrUnexpectedToken, tok.Loc, "end tag </%s> with trailing solidus", tok.Name)
				tok.SelfClosing = false
			}
		case StartTagToken:
			t.lastStartTag = tok.Name
		}
		t.pending = append(t.pending, tok)
	}
}

// emitCurrentTag finalizes the tag under construction. Duplicate
// attributes were already reported when their names completed; here they
// are silently dropped.
func (t *Tokenizer) emitCurrentTag() tokenizerState {
	t.builder.commitAttribute()
	switch t.builder.kind {
	case startTag:
		t.emit(t.builder.startTagToken())
	case endTag:
		t.emit(t.builder.endTagToken())
	}
	return dataState
}

// isAppropriateEndTag reports whether the end tag under construction
// matches the most recent start tag, the condition for leaving a raw text
// state.
func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTag != "" && t.lastStartTag == t.builder.name.String()
}

// flushCodePointsAsCharRef empties the temp buffer either into the
// attribute value under construction or the token stream, depending on
// where the character reference appeared.
func (t *Tokenizer) flushCodePointsAsCharRef() {
	if consumedByAttribute(t.returnState) {
		for _, r := range t.builder.tempBuffer {
			t.builder.writeAttrValue(r)
		}
		return
	}
	t.emit(t.builder.tempBufferCharTokens(t.cur)...)
}

func consumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func toLower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func isNoncharacter(code int32) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	return code&0xFFFE == 0xFFFE && code <= 0x10FFFF
}

func isSurrogate(code int32) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isControl(code int32) bool {
	return (code <= 0x1F && code != 0x09 && code != 0x0A && code != 0x0C && code != 0x0D && code != 0x20) ||
		(code >= 0x7F && code <= 0x9F)
}

func (t *Tokenizer) handlerFor(state tokenizerState) stateHandler {
	switch state {
	case dataState:
		return t.dataHandler
	case rcDataState:
		return t.rcDataHandler
	case rawTextState:
		return t.rawTextHandler
	case scriptDataState:
		return t.scriptDataHandler
	case plaintextState:
		return t.plaintextHandler
	case tagOpenState:
		return t.tagOpenHandler
	case endTagOpenState:
		return t.endTagOpenHandler
	case tagNameState:
		return t.tagNameHandler
	case rcDataLessThanSignState:
		return t.rcDataLessThanSignHandler
	case rcDataEndTagOpenState:
		return t.rcDataEndTagOpenHandler
	case rcDataEndTagNameState:
		return t.rcDataEndTagNameHandler
	case rawTextLessThanSignState:
		return t.rawTextLessThanSignHandler
	case rawTextEndTagOpenState:
		return t.rawTextEndTagOpenHandler
	case rawTextEndTagNameState:
		return t.rawTextEndTagNameHandler
	case scriptDataLessThanSignState:
		return t.scriptDataLessThanSignHandler
	case scriptDataEndTagOpenState:
		return t.scriptDataEndTagOpenHandler
	case scriptDataEndTagNameState:
		return t.scriptDataEndTagNameHandler
	case scriptDataEscapeStartState:
		return t.scriptDataEscapeStartHandler
	case scriptDataEscapeStartDashState:
		return t.scriptDataEscapeStartDashHandler
	case scriptDataEscapedState:
		return t.scriptDataEscapedHandler
	case scriptDataEscapedDashState:
		return t.scriptDataEscapedDashHandler
	case scriptDataEscapedDashDashState:
		return t.scriptDataEscapedDashDashHandler
	case scriptDataEscapedLessThanSignState:
		return t.scriptDataEscapedLessThanSignHandler
	case scriptDataEscapedEndTagOpenState:
		return t.scriptDataEscapedEndTagOpenHandler
	case scriptDataEscapedEndTagNameState:
		return t.scriptDataEscapedEndTagNameHandler
	case scriptDataDoubleEscapeStartState:
		return t.scriptDataDoubleEscapeStartHandler
	case scriptDataDoubleEscapedState:
		return t.scriptDataDoubleEscapedHandler
	case scriptDataDoubleEscapedDashState:
		return t.scriptDataDoubleEscapedDashHandler
	case scriptDataDoubleEscapedDashDashState:
		return t.scriptDataDoubleEscapedDashDashHandler
	case scriptDataDoubleEscapedLessThanSignState:
		return t.scriptDataDoubleEscapedLessThanSignHandler
	case scriptDataDoubleEscapeEndState:
		return t.scriptDataDoubleEscapeEndHandler
	case beforeAttributeNameState:
		return t.beforeAttributeNameHandler
	case attributeNameState:
		return t.attributeNameHandler
	case afterAttributeNameState:
		return t.afterAttributeNameHandler
	case beforeAttributeValueState:
		return t.beforeAttributeValueHandler
	case attributeValueDoubleQuotedState:
		return t.attributeValueDoubleQuotedHandler
	case attributeValueSingleQuotedState:
		return t.attributeValueSingleQuotedHandler
	case attributeValueUnquotedState:
		return t.attributeValueUnquotedHandler
	case afterAttributeValueQuotedState:
		return t.afterAttributeValueQuotedHandler
	case selfClosingStartTagState:
		return t.selfClosingStartTagHandler
	case bogusCommentState:
		return t.bogusCommentHandler
	case markupDeclarationOpenState:
		return t.markupDeclarationOpenHandler
	case commentStartState:
		return t.commentStartHandler
	case commentStartDashState:
		return t.commentStartDashHandler
	case commentState:
		return t.commentHandler
	case commentLessThanSignState:
		return t.commentLessThanSignHandler
	case commentLessThanSignBangState:
		return t.commentLessThanSignBangHandler
	case commentLessThanSignBangDashState:
		return t.commentLessThanSignBangDashHandler
	case commentLessThanSignBangDashDashState:
		return t.commentLessThanSignBangDashDashHandler
	case commentEndDashState:
		return t.commentEndDashHandler
	case commentEndState:
		return t.commentEndHandler
	case commentEndBangState:
		return t.commentEndBangHandler
	case doctypeState:
		return t.doctypeHandler
	case beforeDoctypeNameState:
		return t.beforeDoctypeNameHandler
	case doctypeNameState:
		return t.doctypeNameHandler
	case afterDoctypeNameState:
		return t.afterDoctypeNameHandler
	case afterDoctypePublicKeywordState:
		return t.afterDoctypePublicKeywordHandler
	case beforeDoctypePublicIdentifierState:
		return t.beforeDoctypePublicIdentifierHandler
	case doctypePublicIdentifierDoubleQuotedState:
		return t.doctypePublicIdentifierDoubleQuotedHandler
	case doctypePublicIdentifierSingleQuotedState:
		return t.doctypePublicIdentifierSingleQuotedHandler
	case afterDoctypePublicIdentifierState:
		return t.afterDoctypePublicIdentifierHandler
	case betweenDoctypePublicAndSystemIdentifiersState:
		return t.betweenDoctypePublicAndSystemIdentifiersHandler
	case afterDoctypeSystemKeywordState:
		return t.afterDoctypeSystemKeywordHandler
	case beforeDoctypeSystemIdentifierState:
		return t.beforeDoctypeSystemIdentifierHandler
	case doctypeSystemIdentifierDoubleQuotedState:
		return t.doctypeSystemIdentifierDoubleQuotedHandler
	case doctypeSystemIdentifierSingleQuotedState:
		return t.doctypeSystemIdentifierSingleQuotedHandler
	case afterDoctypeSystemIdentifierState:
		return t.afterDoctypeSystemIdentifierHandler
	case bogusDoctypeState:
		return t.bogusDoctypeHandler
	case cdataSectionState:
		return t.cdataSectionHandler
	case cdataSectionBracketState:
		return t.cdataSectionBracketHandler
	case cdataSectionEndState:
		return t.cdataSectionEndHandler
	case characterReferenceState:
		return t.characterReferenceHandler
	case namedCharacterReferenceState:
		return t.namedCharacterReferenceHandler
	case ambiguousAmpersandState:
		return t.ambiguousAmpersandHandler
	case numericCharacterReferenceState:
		return t.numericCharacterReferenceHandler
	case hexadecimalCharacterReferenceStartState:
		return t.hexadecimalCharacterReferenceStartHandler
	case decimalCharacterReferenceStartState:
		return t.decimalCharacterReferenceStartHandler
	case hexadecimalCharacterReferenceState:
		return t.hexadecimalCharacterReferenceHandler
	case decimalCharacterReferenceState:
		return t.decimalCharacterReferenceHandler
	case numericCharacterReferenceEndState:
		return t.numericCharacterReferenceEndHandler
	}
	return t.dataHandler
}
