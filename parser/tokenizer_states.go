package parser

// The handlers below implement the tokenizer state machine, one method per
// state. Each consumes the rune it is handed (or the end of the stream) and
// reports whether the driver must hand the same rune to the next state.
// End of input is always survivable: whatever token is under construction
// is emitted best-effort, followed by the EndOfFile token.

const replacementChar = '�'

func (t *Tokenizer) emitEOF() (bool, tokenizerState) {
	t.emit(endOfFileToken(t.next))
	return false, dataState
}

func (t *Tokenizer) dataHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.emitEOF()
	}
	switch r {
	case '&':
		t.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(r, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, dataState
}

func (t *Tokenizer) rcDataHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.emitEOF()
	}
	switch r {
	case '&':
		t.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, rcDataState
}

func (t *Tokenizer) rawTextHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.emitEOF()
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, rawTextState
}

func (t *Tokenizer) scriptDataHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.emitEOF()
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, scriptDataState
}

func (t *Tokenizer) plaintextHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return t.emitEOF()
	}
	if r == 0x00 {
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	} else {
		t.emit(characterToken(r, t.cur))
	}
	return false, plaintextState
}

func (t *Tokenizer) tagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input before tag name")
		t.emit(characterToken('<', t.cur))
		return t.emitEOF()
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		t.builder.reset(t.cur)
		t.builder.kind = startTag
		return true, tagNameState
	case r == '?':
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected question mark instead of tag name")
		t.builder.reset(t.cur)
		return true, bogusCommentState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "invalid first character of tag name")
		t.emit(characterToken('<', t.cur))
		return true, dataState
	}
}

func (t *Tokenizer) endTagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input before end tag name")
		t.emit(characterToken('<', t.cur), characterToken('/', t.cur))
		return t.emitEOF()
	}
	switch {
	case isASCIIAlpha(r):
		t.builder.reset(t.cur)
		t.builder.kind = endTag
		return true, tagNameState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing end tag name")
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "invalid first character of end tag name")
		t.builder.reset(t.cur)
		return true, bogusCommentState
	}
}

func (t *Tokenizer) tagNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, t.emitCurrentTag()
	case r == 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeName(replacementChar)
	default:
		t.builder.writeName(toLower(r))
	}
	return false, tagNameState
}

// rawLessThanSign handles the "<" seen inside RCDATA, RAWTEXT and script
// data, which only means anything if followed by "/".
func (t *Tokenizer) rawLessThanSign(r rune, eof bool, endTagOpen, raw tokenizerState) (bool, tokenizerState) {
	if !eof && r == '/' {
		t.builder.resetTempBuffer()
		return false, endTagOpen
	}
	t.emit(characterToken('<', t.cur))
	return true, raw
}

func (t *Tokenizer) rawEndTagOpen(r rune, eof bool, endTagName, raw tokenizerState) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		t.builder.reset(t.cur)
		t.builder.kind = endTag
		return true, endTagName
	}
	t.emit(characterToken('<', t.cur), characterToken('/', t.cur))
	return true, raw
}

// rawEndTagName recognizes "</name" inside a raw text state. Only the
// appropriate end tag (matching the start tag that got us here) ends the
// raw run; anything else is replayed as text.
func (t *Tokenizer) rawEndTagName(r rune, eof bool, self, raw tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r):
			if t.isAppropriateEndTag() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if t.isAppropriateEndTag() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if t.isAppropriateEndTag() {
				return false, t.emitCurrentTag()
			}
		case isASCIIAlpha(r):
			t.builder.writeName(toLower(r))
			t.builder.writeTempBuffer(r)
			return false, self
		}
	}
	t.emit(characterToken('<', t.cur), characterToken('/', t.cur))
	t.emit(t.builder.tempBufferCharTokens(t.cur)...)
	return true, raw
}

func (t *Tokenizer) rcDataLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawLessThanSign(r, eof, rcDataEndTagOpenState, rcDataState)
}

func (t *Tokenizer) rcDataEndTagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagOpen(r, eof, rcDataEndTagNameState, rcDataState)
}

func (t *Tokenizer) rcDataEndTagNameHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagName(r, eof, rcDataEndTagNameState, rcDataState)
}

func (t *Tokenizer) rawTextLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawLessThanSign(r, eof, rawTextEndTagOpenState, rawTextState)
}

func (t *Tokenizer) rawTextEndTagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagOpen(r, eof, rawTextEndTagNameState, rawTextState)
}

func (t *Tokenizer) rawTextEndTagNameHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagName(r, eof, rawTextEndTagNameState, rawTextState)
}

func (t *Tokenizer) scriptDataLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			t.builder.resetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			t.emit(characterToken('<', t.cur), characterToken('!', t.cur))
			return false, scriptDataEscapeStartState
		}
	}
	t.emit(characterToken('<', t.cur))
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEndTagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagOpen(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (t *Tokenizer) scriptDataEndTagNameHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagName(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (t *Tokenizer) scriptDataEscapeStartHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		t.emit(characterToken('-', t.cur))
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEscapeStartDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		t.emit(characterToken('-', t.cur))
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEscapedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
		return false, scriptDataEscapedState
	default:
		t.emit(characterToken(r, t.cur))
		return false, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		t.emit(characterToken('>', t.cur))
		return false, scriptDataState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
		return false, scriptDataEscapedState
	default:
		t.emit(characterToken(r, t.cur))
		return false, scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case r == '/':
			t.builder.resetTempBuffer()
			return false, scriptDataEscapedEndTagOpenState
		case isASCIIAlpha(r):
			t.builder.resetTempBuffer()
			t.emit(characterToken('<', t.cur))
			return true, scriptDataDoubleEscapeStartState
		}
	}
	t.emit(characterToken('<', t.cur))
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedEndTagOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagOpen(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

func (t *Tokenizer) scriptDataEscapedEndTagNameHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.rawEndTagName(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

func (t *Tokenizer) scriptDataDoubleEscapeStartHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r) || r == '/' || r == '>':
			t.emit(characterToken(r, t.cur))
			if t.builder.tempBufferString() == "script" {
				return false, scriptDataDoubleEscapedState
			}
			return false, scriptDataEscapedState
		case isASCIIAlpha(r):
			t.builder.writeTempBuffer(toLower(r))
			t.emit(characterToken(r, t.cur))
			return false, scriptDataDoubleEscapeStartState
		}
	}
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataDoubleEscapedDashState
	case '<':
		t.emit(characterToken('<', t.cur))
		return false, scriptDataDoubleEscapedLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
	default:
		t.emit(characterToken(r, t.cur))
	}
	return false, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(characterToken('<', t.cur))
		return false, scriptDataDoubleEscapedLessThanSignState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
		return false, scriptDataDoubleEscapedState
	default:
		t.emit(characterToken(r, t.cur))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside script comment-like text")
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.emit(characterToken('-', t.cur))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(characterToken('<', t.cur))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emit(characterToken('>', t.cur))
		return false, scriptDataState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.emit(characterToken(replacementChar, t.cur))
		return false, scriptDataDoubleEscapedState
	default:
		t.emit(characterToken(r, t.cur))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		t.builder.resetTempBuffer()
		t.emit(characterToken('/', t.cur))
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapeEndHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r) || r == '/' || r == '>':
			t.emit(characterToken(r, t.cur))
			if t.builder.tempBufferString() == "script" {
				return false, scriptDataEscapedState
			}
			return false, scriptDataDoubleEscapedState
		case isASCIIAlpha(r):
			t.builder.writeTempBuffer(toLower(r))
			t.emit(characterToken(r, t.cur))
			return false, scriptDataDoubleEscapeEndState
		}
	}
	return true, scriptDataDoubleEscapedState
}

func (t *Tokenizer) beforeAttributeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/' || r == '>':
		return true, afterAttributeNameState
	case r == '=':
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected equals sign before attribute name")
		t.builder.startAttribute()
		t.builder.writeAttrName(r)
		return false, attributeNameState
	default:
		t.builder.startAttribute()
		return true, attributeNameState
	}
}

func (t *Tokenizer) attributeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof || isWhitespace(r) || r == '/' || r == '>' {
		t.checkDuplicateAttribute()
		return true, afterAttributeNameState
	}
	switch {
	case r == '=':
		t.checkDuplicateAttribute()
		return false, beforeAttributeValueState
	case r == 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeAttrName(replacementChar)
	case r == '"' || r == '\'' || r == '<':
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected character %q in attribute name", r)
		t.builder.writeAttrName(r)
	default:
		t.builder.writeAttrName(toLower(r))
	}
	return false, attributeNameState
}

func (t *Tokenizer) checkDuplicateAttribute() {
	if t.builder.markDuplicateAttribute() {
		t.errs.report(ErrDuplicateAttribute, t.cur, "duplicate attribute %q dropped", t.builder.attrName.String())
	}
}

func (t *Tokenizer) afterAttributeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, t.emitCurrentTag()
	default:
		t.builder.startAttribute()
		return true, attributeNameState
	}
}

func (t *Tokenizer) beforeAttributeValueHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r):
			return false, beforeAttributeValueState
		case r == '"':
			return false, attributeValueDoubleQuotedState
		case r == '\'':
			return false, attributeValueSingleQuotedState
		case r == '>':
			t.errs.report(ErrUnexpectedToken, t.cur, "missing attribute value")
			return false, t.emitCurrentTag()
		}
	}
	return true, attributeValueUnquotedState
}

func (t *Tokenizer) attributeValueDoubleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '&':
		t.returnState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeAttrValue(replacementChar)
	default:
		t.builder.writeAttrValue(r)
	}
	return false, attributeValueDoubleQuotedState
}

func (t *Tokenizer) attributeValueSingleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '&':
		t.returnState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeAttrValue(replacementChar)
	default:
		t.builder.writeAttrValue(r)
	}
	return false, attributeValueSingleQuotedState
}

func (t *Tokenizer) attributeValueUnquotedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '&':
		t.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		return false, t.emitCurrentTag()
	case r == 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeAttrValue(replacementChar)
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected character %q in unquoted attribute value", r)
		t.builder.writeAttrValue(r)
	default:
		t.builder.writeAttrValue(r)
	}
	return false, attributeValueUnquotedState
}

func (t *Tokenizer) afterAttributeValueQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, t.emitCurrentTag()
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace between attributes")
		return true, beforeAttributeNameState
	}
}

func (t *Tokenizer) selfClosingStartTagHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside tag")
		return t.emitEOF()
	}
	switch r {
	case '>':
		t.builder.selfClosing = true
		return false, t.emitCurrentTag()
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected solidus in tag")
		return true, beforeAttributeNameState
	}
}

func (t *Tokenizer) bogusCommentHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return false, dataState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeData(replacementChar)
	default:
		t.builder.writeData(r)
	}
	return false, bogusCommentState
}

// markupDeclarationOpenHandler disambiguates "<!--", "<!DOCTYPE" and
// "<![CDATA[" with bounded lookahead; everything else becomes a bogus
// comment.
func (t *Tokenizer) markupDeclarationOpenHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedToken, t.next, "incorrectly opened comment")
		t.builder.reset(t.cur)
		return true, bogusCommentState
	}
	if r == '-' {
		if b, err := t.peek(1); err == nil && len(b) == 1 && b[0] == '-' {
			t.discard(1)
			t.builder.reset(t.cur)
			return false, commentStartState
		}
	}
	if t.matchKeyword(r, 'D', "OCTYPE") {
		return false, doctypeState
	}
	if r == '[' {
		if b, err := t.peek(6); err == nil && string(b) == "CDATA[" {
			if t.inForeign {
				t.discard(6)
				return false, cdataSectionState
			}
			t.errs.report(ErrUnexpectedToken, t.cur, "CDATA section outside foreign content")
			t.discard(6)
			t.builder.reset(t.cur)
			for _, c := range "[CDATA[" {
				t.builder.writeData(c)
			}
			return false, bogusCommentState
		}
	}
	t.errs.report(ErrUnexpectedToken, t.cur, "incorrectly opened comment")
	t.builder.reset(t.cur)
	return true, bogusCommentState
}

// matchKeyword reports whether the current rune plus lookahead spell the
// given case-insensitive ASCII keyword, consuming the tail if so.
func (t *Tokenizer) matchKeyword(r, first rune, rest string) bool {
	if toLower(r) != toLower(first) {
		return false
	}
	b, err := t.peek(len(rest))
	if err != nil || len(b) != len(rest) {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if toLower(rune(b[i])) != toLower(rune(rest[i])) {
			return false
		}
	}
	t.discard(len(rest))
	return true
}

func (t *Tokenizer) commentStartHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			t.errs.report(ErrUnexpectedToken, t.cur, "abrupt closing of empty comment")
			t.emit(t.builder.commentToken())
			return false, dataState
		}
	}
	return true, commentState
}

func (t *Tokenizer) commentStartDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside comment")
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "abrupt closing of empty comment")
		t.emit(t.builder.commentToken())
		return false, dataState
	default:
		t.builder.writeData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside comment")
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	switch r {
	case '<':
		t.builder.writeData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeData(replacementChar)
	default:
		t.builder.writeData(r)
	}
	return false, commentState
}

func (t *Tokenizer) commentLessThanSignHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '!':
			t.builder.writeData(r)
			return false, commentLessThanSignBangState
		case '<':
			t.builder.writeData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

func (t *Tokenizer) commentLessThanSignBangHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (t *Tokenizer) commentLessThanSignBangDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (t *Tokenizer) commentLessThanSignBangDashDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		t.errs.report(ErrUnexpectedToken, t.cur, "nested comment")
	}
	return true, commentEndState
}

func (t *Tokenizer) commentEndDashHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside comment")
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	if r == '-' {
		return false, commentEndState
	}
	t.builder.writeData('-')
	return true, commentState
}

func (t *Tokenizer) commentEndHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside comment")
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		t.builder.writeData('-')
		return false, commentEndState
	default:
		t.builder.writeData('-')
		t.builder.writeData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentEndBangHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside comment")
		t.emit(t.builder.commentToken())
		return t.emitEOF()
	}
	switch r {
	case '-':
		t.builder.writeData('-')
		t.builder.writeData('-')
		t.builder.writeData('!')
		return false, commentEndDashState
	case '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "incorrectly closed comment")
		t.emit(t.builder.commentToken())
		return false, dataState
	default:
		t.builder.writeData('-')
		t.builder.writeData('-')
		t.builder.writeData('!')
		return true, commentState
	}
}

func (t *Tokenizer) doctypeHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.reset(t.cur)
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace before doctype name")
		return true, beforeDoctypeNameState
	}
}

func (t *Tokenizer) beforeDoctypeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.reset(t.cur)
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing doctype name")
		t.builder.reset(t.cur)
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case r == 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.reset(t.cur)
		t.builder.writeName(replacementChar)
		return false, doctypeNameState
	default:
		t.builder.reset(t.cur)
		t.builder.writeName(toLower(r))
		return false, doctypeNameState
	}
}

func (t *Tokenizer) doctypeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case r == 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeName(replacementChar)
	default:
		t.builder.writeName(toLower(r))
	}
	return false, doctypeNameState
}

func (t *Tokenizer) afterDoctypeNameHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case t.matchKeyword(r, 'P', "UBLIC"):
		return false, afterDoctypePublicKeywordState
	case t.matchKeyword(r, 'S', "YSTEM"):
		return false, afterDoctypeSystemKeywordState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "invalid character sequence after doctype name")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) afterDoctypePublicKeywordHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace after doctype public keyword")
		t.builder.hasPublicID = true
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace after doctype public keyword")
		t.builder.hasPublicID = true
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing doctype public identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype public identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypePublicIdentifierHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		t.builder.hasPublicID = true
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.builder.hasPublicID = true
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing doctype public identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype public identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) doctypePublicIdentifierQuoted(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch r {
	case quote:
		return false, afterDoctypePublicIdentifierState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writePublicID(replacementChar)
	case '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "abrupt doctype public identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writePublicID(r)
	}
	return false, self
}

func (t *Tokenizer) doctypePublicIdentifierDoubleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.doctypePublicIdentifierQuoted(r, eof, '"', doctypePublicIdentifierDoubleQuotedState)
}

func (t *Tokenizer) doctypePublicIdentifierSingleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.doctypePublicIdentifierQuoted(r, eof, '\'', doctypePublicIdentifierSingleQuotedState)
}

func (t *Tokenizer) afterDoctypePublicIdentifierHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case r == '"':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace between doctype public and system identifiers")
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace between doctype public and system identifiers")
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype system identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) betweenDoctypePublicAndSystemIdentifiersHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case r == '"':
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype system identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) afterDoctypeSystemKeywordHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace after doctype system keyword")
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing whitespace after doctype system keyword")
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing doctype system identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype system identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypeSystemIdentifierHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.builder.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "missing doctype system identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "missing quote before doctype system identifier")
		t.builder.forceQuirks = true
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) doctypeSystemIdentifierQuoted(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch r {
	case quote:
		return false, afterDoctypeSystemIdentifierState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
		t.builder.writeSystemID(replacementChar)
	case '>':
		t.errs.report(ErrUnexpectedToken, t.cur, "abrupt doctype system identifier")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.builder.writeSystemID(r)
	}
	return false, self
}

func (t *Tokenizer) doctypeSystemIdentifierDoubleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.doctypeSystemIdentifierQuoted(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState)
}

func (t *Tokenizer) doctypeSystemIdentifierSingleQuotedHandler(r rune, eof bool) (bool, tokenizerState) {
	return t.doctypeSystemIdentifierQuoted(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState)
}

func (t *Tokenizer) afterDoctypeSystemIdentifierHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside doctype")
		t.builder.forceQuirks = true
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	default:
		t.errs.report(ErrUnexpectedToken, t.cur, "unexpected character after doctype system identifier")
		return true, bogusDoctypeState
	}
}

func (t *Tokenizer) bogusDoctypeHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.builder.doctypeToken())
		return t.emitEOF()
	}
	switch r {
	case '>':
		t.emit(t.builder.doctypeToken())
		return false, dataState
	case 0x00:
		t.errs.report(ErrInvalidCharacter, t.cur, "unexpected null character")
	}
	return false, bogusDoctypeState
}

func (t *Tokenizer) cdataSectionHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.errs.report(ErrUnexpectedEOF, t.next, "end of input inside CDATA section")
		return t.emitEOF()
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	t.emit(characterToken(r, t.cur))
	return false, cdataSectionState
}

func (t *Tokenizer) cdataSectionBracketHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	t.emit(characterToken(']', t.cur))
	return true, cdataSectionState
}

func (t *Tokenizer) cdataSectionEndHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case ']':
			t.emit(characterToken(']', t.cur))
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	t.emit(characterToken(']', t.cur), characterToken(']', t.cur))
	return true, cdataSectionState
}
