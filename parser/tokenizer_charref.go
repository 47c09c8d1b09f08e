package parser

// Character reference handling. References are decoded in-line: named
// references with a bounded longest-match lookahead over the reference
// table, numeric references digit by digit with overflow clamping. The
// decoded text flushes into the attribute value under construction when
// the reference appeared inside one, otherwise straight onto the token
// stream.

func (t *Tokenizer) characterReferenceHandler(r rune, eof bool) (bool, tokenizerState) {
	t.builder.resetTempBuffer()
	t.builder.writeTempBuffer('&')
	if !eof {
		switch {
		case isASCIIAlpha(r) || isASCIIDigit(r):
			return true, namedCharacterReferenceState
		case r == '#':
			t.builder.writeTempBuffer(r)
			return false, numericCharacterReferenceState
		}
	}
	t.flushCodePointsAsCharRef()
	return true, t.returnState
}

func (t *Tokenizer) namedCharacterReferenceHandler(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.flushCodePointsAsCharRef()
		return true, t.returnState
	}

	lookahead, _ := t.peek(maxNamedRefLen)
	candidate := string(r) + string(lookahead)
	name, repl := longestNamedRef(candidate)
	if name == "" {
		t.flushCodePointsAsCharRef()
		return true, ambiguousAmpersandState
	}
	// r accounts for the first byte of the name; the rest still sits in
	// the lookahead buffer.
	t.discard(len(name) - 1)

	if name[len(name)-1] != ';' {
		// Legacy reference without a semicolon. Inside an attribute value,
		// a following alphanumeric or "=" means this was never meant as a
		// reference: leave the text alone.
		if consumedByAttribute(t.returnState) && len(candidate) > len(name) {
			next := candidate[len(name)]
			if next == '=' || isASCIIAlpha(rune(next)) || isASCIIDigit(rune(next)) {
				for _, c := range name {
					t.builder.writeTempBuffer(c)
				}
				t.flushCodePointsAsCharRef()
				return false, t.returnState
			}
		}
		t.errs.report(ErrInvalidCharacterReference, t.cur, "missing semicolon after character reference")
	}

	t.builder.resetTempBuffer()
	for _, c := range repl {
		t.builder.writeTempBuffer(c)
	}
	t.flushCodePointsAsCharRef()
	return false, t.returnState
}

// longestNamedRef finds the longest reference name that prefixes s,
// following the longest-match rule. The empty string means no name
// matched at all.
func longestNamedRef(s string) (name, repl string) {
	limit := len(s)
	if limit > maxNamedRefLen {
		limit = maxNamedRefLen
	}
	for l := limit; l > 0; l-- {
		if r, ok := namedCharRefs[s[:l]]; ok {
			return s[:l], r
		}
	}
	return "", ""
}

func (t *Tokenizer) ambiguousAmpersandHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIAlpha(r) || isASCIIDigit(r):
			if consumedByAttribute(t.returnState) {
				t.builder.writeAttrValue(r)
			} else {
				t.emit(characterToken(r, t.cur))
			}
			return false, ambiguousAmpersandState
		case r == ';':
			t.errs.report(ErrInvalidCharacterReference, t.cur, "unknown named character reference")
		}
	}
	return true, t.returnState
}

func (t *Tokenizer) numericCharacterReferenceHandler(r rune, eof bool) (bool, tokenizerState) {
	t.builder.charRefCode = 0
	if !eof && (r == 'x' || r == 'X') {
		t.builder.writeTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (t *Tokenizer) hexadecimalCharacterReferenceStartHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	t.errs.report(ErrInvalidCharacterReference, t.cur, "absence of digits in numeric character reference")
	t.flushCodePointsAsCharRef()
	return true, t.returnState
}

func (t *Tokenizer) decimalCharacterReferenceStartHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	t.errs.report(ErrInvalidCharacterReference, t.cur, "absence of digits in numeric character reference")
	t.flushCodePointsAsCharRef()
	return true, t.returnState
}

// charRefOverflow caps accumulation; anything past the last code point is
// reported out of range and replaced.
const charRefOverflow = 0x110000

func (t *Tokenizer) hexadecimalCharacterReferenceHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIHexDigit(r):
			if t.builder.charRefCode < charRefOverflow {
				t.builder.charRefCode = t.builder.charRefCode*16 + hexVal(r)
			}
			return false, hexadecimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	t.errs.report(ErrInvalidCharacterReference, t.cur, "missing semicolon after character reference")
	return true, numericCharacterReferenceEndState
}

func (t *Tokenizer) decimalCharacterReferenceHandler(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIDigit(r):
			if t.builder.charRefCode < charRefOverflow {
				t.builder.charRefCode = t.builder.charRefCode*10 + (r - '0')
			}
			return false, decimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	t.errs.report(ErrInvalidCharacterReference, t.cur, "missing semicolon after character reference")
	return true, numericCharacterReferenceEndState
}

func hexVal(r rune) int32 {
	switch {
	case isASCIIDigit(r):
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}

// numericCharacterReferenceEndHandler validates the accumulated code point
// and flushes the replacement. It consumes nothing itself; whatever rune
// the driver handed it belongs to the return state.
func (t *Tokenizer) numericCharacterReferenceEndHandler(r rune, eof bool) (bool, tokenizerState) {
	code := t.builder.charRefCode
	switch {
	case code == 0x00:
		t.errs.report(ErrInvalidCharacterReference, t.cur, "null character reference")
		code = replacementChar
	case code >= charRefOverflow:
		t.errs.report(ErrInvalidCharacterReference, t.cur, "character reference outside unicode range")
		code = replacementChar
	case isSurrogate(code):
		t.errs.report(ErrInvalidCharacterReference, t.cur, "surrogate character reference")
		code = replacementChar
	case isNoncharacter(code):
		t.errs.report(ErrInvalidCharacterReference, t.cur, "noncharacter character reference")
	case isControl(code):
		t.errs.report(ErrInvalidCharacterReference, t.cur, "control character reference")
		if repl, ok := numericCharRefReplacements[code]; ok {
			code = int32(repl)
		}
	}
	t.builder.resetTempBuffer()
	t.builder.writeTempBuffer(rune(code))
	t.flushCodePointsAsCharRef()
	return true, t.returnState
}
