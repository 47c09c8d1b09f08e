package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// Contract violations. These are the only conditions under which parsing
// fails with a Go error instead of producing a document.
var (
	ErrEmptyInput = errors.New("parser: empty input stream")
	ErrNilContext = errors.New("parser: fragment parsing requires a context element")
)

// ErrorKind classifies a recovered parse error.
type ErrorKind uint

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrUnexpectedEOF
	ErrMissingEndTag
	ErrNestedForm
	ErrInvalidNesting
	ErrDuplicateAttribute
	ErrInvalidCharacter
	ErrInvalidCharacterReference
	ErrFosterParentedContent
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected-token"
	case ErrUnexpectedEOF:
		return "unexpected-eof"
	case ErrMissingEndTag:
		return "missing-end-tag"
	case ErrNestedForm:
		return "nested-form"
	case ErrInvalidNesting:
		return "invalid-nesting"
	case ErrDuplicateAttribute:
		return "duplicate-attribute"
	case ErrInvalidCharacter:
		return "invalid-character"
	case ErrInvalidCharacterReference:
		return "invalid-character-reference"
	case ErrFosterParentedContent:
		return "foster-parented-content"
	}
	return "unknown"
}

// ParseError describes one recovered deviation from well-formed input.
// Parse errors are notifications, not failures: the parser always recovers
// and keeps building the tree.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Col     int
	Message string
}

func (e ParseError) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Kind, e.Message)
}

// ErrorHandler receives parse-error notifications as they are recovered.
// Handlers must not block; they are invoked synchronously from the parsing
// loop.
type ErrorHandler func(ParseError)

// errorSink fans parse errors out to the registered handler and keeps a
// copy for inspection after parsing.
type errorSink struct {
	handler ErrorHandler
	errs    []ParseError
}

func (s *errorSink) report(kind ErrorKind, loc Location, format string, args ...interface{}) {
	pe := ParseError{
		Kind:    kind,
		Line:    loc.Line,
		Col:     loc.Col,
		Message: fmt.Sprintf(format, args...),
	}
	s.errs = append(s.errs, pe)
	if s.handler != nil {
		s.handler(pe)
	}
}
