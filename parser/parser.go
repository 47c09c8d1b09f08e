// Package parser builds document trees from HTML text, recovering from
// malformed markup the way browsers do. Parsing never fails on bad input:
// deviations are reported as parse errors and the tree keeps growing.
package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/willowweb/willow/parser/dom"
)

// ScriptHandler is invoked when a script element's text is complete. The
// returned string, if non-empty, is spliced into the input stream at the
// current position, which is how document.write output re-enters the
// parser.
type ScriptHandler func(script string) string

// Option configures a Parser.
type Option func(*Parser)

// WithScripting sets the scripting flag, which changes how noscript
// elements parse.
func WithScripting(enabled bool) Option {
	return func(p *Parser) { p.scripting = enabled }
}

// WithErrorHandler registers a callback for parse errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Parser) { p.errorHandler = h }
}

// WithScriptHandler registers the script execution hook.
func WithScriptHandler(h ScriptHandler) Option {
	return func(p *Parser) { p.scriptHandler = h }
}

// WithLogger routes debug tracing of tokenizer and tree-construction steps
// to the given logger.
func WithLogger(log *logrus.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// Parser turns HTML text into document trees. A single Parser can be
// reused for multiple Parse calls; it is not safe for concurrent use.
type Parser struct {
	scripting     bool
	errorHandler  ErrorHandler
	scriptHandler ScriptHandler
	log           *logrus.Logger

	errs []ParseError
}

// NewParser returns a parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{log: discardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetErrorHandler replaces the parse-error callback for subsequent runs.
func (p *Parser) SetErrorHandler(h ErrorHandler) { p.errorHandler = h }

// Errors returns the parse errors recovered during the most recent Parse
// or ParseFragment call, in source order.
func (p *Parser) Errors() []ParseError { return p.errs }

// Parse reads HTML from r and returns the document node of the resulting
// tree. The only input it rejects is an empty stream; everything else
// produces a document, with deviations reported through the error
// handler and Errors.
func (p *Parser) Parse(r io.Reader) (*dom.Node, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, errors.Wrap(err, "parser: reading input")
	}

	tk := NewTokenizer(br)
	sink := &errorSink{handler: p.errorHandler}
	tk.errs = sink
	tk.log = p.log

	tc := newTreeConstructor(tk, sink, p.log)
	tc.scripting = p.scripting

	p.run(tk, tc)
	p.errs = sink.errs
	return tc.doc, nil
}

// run drives the token loop, yielding to the script handler at each
// script execution point.
func (p *Parser) run(tk *Tokenizer, tc *treeConstructor) {
	for {
		tok, ok := tk.Next()
		if !ok {
			return
		}
		tc.processToken(&tok)
		if script := tc.pendingScript; script != nil {
			tc.pendingScript = nil
			if p.scriptHandler != nil {
				if out := p.scriptHandler(scriptText(script)); out != "" {
					tk.PushInput(out)
				}
			}
		}
		if tok.Type == EndOfFileToken {
			return
		}
	}
}

// scriptText concatenates the text content of a script element.
func scriptText(script *dom.Node) string {
	var sb strings.Builder
	for _, child := range script.ChildNodes {
		if child.Type == dom.TextNode {
			sb.WriteString(child.Text.Data)
		}
	}
	return sb.String()
}
