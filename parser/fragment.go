package parser

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/willowweb/willow/parser/dom"
)

// ParseFragment parses markup the way it would parse inside ctx, the
// fragment's context element, and returns the resulting top-level nodes.
// A textarea context, for example, tokenizes everything as text, and table
// contexts accept bare rows and cells.
func (p *Parser) ParseFragment(r io.Reader, ctx *dom.Node) ([]*dom.Node, error) {
	if ctx == nil || ctx.Type != dom.ElementNode {
		return nil, ErrNilContext
	}
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
	tk.setLastStartTag(ctx.Name)
	tk.setState(fragmentTokenizerState(ctx, p.scripting))

	tc := newTreeConstructor(tk, sink, p.log)
	tc.scripting = p.scripting
	tc.fragment = true
	tc.context = ctx
	if ctx.OwnerDocument != nil && ctx.OwnerDocument.Document != nil {
		tc.doc.Document.Mode = ctx.OwnerDocument.Document.Mode
	}

	rootTok := synthesizeTag("html", Location{Line: 1, Col: 1})
	root := tc.createElementForToken(&rootTok, dom.HTMLNamespace)
	tc.doc.AppendChild(root)
	tc.stack.push(root)
	if ctx.Name == "template" && ctx.Element.Namespace == dom.HTMLNamespace {
		tc.templateModes = append(tc.templateModes, inTemplateMode)
	}
	tc.resetInsertionMode()
	tc.form = nearestForm(ctx)
	tc.syncTokenizerContext()

	p.run(tk, tc)
	p.errs = sink.errs

	children := append([]*dom.Node(nil), root.ChildNodes...)
	for _, child := range children {
		child.Detach()
	}
	return children, nil
}

// fragmentTokenizerState picks the starting tokenizer state from the
// context element, so raw text contexts never see markup.
func fragmentTokenizerState(ctx *dom.Node, scripting bool) tokenizerState {
	if ctx.Element.Namespace != dom.HTMLNamespace {
		return dataState
	}
	switch ctx.Name {
	case "title", "textarea":
		return rcDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		return rawTextState
	case "script":
		return scriptDataState
	case "noscript":
		if scripting {
			return rawTextState
		}
		return dataState
	case "plaintext":
		return plaintextState
	}
	return dataState
}

func nearestForm(ctx *dom.Node) *dom.Node {
	for n := ctx; n != nil; n = n.Parent {
		if n.Type == dom.ElementNode && n.Name == "form" &&
			n.Element.Namespace == dom.HTMLNamespace {
			return n
		}
	}
	return nil
}
