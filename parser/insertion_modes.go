package parser

import (
	"strings"

	"github.com/willowweb/willow/parser/dom"
)

// The handlers below implement one insertion mode each. They return
// whether the token must be reprocessed and the mode to continue in;
// returning their own mode means "stay".

func (c *treeConstructor) initialModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			return false, initialMode
		}
	case CommentToken:
		c.insertCommentIn(c.doc, tok)
		return false, initialMode
	case DoctypeToken:
		if tok.Name != "html" || tok.HasPublicID || (tok.HasSystemID && tok.SystemID != "about:legacy-compat") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "non-conforming doctype")
		}
		dt := dom.NewDocumentType(tok.Name, tok.PublicID, tok.SystemID)
		c.doc.AppendChild(dt)
		c.doc.Document.Mode = classifyDoctype(tok)
		return false, beforeHTMLMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "missing doctype, parsing in quirks mode")
	c.doc.Document.Mode = dom.Quirks
	return true, beforeHTMLMode
}

func (c *treeConstructor) beforeHTMLModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, beforeHTMLMode
	case CommentToken:
		c.insertCommentIn(c.doc, tok)
		return false, beforeHTMLMode
	case CharacterToken:
		if isAllWhitespace(tok) {
			return false, beforeHTMLMode
		}
	case StartTagToken:
		if tok.Name == "html" {
			n := c.createElementForToken(tok, dom.HTMLNamespace)
			c.doc.AppendChild(n)
			c.stack.push(n)
			return false, beforeHeadMode
		}
	case EndTagToken:
		if !anyOf(tok.Name, "head", "body", "html", "br") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected end tag </%s> before html", tok.Name)
			return false, beforeHTMLMode
		}
	}
	synth := synthesizeTag("html", tok.Loc)
	n := c.createElementForToken(&synth, dom.HTMLNamespace)
	c.doc.AppendChild(n)
	c.stack.push(n)
	return true, beforeHeadMode
}

func (c *treeConstructor) beforeHeadModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			return false, beforeHeadMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, beforeHeadMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, beforeHeadMode
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "head":
			c.head = c.insertHTMLElement(tok)
			return false, inHeadMode
		}
	case EndTagToken:
		if !anyOf(tok.Name, "head", "body", "html", "br") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected end tag </%s> before head", tok.Name)
			return false, beforeHeadMode
		}
	}
	synth := synthesizeTag("head", tok.Loc)
	c.head = c.insertHTMLElement(&synth)
	return true, inHeadMode
}

func (c *treeConstructor) inHeadModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			c.insertCharacter(tok)
			return false, inHeadMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, inHeadMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inHeadMode
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertVoidElement(tok)
			return false, inHeadMode
		case "title":
			return false, c.genericRCDATA(tok)
		case "noscript":
			if c.scripting {
				return false, c.genericRawText(tok)
			}
			c.insertHTMLElement(tok)
			return false, inHeadNoscriptMode
		case "noframes", "style":
			return false, c.genericRawText(tok)
		case "script":
			c.insertHTMLElement(tok)
			c.tokenizer.setState(scriptDataState)
			c.origMode = c.mode
			return false, textMode
		case "template":
			c.insertHTMLElement(tok)
			c.formatting.pushMarker()
			c.framesetOK = false
			c.templateModes = append(c.templateModes, inTemplateMode)
			return false, inTemplateMode
		case "head":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "nested <head> ignored")
			return false, inHeadMode
		}
	case EndTagToken:
		switch tok.Name {
		case "head":
			c.stack.pop()
			return false, afterHeadMode
		case "template":
			return c.closeTemplate(tok), c.mode
		case "body", "html", "br":
		default:
			c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected end tag </%s> in head", tok.Name)
			return false, inHeadMode
		}
	}
	c.stack.pop()
	return true, afterHeadMode
}

// closeTemplate handles the template end tag shared by several modes.
// Always fully consumes the token.
func (c *treeConstructor) closeTemplate(tok *Token) bool {
	if !c.stack.containsName("template") {
		c.errs.report(ErrUnexpectedToken, tok.Loc, "</template> with no open template")
		return false
	}
	c.generateImpliedEndTags()
	if cur := c.currentNode(); cur != nil && cur.Name != "template" {
		c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <template>")
	}
	c.stack.popUntil("template")
	c.formatting.clearToLastMarker()
	if len(c.templateModes) > 0 {
		c.templateModes = c.templateModes[:len(c.templateModes)-1]
	}
	c.resetInsertionMode()
	return false
}

func (c *treeConstructor) inHeadNoscriptModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inHeadNoscriptMode
	case CharacterToken:
		if isAllWhitespace(tok) {
			return c.useRulesFor(tok, inHeadMode)
		}
	case CommentToken:
		return c.useRulesFor(tok, inHeadMode)
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(tok, inHeadMode)
		case "head", "noscript":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "<%s> ignored inside noscript", tok.Name)
			return false, inHeadNoscriptMode
		}
	case EndTagToken:
		switch tok.Name {
		case "noscript":
			c.stack.pop()
			return false, inHeadMode
		case "br":
		default:
			c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected end tag </%s> inside noscript", tok.Name)
			return false, inHeadNoscriptMode
		}
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected content inside noscript")
	c.stack.pop()
	return true, inHeadMode
}

func (c *treeConstructor) afterHeadModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			c.insertCharacter(tok)
			return false, afterHeadMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, afterHeadMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, afterHeadMode
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "body":
			c.insertHTMLElement(tok)
			c.framesetOK = false
			return false, inBodyMode
		case "frameset":
			c.insertHTMLElement(tok)
			return false, inFramesetMode
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "<%s> belongs in head", tok.Name)
			c.stack.push(c.head)
			reprocess, next := c.useRulesFor(tok, inHeadMode)
			c.stack.remove(c.head)
			return reprocess, next
		case "head":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "second <head> ignored")
			return false, afterHeadMode
		}
	case EndTagToken:
		switch tok.Name {
		case "template":
			return c.closeTemplate(tok), c.mode
		case "body", "html", "br":
		default:
			c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected end tag </%s> after head", tok.Name)
			return false, afterHeadMode
		}
	}
	synth := synthesizeTag("body", tok.Loc)
	c.insertHTMLElement(&synth)
	return true, inBodyMode
}

func (c *treeConstructor) inBodyModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if tok.Data == "\x00" {
			c.errs.report(ErrInvalidCharacter, tok.Loc, "null character in body")
			return false, inBodyMode
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(tok)
		if !isAllWhitespace(tok) {
			c.framesetOK = false
		}
		return false, inBodyMode
	case CommentToken:
		c.insertComment(tok)
		return false, inBodyMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inBodyMode
	case EndOfFileToken:
		if len(c.templateModes) > 0 {
			return c.useRulesFor(tok, inTemplateMode)
		}
		for _, n := range c.stack {
			if !closedByBody[n.Name] {
				c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed <%s> at end of input", n.Name)
			}
		}
		c.stopParsing()
		return false, inBodyMode
	case StartTagToken:
		return c.inBodyStartTag(tok)
	case EndTagToken:
		return c.inBodyEndTag(tok)
	}
	return false, inBodyMode
}

func (c *treeConstructor) inBodyStartTag(tok *Token) (bool, insertionMode) {
	switch tok.Name {
	case "html":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "second <html> start tag")
		if c.stack.containsName("template") {
			return false, inBodyMode
		}
		if root := c.stack.bottom(); root != nil {
			root.Element.Attributes.Merge(tok.Attributes)
		}
		return false, inBodyMode

	case "base", "basefont", "bgsound", "link", "meta", "noframes",
		"script", "style", "template", "title":
		return c.useRulesFor(tok, inHeadMode)

	case "body":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "second <body> start tag")
		if len(c.stack) < 2 || c.stack[1].Name != "body" || c.stack.containsName("template") {
			return false, inBodyMode
		}
		c.framesetOK = false
		c.stack[1].Element.Attributes.Merge(tok.Attributes)
		return false, inBodyMode

	case "frameset":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "<frameset> after body content")
		if len(c.stack) < 2 || c.stack[1].Name != "body" || !c.framesetOK {
			return false, inBodyMode
		}
		c.stack[1].Detach()
		for len(c.stack) > 1 {
			c.stack.pop()
		}
		c.insertHTMLElement(tok)
		return false, inFramesetMode

	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"section", "summary", "ul":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		if cur := c.currentNode(); cur != nil && headingElements[cur.Name] {
			c.errs.report(ErrInvalidNesting, tok.Loc, "<%s> nested in <%s>", tok.Name, cur.Name)
			c.stack.pop()
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "pre", "listing":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		c.ignoreLF = true
		c.framesetOK = false
		return false, inBodyMode

	case "form":
		if c.form != nil && !c.stack.containsName("template") {
			c.errs.report(ErrNestedForm, tok.Loc, "<form> inside an open form ignored")
			return false, inBodyMode
		}
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		n := c.insertHTMLElement(tok)
		if !c.stack.containsName("template") {
			c.form = n
		}
		return false, inBodyMode

	case "li":
		c.framesetOK = false
		for i := len(c.stack) - 1; i >= 0; i-- {
			node := c.stack[i]
			if node.Name == "li" {
				c.generateImpliedEndTags("li")
				if c.currentNode().Name != "li" {
					c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <li>")
				}
				c.stack.popUntil("li")
				break
			}
			if isSpecial(node) && !anyOf(node.Name, "address", "div", "p") {
				break
			}
		}
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "dd", "dt":
		c.framesetOK = false
		for i := len(c.stack) - 1; i >= 0; i-- {
			node := c.stack[i]
			if node.Name == "dd" || node.Name == "dt" {
				c.generateImpliedEndTags(node.Name)
				if c.currentNode().Name != node.Name {
					c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", node.Name)
				}
				c.stack.popUntil(node.Name)
				break
			}
			if isSpecial(node) && !anyOf(node.Name, "address", "div", "p") {
				break
			}
		}
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "plaintext":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		c.tokenizer.setState(plaintextState)
		return false, inBodyMode

	case "button":
		if c.stack.inScope("button") {
			c.errs.report(ErrInvalidNesting, tok.Loc, "<button> inside an open button")
			c.generateImpliedEndTags()
			c.stack.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(tok)
		c.framesetOK = false
		return false, inBodyMode

	case "a":
		if entry, i := c.formatting.entryBetweenMarkerAndEnd("a"); i >= 0 {
			c.errs.report(ErrInvalidNesting, tok.Loc, "<a> inside an open link")
			endTok := Token{Type: EndTagToken, Name: "a", Loc: tok.Loc}
			c.adoptionAgency(&endTok)
			c.formatting.remove(entry.node)
			c.stack.remove(entry.node)
		}
		c.reconstructActiveFormattingElements()
		n := c.insertHTMLElement(tok)
		c.formatting.push(n, copyForFormatting(tok))
		return false, inBodyMode

	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		n := c.insertHTMLElement(tok)
		c.formatting.push(n, copyForFormatting(tok))
		return false, inBodyMode

	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.stack.inScope("nobr") {
			c.errs.report(ErrInvalidNesting, tok.Loc, "<nobr> inside an open nobr")
			endTok := Token{Type: EndTagToken, Name: "nobr", Loc: tok.Loc}
			c.adoptionAgency(&endTok)
			c.reconstructActiveFormattingElements()
		}
		n := c.insertHTMLElement(tok)
		c.formatting.push(n, copyForFormatting(tok))
		return false, inBodyMode

	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(tok)
		c.formatting.pushMarker()
		c.framesetOK = false
		return false, inBodyMode

	case "table":
		if c.doc.Document.Mode != dom.Quirks && c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertHTMLElement(tok)
		c.framesetOK = false
		return false, inTableMode

	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(tok)
		c.framesetOK = false
		return false, inBodyMode

	case "input":
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(tok)
		if typ, ok := tok.Attributes.Get("type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.framesetOK = false
		}
		return false, inBodyMode

	case "param", "source", "track":
		c.insertVoidElement(tok)
		return false, inBodyMode

	case "hr":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.insertVoidElement(tok)
		c.framesetOK = false
		return false, inBodyMode

	case "image":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "<image> treated as <img>")
		tok.Name = "img"
		return true, inBodyMode

	case "textarea":
		c.insertHTMLElement(tok)
		c.ignoreLF = true
		c.tokenizer.setState(rcDataState)
		c.origMode = c.mode
		c.framesetOK = false
		return false, textMode

	case "xmp":
		if c.stack.inButtonScope("p") {
			c.closePElement(tok.Loc)
		}
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		return false, c.genericRawText(tok)

	case "iframe":
		c.framesetOK = false
		return false, c.genericRawText(tok)

	case "noembed":
		return false, c.genericRawText(tok)

	case "noscript":
		if c.scripting {
			return false, c.genericRawText(tok)
		}

	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(tok)
		c.framesetOK = false
		switch c.mode {
		case inTableMode, inCaptionMode, inTableBodyMode, inRowMode, inCellMode:
			return false, inSelectInTableMode
		}
		return false, inSelectMode

	case "optgroup", "option":
		if cur := c.currentNode(); cur != nil && cur.Name == "option" {
			c.stack.pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "rb", "rtc":
		if c.stack.inScope("ruby") {
			c.generateImpliedEndTags()
			if c.currentNode().Name != "ruby" {
				c.errs.report(ErrInvalidNesting, tok.Loc, "mis-nested ruby annotation")
			}
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "rp", "rt":
		if c.stack.inScope("ruby") {
			c.generateImpliedEndTags("rtc")
			if cur := c.currentNode(); cur.Name != "ruby" && cur.Name != "rtc" {
				c.errs.report(ErrInvalidNesting, tok.Loc, "mis-nested ruby annotation")
			}
		}
		c.insertHTMLElement(tok)
		return false, inBodyMode

	case "math":
		c.reconstructActiveFormattingElements()
		c.insertForeignElement(tok, dom.MathMLNamespace)
		if tok.SelfClosing {
			c.stack.pop()
		}
		return false, inBodyMode

	case "svg":
		c.reconstructActiveFormattingElements()
		c.insertForeignElement(tok, dom.SVGNamespace)
		if tok.SelfClosing {
			c.stack.pop()
		}
		return false, inBodyMode

	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "table part <%s> outside a table", tok.Name)
		return false, inBodyMode
	}

	// Element children of an open foreign subtree stay in its namespace.
	if cur := c.adjustedCurrentNode(); cur != nil && cur.Element != nil &&
		cur.Element.Namespace != dom.HTMLNamespace {
		c.insertForeignElement(tok, cur.Element.Namespace)
		if tok.SelfClosing {
			c.stack.pop()
		}
		return false, inBodyMode
	}
	c.reconstructActiveFormattingElements()
	c.insertHTMLElement(tok)
	return false, inBodyMode
}

// copyForFormatting snapshots a start tag for the active formatting list;
// the attribute list is cloned so later reconstruction clones are
// independent of the original element.
func copyForFormatting(tok *Token) Token {
	cp := *tok
	cp.Attributes = tok.Attributes.Clone()
	return cp
}

func (c *treeConstructor) inBodyEndTag(tok *Token) (bool, insertionMode) {
	switch tok.Name {
	case "template":
		return c.closeTemplate(tok), inBodyMode

	case "body":
		if !c.stack.inScope("body") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</body> with no open body")
			return false, inBodyMode
		}
		c.reportUnclosedAtBody(tok)
		return false, afterBodyMode

	case "html":
		if !c.stack.inScope("body") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</html> with no open body")
			return false, inBodyMode
		}
		c.reportUnclosedAtBody(tok)
		return true, afterBodyMode

	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "section", "summary", "ul":
		if !c.stack.inScope(tok.Name) {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
			return false, inBodyMode
		}
		c.generateImpliedEndTags()
		if c.currentNode().Name != tok.Name {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", tok.Name)
		}
		c.stack.popUntil(tok.Name)
		return false, inBodyMode

	case "form":
		if !c.stack.containsName("template") {
			node := c.form
			c.form = nil
			if node == nil || !c.stack.nodeInScope(node) {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</form> with no open form")
				return false, inBodyMode
			}
			c.generateImpliedEndTags()
			if c.currentNode() != node {
				c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <form>")
			}
			c.stack.remove(node)
			return false, inBodyMode
		}
		if !c.stack.inScope("form") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</form> with no open form")
			return false, inBodyMode
		}
		c.generateImpliedEndTags()
		if c.currentNode().Name != "form" {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <form>")
		}
		c.stack.popUntil("form")
		return false, inBodyMode

	case "p":
		if !c.stack.inButtonScope("p") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</p> with no open paragraph")
			synth := synthesizeTag("p", tok.Loc)
			c.insertHTMLElement(&synth)
		}
		c.closePElement(tok.Loc)
		return false, inBodyMode

	case "li":
		if !c.stack.inListItemScope("li") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</li> with no open list item")
			return false, inBodyMode
		}
		c.generateImpliedEndTags("li")
		if c.currentNode().Name != "li" {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <li>")
		}
		c.stack.popUntil("li")
		return false, inBodyMode

	case "dd", "dt":
		if !c.stack.inScope(tok.Name) {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
			return false, inBodyMode
		}
		c.generateImpliedEndTags(tok.Name)
		if c.currentNode().Name != tok.Name {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", tok.Name)
		}
		c.stack.popUntil(tok.Name)
		return false, inBodyMode

	case "h1", "h2", "h3", "h4", "h5", "h6":
		open := false
		for h := range headingElements {
			if c.stack.inScope(h) {
				open = true
				break
			}
		}
		if !open {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open heading", tok.Name)
			return false, inBodyMode
		}
		c.generateImpliedEndTags()
		if c.currentNode().Name != tok.Name {
			c.errs.report(ErrMissingEndTag, tok.Loc, "heading closed by </%s>", tok.Name)
		}
		c.stack.popUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return false, inBodyMode

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		if c.adoptionAgency(tok) {
			return false, inBodyMode
		}
		return c.anyOtherEndTag(tok), inBodyMode

	case "applet", "marquee", "object":
		if !c.stack.inScope(tok.Name) {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
			return false, inBodyMode
		}
		c.generateImpliedEndTags()
		if c.currentNode().Name != tok.Name {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", tok.Name)
		}
		c.stack.popUntil(tok.Name)
		c.formatting.clearToLastMarker()
		return false, inBodyMode

	case "br":
		c.errs.report(ErrUnexpectedToken, tok.Loc, "</br> treated as <br>")
		synth := synthesizeTag("br", tok.Loc)
		c.reconstructActiveFormattingElements()
		c.insertVoidElement(&synth)
		c.framesetOK = false
		return false, inBodyMode
	}
	return c.anyOtherEndTag(tok), inBodyMode
}

// reportUnclosedAtBody flags anything still open at </body> that the body
// end tag is not allowed to close implicitly.
func (c *treeConstructor) reportUnclosedAtBody(tok *Token) {
	for _, n := range c.stack {
		if !closedByBody[n.Name] {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed <%s> at </body>", n.Name)
		}
	}
}

// anyOtherEndTag pops to the matching open element; an end tag with no
// match, or one crossing a special element, is reported and dropped.
func (c *treeConstructor) anyOtherEndTag(tok *Token) bool {
	for i := len(c.stack) - 1; i >= 0; i-- {
		node := c.stack[i]
		if node.Name == tok.Name && node.Element != nil {
			c.generateImpliedEndTags(tok.Name)
			if node != c.currentNode() {
				c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", tok.Name)
			}
			c.stack.popUntilNode(node)
			return false
		}
		if isSpecial(node) {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s>", tok.Name)
			return false
		}
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s>", tok.Name)
	return false
}

func (c *treeConstructor) textModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		c.insertCharacter(tok)
		return false, textMode
	case EndOfFileToken:
		cur := c.currentNode()
		c.errs.report(ErrUnexpectedEOF, tok.Loc, "end of input inside <%s>", cur.Name)
		c.stack.pop()
		return true, c.origMode
	case EndTagToken:
		if tok.Name == "script" {
			script := c.stack.pop()
			c.pendingScript = script
			return false, c.origMode
		}
		c.stack.pop()
		return false, c.origMode
	}
	return false, textMode
}

func (c *treeConstructor) inTableModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if cur := c.currentNode(); cur != nil && tableFosterTargets[cur.Name] {
			c.pendingTableText = c.pendingTableText[:0]
			c.origMode = inTableMode
			return true, inTableTextMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, inTableMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inTableMode
	case EndOfFileToken:
		return c.useRulesFor(tok, inBodyMode)
	case StartTagToken:
		switch tok.Name {
		case "caption":
			c.stack.clearBackTo(tableClearBoundary)
			c.formatting.pushMarker()
			c.insertHTMLElement(tok)
			return false, inCaptionMode
		case "colgroup":
			c.stack.clearBackTo(tableClearBoundary)
			c.insertHTMLElement(tok)
			return false, inColumnGroupMode
		case "col":
			c.stack.clearBackTo(tableClearBoundary)
			synth := synthesizeTag("colgroup", tok.Loc)
			c.insertHTMLElement(&synth)
			return true, inColumnGroupMode
		case "tbody", "tfoot", "thead":
			c.stack.clearBackTo(tableClearBoundary)
			c.insertHTMLElement(tok)
			return false, inTableBodyMode
		case "td", "th", "tr":
			c.stack.clearBackTo(tableClearBoundary)
			synth := synthesizeTag("tbody", tok.Loc)
			c.insertHTMLElement(&synth)
			return true, inTableBodyMode
		case "table":
			c.errs.report(ErrInvalidNesting, tok.Loc, "<table> inside an open table")
			if !c.stack.inTableScope("table") {
				return false, inTableMode
			}
			c.stack.popUntil("table")
			c.resetInsertionMode()
			return true, c.mode
		case "style", "script", "template":
			return c.useRulesFor(tok, inHeadMode)
		case "input":
			if typ, ok := tok.Attributes.Get("type"); ok && strings.EqualFold(typ, "hidden") {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "hidden input inside table")
				c.insertVoidElement(tok)
				return false, inTableMode
			}
		case "form":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "<form> inside table")
			if c.stack.containsName("template") || c.form != nil {
				return false, inTableMode
			}
			c.form = c.insertHTMLElement(tok)
			c.stack.pop()
			return false, inTableMode
		}
	case EndTagToken:
		switch tok.Name {
		case "table":
			if !c.stack.inTableScope("table") {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</table> with no open table")
				return false, inTableMode
			}
			c.stack.popUntil("table")
			c.resetInsertionMode()
			return false, c.mode
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in table", tok.Name)
			return false, inTableMode
		case "template":
			return c.closeTemplate(tok), c.mode
		}
	}
	c.errs.report(ErrFosterParentedContent, tok.Loc, "content moved out of table")
	c.fosterOK = true
	reprocess, next := c.useRulesFor(tok, inBodyMode)
	c.fosterOK = false
	if next == inBodyMode {
		next = inTableMode
	}
	return reprocess, next
}

func (c *treeConstructor) inTableTextModeHandler(tok *Token) (bool, insertionMode) {
	if tok.Type == CharacterToken {
		if tok.Data == "\x00" {
			c.errs.report(ErrInvalidCharacter, tok.Loc, "null character in table text")
			return false, inTableTextMode
		}
		c.pendingTableText = append(c.pendingTableText, *tok)
		return false, inTableTextMode
	}

	allWS := true
	for i := range c.pendingTableText {
		if !isAllWhitespace(&c.pendingTableText[i]) {
			allWS = false
			break
		}
	}
	if allWS {
		for i := range c.pendingTableText {
			c.insertCharacter(&c.pendingTableText[i])
		}
	} else {
		c.errs.report(ErrFosterParentedContent, tok.Loc, "table text moved out of table")
		c.fosterOK = true
		for i := range c.pendingTableText {
			ctok := &c.pendingTableText[i]
			c.reconstructActiveFormattingElements()
			c.insertCharacter(ctok)
			if !isAllWhitespace(ctok) {
				c.framesetOK = false
			}
		}
		c.fosterOK = false
	}
	c.pendingTableText = c.pendingTableText[:0]
	return true, c.origMode
}

func (c *treeConstructor) inCaptionModeHandler(tok *Token) (bool, insertionMode) {
	closeCaption := func(reprocess bool) (bool, insertionMode) {
		if !c.stack.inTableScope("caption") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "no open caption to close")
			return false, inCaptionMode
		}
		c.generateImpliedEndTags()
		if c.currentNode().Name != "caption" {
			c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <caption>")
		}
		c.stack.popUntil("caption")
		c.formatting.clearToLastMarker()
		return reprocess, inTableMode
	}

	switch tok.Type {
	case StartTagToken:
		if anyOf(tok.Name, "caption", "col", "colgroup", "tbody", "td",
			"tfoot", "th", "thead", "tr") {
			return closeCaption(true)
		}
	case EndTagToken:
		switch tok.Name {
		case "caption":
			return closeCaption(false)
		case "table":
			return closeCaption(true)
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
			"th", "thead", "tr":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in caption", tok.Name)
			return false, inCaptionMode
		}
	}
	return c.useRulesFor(tok, inBodyMode)
}

func (c *treeConstructor) inColumnGroupModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			c.insertCharacter(tok)
			return false, inColumnGroupMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, inColumnGroupMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inColumnGroupMode
	case EndOfFileToken:
		return c.useRulesFor(tok, inBodyMode)
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "col":
			c.insertVoidElement(tok)
			return false, inColumnGroupMode
		case "template":
			return c.useRulesFor(tok, inHeadMode)
		}
	case EndTagToken:
		switch tok.Name {
		case "colgroup":
			if cur := c.currentNode(); cur == nil || cur.Name != "colgroup" {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</colgroup> with no open column group")
				return false, inColumnGroupMode
			}
			c.stack.pop()
			return false, inTableMode
		case "col":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </col>")
			return false, inColumnGroupMode
		case "template":
			return c.closeTemplate(tok), c.mode
		}
	}
	if cur := c.currentNode(); cur == nil || cur.Name != "colgroup" {
		c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected content in column group")
		return false, inColumnGroupMode
	}
	c.stack.pop()
	return true, inTableMode
}

func (c *treeConstructor) inTableBodyModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case StartTagToken:
		switch tok.Name {
		case "tr":
			c.stack.clearBackTo(tableBodyClearBoundary)
			c.insertHTMLElement(tok)
			return false, inRowMode
		case "th", "td":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "<%s> outside a row", tok.Name)
			c.stack.clearBackTo(tableBodyClearBoundary)
			synth := synthesizeTag("tr", tok.Loc)
			c.insertHTMLElement(&synth)
			return true, inRowMode
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			return c.closeTableBody(tok, true)
		}
	case EndTagToken:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			if !c.stack.inTableScope(tok.Name) {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
				return false, inTableBodyMode
			}
			c.stack.clearBackTo(tableBodyClearBoundary)
			c.stack.pop()
			return false, inTableMode
		case "table":
			return c.closeTableBody(tok, true)
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in table body", tok.Name)
			return false, inTableBodyMode
		}
	}
	return c.useRulesFor(tok, inTableMode)
}

func (c *treeConstructor) closeTableBody(tok *Token, reprocess bool) (bool, insertionMode) {
	if !c.stack.inTableScope("tbody") && !c.stack.inTableScope("thead") &&
		!c.stack.inTableScope("tfoot") {
		c.errs.report(ErrUnexpectedToken, tok.Loc, "no open table section")
		return false, inTableBodyMode
	}
	c.stack.clearBackTo(tableBodyClearBoundary)
	c.stack.pop()
	return reprocess, inTableMode
}

func (c *treeConstructor) inRowModeHandler(tok *Token) (bool, insertionMode) {
	closeRow := func(reprocess bool) (bool, insertionMode) {
		if !c.stack.inTableScope("tr") {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "no open table row")
			return false, inRowMode
		}
		c.stack.clearBackTo(tableRowClearBoundary)
		c.stack.pop()
		return reprocess, inTableBodyMode
	}

	switch tok.Type {
	case StartTagToken:
		switch tok.Name {
		case "th", "td":
			c.stack.clearBackTo(tableRowClearBoundary)
			c.insertHTMLElement(tok)
			c.formatting.pushMarker()
			return false, inCellMode
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			return closeRow(true)
		}
	case EndTagToken:
		switch tok.Name {
		case "tr":
			return closeRow(false)
		case "table":
			return closeRow(true)
		case "tbody", "tfoot", "thead":
			if !c.stack.inTableScope(tok.Name) {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
				return false, inRowMode
			}
			return closeRow(true)
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in table row", tok.Name)
			return false, inRowMode
		}
	}
	return c.useRulesFor(tok, inTableMode)
}

func (c *treeConstructor) inCellModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case StartTagToken:
		if anyOf(tok.Name, "caption", "col", "colgroup", "tbody", "td",
			"tfoot", "th", "thead", "tr") {
			if !c.stack.inTableScope("td") && !c.stack.inTableScope("th") {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "no open table cell")
				return false, inCellMode
			}
			return true, c.closeCell(tok)
		}
	case EndTagToken:
		switch tok.Name {
		case "td", "th":
			if !c.stack.inTableScope(tok.Name) {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open cell", tok.Name)
				return false, inCellMode
			}
			c.generateImpliedEndTags()
			if c.currentNode().Name != tok.Name {
				c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside <%s>", tok.Name)
			}
			c.stack.popUntil(tok.Name)
			c.formatting.clearToLastMarker()
			return false, inRowMode
		case "body", "caption", "col", "colgroup", "html":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in table cell", tok.Name)
			return false, inCellMode
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.stack.inTableScope(tok.Name) {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> with no open <%s>", tok.Name, tok.Name)
				return false, inCellMode
			}
			return true, c.closeCell(tok)
		}
	}
	return c.useRulesFor(tok, inBodyMode)
}

// closeCell ends the open td or th, returning the mode to continue in.
func (c *treeConstructor) closeCell(tok *Token) insertionMode {
	c.generateImpliedEndTags()
	if cur := c.currentNode(); cur != nil && cur.Name != "td" && cur.Name != "th" {
		c.errs.report(ErrMissingEndTag, tok.Loc, "unclosed element inside table cell")
	}
	c.stack.popUntil("td", "th")
	c.formatting.clearToLastMarker()
	return inRowMode
}

func (c *treeConstructor) inSelectModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if tok.Data == "\x00" {
			c.errs.report(ErrInvalidCharacter, tok.Loc, "null character in select")
			return false, inSelectMode
		}
		c.insertCharacter(tok)
		return false, inSelectMode
	case CommentToken:
		c.insertComment(tok)
		return false, inSelectMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inSelectMode
	case EndOfFileToken:
		return c.useRulesFor(tok, inBodyMode)
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "option":
			if cur := c.currentNode(); cur != nil && cur.Name == "option" {
				c.stack.pop()
			}
			c.insertHTMLElement(tok)
			return false, inSelectMode
		case "optgroup":
			if cur := c.currentNode(); cur != nil && cur.Name == "option" {
				c.stack.pop()
			}
			if cur := c.currentNode(); cur != nil && cur.Name == "optgroup" {
				c.stack.pop()
			}
			c.insertHTMLElement(tok)
			return false, inSelectMode
		case "select":
			c.errs.report(ErrInvalidNesting, tok.Loc, "<select> inside an open select")
			if !c.stack.inSelectScope("select") {
				return false, inSelectMode
			}
			c.stack.popUntil("select")
			c.resetInsertionMode()
			return false, c.mode
		case "input", "keygen", "textarea":
			c.errs.report(ErrUnexpectedToken, tok.Loc, "<%s> closes the open select", tok.Name)
			if !c.stack.inSelectScope("select") {
				return false, inSelectMode
			}
			c.stack.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		case "script", "template":
			return c.useRulesFor(tok, inHeadMode)
		}
	case EndTagToken:
		switch tok.Name {
		case "optgroup":
			if cur := c.currentNode(); cur != nil && cur.Name == "option" &&
				len(c.stack) >= 2 && c.stack[len(c.stack)-2].Name == "optgroup" {
				c.stack.pop()
			}
			if cur := c.currentNode(); cur != nil && cur.Name == "optgroup" {
				c.stack.pop()
			} else {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</optgroup> with no open optgroup")
			}
			return false, inSelectMode
		case "option":
			if cur := c.currentNode(); cur != nil && cur.Name == "option" {
				c.stack.pop()
			} else {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</option> with no open option")
			}
			return false, inSelectMode
		case "select":
			if !c.stack.inSelectScope("select") {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</select> with no open select")
				return false, inSelectMode
			}
			c.stack.popUntil("select")
			c.resetInsertionMode()
			return false, c.mode
		case "template":
			return c.closeTemplate(tok), c.mode
		}
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected content in select")
	return false, inSelectMode
}

func (c *treeConstructor) inSelectInTableModeHandler(tok *Token) (bool, insertionMode) {
	tableParts := []string{"caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th"}
	switch tok.Type {
	case StartTagToken:
		if anyOf(tok.Name, tableParts...) {
			c.errs.report(ErrInvalidNesting, tok.Loc, "<%s> closes the select inside a table", tok.Name)
			c.stack.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		}
	case EndTagToken:
		if anyOf(tok.Name, tableParts...) {
			c.errs.report(ErrUnexpectedToken, tok.Loc, "</%s> inside select in table", tok.Name)
			if !c.stack.inTableScope(tok.Name) {
				return false, inSelectInTableMode
			}
			c.stack.popUntil("select")
			c.resetInsertionMode()
			return true, c.mode
		}
	}
	reprocess, next := c.useRulesFor(tok, inSelectMode)
	if next == inSelectMode {
		next = inSelectInTableMode
	}
	return reprocess, next
}

func (c *treeConstructor) inTemplateModeHandler(tok *Token) (bool, insertionMode) {
	switchTemplateMode := func(mode insertionMode) (bool, insertionMode) {
		c.templateModes = c.templateModes[:len(c.templateModes)-1]
		c.templateModes = append(c.templateModes, mode)
		return true, mode
	}

	switch tok.Type {
	case CharacterToken, CommentToken, DoctypeToken:
		return c.useRulesFor(tok, inBodyMode)
	case EndOfFileToken:
		if !c.stack.containsName("template") {
			c.stopParsing()
			return false, inTemplateMode
		}
		c.errs.report(ErrUnexpectedEOF, tok.Loc, "end of input inside <template>")
		c.stack.popUntil("template")
		c.formatting.clearToLastMarker()
		if len(c.templateModes) > 0 {
			c.templateModes = c.templateModes[:len(c.templateModes)-1]
		}
		c.resetInsertionMode()
		return true, c.mode
	case StartTagToken:
		switch tok.Name {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			return c.useRulesFor(tok, inHeadMode)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			return switchTemplateMode(inTableMode)
		case "col":
			return switchTemplateMode(inColumnGroupMode)
		case "tr":
			return switchTemplateMode(inTableBodyMode)
		case "td", "th":
			return switchTemplateMode(inRowMode)
		}
		return switchTemplateMode(inBodyMode)
	case EndTagToken:
		if tok.Name == "template" {
			return c.closeTemplate(tok), c.mode
		}
		c.errs.report(ErrUnexpectedToken, tok.Loc, "stray end tag </%s> in template", tok.Name)
		return false, inTemplateMode
	}
	return false, inTemplateMode
}

func (c *treeConstructor) afterBodyModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			return c.useRulesFor(tok, inBodyMode)
		}
	case CommentToken:
		if root := c.stack.bottom(); root != nil {
			c.insertCommentIn(root, tok)
		}
		return false, afterBodyMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, afterBodyMode
	case StartTagToken:
		if tok.Name == "html" {
			return c.useRulesFor(tok, inBodyMode)
		}
	case EndTagToken:
		if tok.Name == "html" {
			if c.fragment {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</html> in fragment parsing")
				return false, afterBodyMode
			}
			return false, afterAfterBodyMode
		}
	case EndOfFileToken:
		c.stopParsing()
		return false, afterBodyMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "content after </body>")
	return true, inBodyMode
}

func (c *treeConstructor) inFramesetModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			c.insertCharacter(tok)
			return false, inFramesetMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, inFramesetMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, inFramesetMode
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "frameset":
			c.insertHTMLElement(tok)
			return false, inFramesetMode
		case "frame":
			c.insertVoidElement(tok)
			return false, inFramesetMode
		case "noframes":
			return c.useRulesFor(tok, inHeadMode)
		}
	case EndTagToken:
		if tok.Name == "frameset" {
			if cur := c.currentNode(); cur != nil && cur.Name == "html" {
				c.errs.report(ErrUnexpectedToken, tok.Loc, "</frameset> with no open frameset")
				return false, inFramesetMode
			}
			c.stack.pop()
			if cur := c.currentNode(); !c.fragment && cur != nil && cur.Name != "frameset" {
				return false, afterFramesetMode
			}
			return false, inFramesetMode
		}
	case EndOfFileToken:
		if cur := c.currentNode(); cur != nil && cur.Name != "html" {
			c.errs.report(ErrUnexpectedEOF, tok.Loc, "end of input inside frameset")
		}
		c.stopParsing()
		return false, inFramesetMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected content in frameset")
	return false, inFramesetMode
}

func (c *treeConstructor) afterFramesetModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok) {
			c.insertCharacter(tok)
			return false, afterFramesetMode
		}
	case CommentToken:
		c.insertComment(tok)
		return false, afterFramesetMode
	case DoctypeToken:
		c.errs.report(ErrUnexpectedToken, tok.Loc, "doctype after document start")
		return false, afterFramesetMode
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "noframes":
			return c.useRulesFor(tok, inHeadMode)
		}
	case EndTagToken:
		if tok.Name == "html" {
			return false, afterAfterFramesetMode
		}
	case EndOfFileToken:
		c.stopParsing()
		return false, afterFramesetMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "unexpected content after frameset")
	return false, afterFramesetMode
}

func (c *treeConstructor) afterAfterBodyModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CommentToken:
		c.insertCommentIn(c.doc, tok)
		return false, afterAfterBodyMode
	case DoctypeToken:
		return c.useRulesFor(tok, inBodyMode)
	case CharacterToken:
		if isAllWhitespace(tok) {
			return c.useRulesFor(tok, inBodyMode)
		}
	case StartTagToken:
		if tok.Name == "html" {
			return c.useRulesFor(tok, inBodyMode)
		}
	case EndOfFileToken:
		c.stopParsing()
		return false, afterAfterBodyMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "content after end of document")
	return true, inBodyMode
}

func (c *treeConstructor) afterAfterFramesetModeHandler(tok *Token) (bool, insertionMode) {
	switch tok.Type {
	case CommentToken:
		c.insertCommentIn(c.doc, tok)
		return false, afterAfterFramesetMode
	case DoctypeToken:
		return c.useRulesFor(tok, inBodyMode)
	case CharacterToken:
		if isAllWhitespace(tok) {
			return c.useRulesFor(tok, inBodyMode)
		}
	case StartTagToken:
		switch tok.Name {
		case "html":
			return c.useRulesFor(tok, inBodyMode)
		case "noframes":
			return c.useRulesFor(tok, inHeadMode)
		}
	case EndOfFileToken:
		c.stopParsing()
		return false, afterAfterFramesetMode
	}
	c.errs.report(ErrUnexpectedToken, tok.Loc, "content after end of document")
	return false, afterAfterFramesetMode
}
