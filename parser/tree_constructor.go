package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/willowweb/willow/parser/dom"
)

type insertionMode uint

const (
	initialMode insertionMode = iota
	beforeHTMLMode
	beforeHeadMode
	inHeadMode
	inHeadNoscriptMode
	afterHeadMode
	inBodyMode
	textMode
	inTableMode
	inTableTextMode
	inCaptionMode
	inColumnGroupMode
	inTableBodyMode
	inRowMode
	inCellMode
	inSelectMode
	inSelectInTableMode
	inTemplateMode
	afterBodyMode
	inFramesetMode
	afterFramesetMode
	afterAfterBodyMode
	afterAfterFramesetMode
)

func (m insertionMode) String() string {
	switch m {
	case initialMode:
		return "initial"
	case beforeHTMLMode:
		return "before-html"
	case beforeHeadMode:
		return "before-head"
	case inHeadMode:
		return "in-head"
	case inHeadNoscriptMode:
		return "in-head-noscript"
	case afterHeadMode:
		return "after-head"
	case inBodyMode:
		return "in-body"
	case textMode:
		return "text"
	case inTableMode:
		return "in-table"
	case inTableTextMode:
		return "in-table-text"
	case inCaptionMode:
		return "in-caption"
	case inColumnGroupMode:
		return "in-column-group"
	case inTableBodyMode:
		return "in-table-body"
	case inRowMode:
		return "in-row"
	case inCellMode:
		return "in-cell"
	case inSelectMode:
		return "in-select"
	case inSelectInTableMode:
		return "in-select-in-table"
	case inTemplateMode:
		return "in-template"
	case afterBodyMode:
		return "after-body"
	case inFramesetMode:
		return "in-frameset"
	case afterFramesetMode:
		return "after-frameset"
	case afterAfterBodyMode:
		return "after-after-body"
	case afterAfterFramesetMode:
		return "after-after-frameset"
	}
	return "unknown"
}

// A modeHandler processes one token in one insertion mode and reports
// whether the token must be reprocessed, plus the mode to continue in.
type modeHandler func(tok *Token) (reprocess bool, next insertionMode)

// treeConstructor consumes the token stream and builds the document tree,
// switching insertion modes as structure accumulates. Recovery never
// fails: unexpected tokens are reported through the error sink and the
// machine continues.
type treeConstructor struct {
	doc        *dom.Node
	mode       insertionMode
	origMode   insertionMode
	stack      openElementStack
	formatting activeFormattingList

	head *dom.Node
	form *dom.Node

	framesetOK bool
	scripting  bool
	fosterOK   bool
	quirks     bool

	// ignoreLF eats the newline immediately following <pre>, <listing>
	// and <textarea> start tags.
	ignoreLF      bool
	templateModes []insertionMode

	// fragment parsing context
	fragment bool
	context  *dom.Node

	pendingTableText []Token

	// pendingScript, when set after processing a token, is a script
	// element whose text is complete and whose execution point has been
	// reached. The driver collects it.
	pendingScript *dom.Node

	tokenizer *Tokenizer
	errs      *errorSink
	log       *logrus.Logger
}

func newTreeConstructor(tk *Tokenizer, errs *errorSink, log *logrus.Logger) *treeConstructor {
	return &treeConstructor{
		doc:        dom.NewDocument(),
		mode:       initialMode,
		framesetOK: true,
		tokenizer:  tk,
		errs:       errs,
		log:        log,
	}
}

func (c *treeConstructor) handlerFor(mode insertionMode) modeHandler {
	switch mode {
	case initialMode:
		return c.initialModeHandler
	case beforeHTMLMode:
		return c.beforeHTMLModeHandler
	case beforeHeadMode:
		return c.beforeHeadModeHandler
	case inHeadMode:
		return c.inHeadModeHandler
	case inHeadNoscriptMode:
		return c.inHeadNoscriptModeHandler
	case afterHeadMode:
		return c.afterHeadModeHandler
	case inBodyMode:
		return c.inBodyModeHandler
	case textMode:
		return c.textModeHandler
	case inTableMode:
		return c.inTableModeHandler
	case inTableTextMode:
		return c.inTableTextModeHandler
	case inCaptionMode:
		return c.inCaptionModeHandler
	case inColumnGroupMode:
		return c.inColumnGroupModeHandler
	case inTableBodyMode:
		return c.inTableBodyModeHandler
	case inRowMode:
		return c.inRowModeHandler
	case inCellMode:
		return c.inCellModeHandler
	case inSelectMode:
		return c.inSelectModeHandler
	case inSelectInTableMode:
		return c.inSelectInTableModeHandler
	case inTemplateMode:
		return c.inTemplateModeHandler
	case afterBodyMode:
		return c.afterBodyModeHandler
	case inFramesetMode:
		return c.inFramesetModeHandler
	case afterFramesetMode:
		return c.afterFramesetModeHandler
	case afterAfterBodyMode:
		return c.afterAfterBodyModeHandler
	case afterAfterFramesetMode:
		return c.afterAfterFramesetModeHandler
	}
	return c.inBodyModeHandler
}

// processToken runs the mode dispatch, reprocessing as directed until the
// token is absorbed.
func (c *treeConstructor) processToken(tok *Token) {
	if c.ignoreLF {
		c.ignoreLF = false
		if tok.Type == CharacterToken && tok.Data == "\n" {
			return
		}
	}
	reprocess := true
	for reprocess {
		c.log.WithFields(logrus.Fields{
			"mode":  c.mode.String(),
			"token": tok.Type.String(),
		}).Debug("process token")
		reprocess, c.mode = c.handlerFor(c.mode)(tok)
	}
	c.syncTokenizerContext()
}

// useRulesFor processes the token under another mode's rules without
// leaving the current one, unless that handler itself switches modes.
func (c *treeConstructor) useRulesFor(tok *Token, mode insertionMode) (bool, insertionMode) {
	reprocess, next := c.handlerFor(mode)(tok)
	if next == mode {
		next = c.mode
	}
	return reprocess, next
}

// syncTokenizerContext keeps the tokenizer's foreign-content flag aligned
// with the adjusted current node, which gates CDATA sections.
func (c *treeConstructor) syncTokenizerContext() {
	n := c.adjustedCurrentNode()
	foreign := n != nil && n.Element != nil && n.Element.Namespace != dom.HTMLNamespace
	c.tokenizer.setForeignContext(foreign)
}

func (c *treeConstructor) currentNode() *dom.Node { return c.stack.current() }

// adjustedCurrentNode is the context element when the stack holds only the
// fragment root, otherwise the current node.
func (c *treeConstructor) adjustedCurrentNode() *dom.Node {
	if c.fragment && len(c.stack) == 1 {
		return c.context
	}
	return c.currentNode()
}

// insertionTarget computes where the next node lands. Content that arrives
// while a table element is current is foster parented: re-homed before the
// table rather than inside it.
func (c *treeConstructor) insertionTarget() (parent, before *dom.Node) {
	target := c.currentNode()
	if target == nil {
		return c.doc, nil
	}
	if c.fosterOK && tableFosterTargets[target.Name] {
		return c.fosterTargetFor(target)
	}
	return target, nil
}

// insertCharacter adds one character of text at the insertion point,
// merging into a preceding text node when one is already there.
func (c *treeConstructor) insertCharacter(tok *Token) {
	parent, before := c.insertionTarget()
	if parent.Type == dom.DocumentNode {
		return
	}
	var prev *dom.Node
	if before != nil {
		prev = before.PrevSibling
	} else {
		prev = parent.LastChild()
	}
	if prev != nil && prev.Type == dom.TextNode {
		prev.Text.Data += tok.Data
		return
	}
	text := dom.NewText(c.doc, tok.Data)
	parent.InsertBefore(text, before)
}

func (c *treeConstructor) insertComment(tok *Token) {
	parent, before := c.insertionTarget()
	parent.InsertBefore(dom.NewComment(c.doc, tok.Data), before)
}

func (c *treeConstructor) insertCommentIn(parent *dom.Node, tok *Token) {
	parent.AppendChild(dom.NewComment(c.doc, tok.Data))
}

// createElementForToken makes an element in the given namespace carrying
// the token's attributes.
func (c *treeConstructor) createElementForToken(tok *Token, ns dom.Namespace) *dom.Node {
	return dom.NewElement(c.doc, tok.Name, ns, tok.Attributes.Clone())
}

// insertHTMLElement creates an element for the token, inserts it at the
// appropriate place and pushes it onto the open element stack.
func (c *treeConstructor) insertHTMLElement(tok *Token) *dom.Node {
	return c.insertForeignElement(tok, dom.HTMLNamespace)
}

func (c *treeConstructor) insertForeignElement(tok *Token, ns dom.Namespace) *dom.Node {
	n := c.createElementForToken(tok, ns)
	parent, before := c.insertionTarget()
	parent.InsertBefore(n, before)
	c.stack.push(n)
	return n
}

// insertVoidElement inserts an element that can never have children; it is
// pushed and immediately popped so it is never the insertion target.
func (c *treeConstructor) insertVoidElement(tok *Token) *dom.Node {
	n := c.insertHTMLElement(tok)
	c.stack.pop()
	if tok.SelfClosing {
		// acknowledged
	}
	return n
}

func (c *treeConstructor) generateImpliedEndTags(except ...string) {
	for {
		cur := c.currentNode()
		if cur == nil || !impliedEndTags[cur.Name] {
			return
		}
		for _, e := range except {
			if cur.Name == e {
				return
			}
		}
		c.stack.pop()
	}
}

// closePElement closes an open p element, reporting when other elements
// had to be implicitly closed with it.
func (c *treeConstructor) closePElement(loc Location) {
	c.generateImpliedEndTags("p")
	if c.currentNode() != nil && c.currentNode().Name != "p" {
		c.errs.report(ErrMissingEndTag, loc, "unclosed element inside <p>")
	}
	c.stack.popUntil("p")
}

// reconstructActiveFormattingElements reopens formatting elements that
// were closed by block boundaries while still logically active, cloning
// them from their original start tags.
func (c *treeConstructor) reconstructActiveFormattingElements() {
	if len(c.formatting) == 0 {
		return
	}
	last := c.formatting[len(c.formatting)-1]
	if last.isMarker() || c.stack.contains(last.node) {
		return
	}
	// Walk back to the first entry needing reconstruction.
	i := len(c.formatting) - 1
	for i > 0 {
		prev := c.formatting[i-1]
		if prev.isMarker() || c.stack.contains(prev.node) {
			break
		}
		i--
	}
	for ; i < len(c.formatting); i++ {
		entry := c.formatting[i]
		n := c.insertHTMLElement(&entry.token)
		c.formatting[i].node = n
	}
}

// anyOf reports whether name is one of the given values.
func anyOf(name string, values ...string) bool {
	for _, v := range values {
		if name == v {
			return true
		}
	}
	return false
}

// adoptionAgency handles mis-nested formatting end tags like
// "<b>1<i>2</b>3</i>", restructuring the tree so both formatting runs
// cover the text they should. Returns true when the token was fully
// handled; false means fall back to the any-other-end-tag steps.
func (c *treeConstructor) adoptionAgency(tok *Token) bool {
	subject := tok.Name

	if cur := c.currentNode(); cur != nil && cur.Name == subject &&
		cur.Element.Namespace == dom.HTMLNamespace && c.formatting.indexOf(cur) < 0 {
		c.stack.pop()
		return true
	}

	for outer := 0; outer < 8; outer++ {
		entry, entryIdx := c.formatting.entryBetweenMarkerAndEnd(subject)
		if entryIdx < 0 {
			return false
		}
		fmtElem := entry.node

		if !c.stack.contains(fmtElem) {
			c.errs.report(ErrInvalidNesting, tok.Loc, "formatting element </%s> no longer open", subject)
			c.formatting.remove(fmtElem)
			return true
		}
		if !c.stack.nodeInScope(fmtElem) {
			c.errs.report(ErrInvalidNesting, tok.Loc, "formatting element </%s> out of scope", subject)
			return true
		}
		if fmtElem != c.currentNode() {
			c.errs.report(ErrInvalidNesting, tok.Loc, "mis-nested formatting element </%s>", subject)
		}

		stackIdx := c.stack.indexOf(fmtElem)

		// furthest block: the lowest special element above the formatting
		// element on the stack.
		var furthestBlock *dom.Node
		furthestIdx := -1
		for i := stackIdx + 1; i < len(c.stack); i++ {
			if isSpecial(c.stack[i]) {
				furthestBlock = c.stack[i]
				furthestIdx = i
				break
			}
		}
		if furthestBlock == nil {
			c.stack.popUntilNode(fmtElem)
			c.formatting.remove(fmtElem)
			return true
		}

		commonAncestor := c.stack[stackIdx-1]
		bookmark := entryIdx

		node, lastNode := furthestBlock, furthestBlock
		nodeIdx := furthestIdx
		for inner := 1; ; inner++ {
			nodeIdx--
			node = c.stack[nodeIdx]
			if node == fmtElem {
				break
			}
			nodeFmtIdx := c.formatting.indexOf(node)
			if inner > 3 && nodeFmtIdx >= 0 {
				c.formatting.remove(node)
				nodeFmtIdx = -1
			}
			if nodeFmtIdx < 0 {
				c.stack.remove(node)
				continue
			}
			clone := node.Clone(false)
			c.formatting[nodeFmtIdx].node = clone
			c.stack.replace(node, clone)
			node = clone
			if lastNode == furthestBlock {
				bookmark = nodeFmtIdx + 1
			}
			lastNode.Detach()
			node.AppendChild(lastNode)
			lastNode = node
		}

		lastNode.Detach()
		if c.fosterOK && tableFosterTargets[commonAncestor.Name] {
			parent, before := c.fosterTargetFor(commonAncestor)
			parent.InsertBefore(lastNode, before)
		} else {
			commonAncestor.AppendChild(lastNode)
		}

		clone := fmtElem.Clone(false)
		for _, child := range append([]*dom.Node(nil), furthestBlock.ChildNodes...) {
			child.Detach()
			clone.AppendChild(child)
		}
		furthestBlock.AppendChild(clone)

		fmtTok := c.formatting[entryIdx].token
		c.formatting.remove(fmtElem)
		if bookmark > entryIdx {
			bookmark--
		}
		c.formatting.insertAt(bookmark, clone, fmtTok)

		c.stack.remove(fmtElem)
		c.stack.insertAfter(furthestBlock, clone)
	}
	return true
}

// fosterTargetFor locates the foster insertion point: inside the last
// open template when it is more recent than the last open table, otherwise
// before the last table. Without either the content goes into the bottom
// element.
func (c *treeConstructor) fosterTargetFor(from *dom.Node) (parent, before *dom.Node) {
	templateIdx, tableIdx := -1, -1
	for i := len(c.stack) - 1; i >= 0; i-- {
		switch c.stack[i].Name {
		case "template":
			if templateIdx < 0 {
				templateIdx = i
			}
		case "table":
			if tableIdx < 0 {
				tableIdx = i
			}
		}
	}
	if templateIdx >= 0 && templateIdx > tableIdx {
		return c.stack[templateIdx], nil
	}
	if tableIdx < 0 {
		return c.stack.bottom(), nil
	}
	table := c.stack[tableIdx]
	if table.Parent != nil {
		return table.Parent, table
	}
	return c.stack[tableIdx-1], nil
}

// resetInsertionMode recomputes the mode from the stack, used after
// mis-nesting recovery and fragment setup.
func (c *treeConstructor) resetInsertionMode() {
	c.mode = c.computedInsertionMode()
}

func (c *treeConstructor) computedInsertionMode() insertionMode {
	for i := len(c.stack) - 1; i >= 0; i-- {
		node := c.stack[i]
		last := i == 0
		if c.fragment && last {
			node = c.context
		}
		switch node.Name {
		case "select":
			for j := i - 1; j >= 0; j-- {
				switch c.stack[j].Name {
				case "template":
					return inSelectMode
				case "table":
					return inSelectInTableMode
				}
			}
			return inSelectMode
		case "td", "th":
			if !last {
				return inCellMode
			}
		case "tr":
			return inRowMode
		case "tbody", "thead", "tfoot":
			return inTableBodyMode
		case "caption":
			return inCaptionMode
		case "colgroup":
			return inColumnGroupMode
		case "table":
			return inTableMode
		case "head":
			if !last {
				return inHeadMode
			}
		case "body":
			return inBodyMode
		case "frameset":
			return inFramesetMode
		case "html":
			if c.head == nil {
				return beforeHeadMode
			}
			return afterHeadMode
		}
		if last {
			return inBodyMode
		}
	}
	return inBodyMode
}

// Quirks classification. A missing or malformed doctype, or one carrying
// a legacy public identifier, drops the document into quirks mode.
var quirksPublicIDs = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirksPublicIDsExact = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

var limitedQuirksPublicIDs = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

func classifyDoctype(tok *Token) dom.QuirksMode {
	if tok.ForceQuirks || tok.Name != "html" {
		return dom.Quirks
	}
	public := strings.ToLower(tok.PublicID)
	system := strings.ToLower(tok.SystemID)

	if tok.HasSystemID && system == "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd" {
		return dom.Quirks
	}
	if tok.HasPublicID {
		for _, exact := range quirksPublicIDsExact {
			if public == exact {
				return dom.Quirks
			}
		}
		for _, prefix := range quirksPublicIDs {
			if strings.HasPrefix(public, prefix) {
				return dom.Quirks
			}
		}
		for _, prefix := range limitedQuirksPublicIDs {
			if strings.HasPrefix(public, prefix) {
				return dom.LimitedQuirks
			}
		}
		if !tok.HasSystemID &&
			(strings.HasPrefix(public, "-//w3c//dtd html 4.01 frameset//") ||
				strings.HasPrefix(public, "-//w3c//dtd html 4.01 transitional//")) {
			return dom.Quirks
		}
		if tok.HasSystemID &&
			(strings.HasPrefix(public, "-//w3c//dtd html 4.01 frameset//") ||
				strings.HasPrefix(public, "-//w3c//dtd html 4.01 transitional//")) {
			return dom.LimitedQuirks
		}
	}
	return dom.NoQuirks
}

// isAllWhitespace reports whether a character token holds only whitespace.
func isAllWhitespace(tok *Token) bool {
	for _, r := range tok.Data {
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}

// genericRawText follows the raw text element parsing algorithm: the
// element's content is tokenized without markup until its matching end tag.
func (c *treeConstructor) genericRawText(tok *Token) insertionMode {
	c.insertHTMLElement(tok)
	c.tokenizer.setState(rawTextState)
	c.origMode = c.mode
	return textMode
}

func (c *treeConstructor) genericRCDATA(tok *Token) insertionMode {
	c.insertHTMLElement(tok)
	c.tokenizer.setState(rcDataState)
	c.origMode = c.mode
	return textMode
}

// synthesizeTag makes a token for an element the machine must imply, like
// the html, head and body skeleton or a missing tbody.
func synthesizeTag(name string, loc Location) Token {
	return Token{Type: StartTagToken, Name: name, Loc: loc}
}

// stopParsing pops the remaining open elements; anything left beyond body
// and html has already been reported where it was noticed.
func (c *treeConstructor) stopParsing() {
	for len(c.stack) > 0 {
		c.stack.pop()
	}
}
