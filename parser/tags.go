package parser

import "github.com/willowweb/willow/parser/dom"

// Tag classification tables. The scope boundary sets and the special
// elements list come from the published HTML parsing algorithm tables.

// specialElements are the block-structural tags that bound implicit closing
// and the adoption agency's furthest-block search. The MathML and SVG
// entries are the text/HTML integration points.
var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true,
	"aside": true, "base": true, "basefont": true, "bgsound": true,
	"blockquote": true, "body": true, "br": true, "button": true,
	"caption": true, "center": true, "col": true, "colgroup": true,
	"dd": true, "details": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true,
	"frameset": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "head": true, "header": true, "hgroup": true,
	"hr": true, "html": true, "iframe": true, "img": true, "input": true,
	"keygen": true, "li": true, "link": true, "listing": true, "main": true,
	"marquee": true, "menu": true, "meta": true, "nav": true, "noembed": true,
	"noframes": true, "noscript": true, "object": true, "ol": true,
	"p": true, "param": true, "plaintext": true, "pre": true, "script": true,
	"section": true, "select": true, "source": true, "style": true,
	"summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "textarea": true, "tfoot": true, "th": true,
	"thead": true, "title": true, "tr": true, "track": true, "ul": true,
	"wbr": true, "xmp": true,
}

var specialMathML = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
	"annotation-xml": true,
}

var specialSVG = map[string]bool{
	"foreignObject": true, "desc": true, "title": true,
}

func isSpecial(n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	switch n.Element.Namespace {
	case dom.HTMLNamespace:
		return specialElements[n.Name]
	case dom.MathMLNamespace:
		return specialMathML[n.Name]
	case dom.SVGNamespace:
		return specialSVG[n.Name]
	}
	return false
}

// formattingElements are the inline styling tags subject to the active
// formatting list, reconstruction and the adoption agency.
var formattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true,
	"font": true, "i": true, "nobr": true, "s": true, "small": true,
	"strike": true, "strong": true, "tt": true, "u": true,
}

func isFormatting(name string) bool { return formattingElements[name] }

// voidElements are inserted and immediately popped; they never receive
// children.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true,
	"br": true, "col": true, "embed": true, "frame": true, "hr": true,
	"img": true, "input": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoid(name string) bool { return voidElements[name] }

// defaultScopeBoundary is the stop set for the plain "in scope" query.
var defaultScopeBoundary = []string{
	"applet", "caption", "html", "table", "td", "th", "marquee", "object",
	"template",
	// MathML text integration points
	"mi", "mo", "mn", "ms", "mtext", "annotation-xml",
	// HTML integration points in SVG
	"foreignObject", "desc", "title",
}

var listItemScopeBoundary = append([]string{"ol", "ul"}, defaultScopeBoundary...)
var buttonScopeBoundary = append([]string{"button"}, defaultScopeBoundary...)
var tableScopeBoundary = []string{"html", "table", "template"}

// impliedEndTags are the tags closed by "generate implied end tags".
var impliedEndTags = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// closedByBody lists what may remain open at </body> without it being a
// parse error.
var closedByBody = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"tr": true, "body": true, "html": true,
}

var headingElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// tableContextTags bound "clear the stack back to a table/table-body/row
// context".
var tableClearBoundary = map[string]bool{
	"table": true, "template": true, "html": true,
}

var tableBodyClearBoundary = map[string]bool{
	"tbody": true, "tfoot": true, "thead": true, "template": true, "html": true,
}

var tableRowClearBoundary = map[string]bool{
	"tr": true, "template": true, "html": true,
}

// tableFosterTargets are the elements whose being current triggers foster
// parenting for content that does not belong in a table. Fostered content
// that is logically inside a template stays in the template; see
// fosterTargetFor.
var tableFosterTargets = map[string]bool{
	"table": true, "tbody": true, "tfoot": true, "thead": true, "tr": true,
	"template": true,
}
