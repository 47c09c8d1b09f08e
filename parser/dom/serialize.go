package dom

import "strings"

// https://html.spec.whatwg.org/multipage/parsing.html#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, " ", "&nbsp;")
	if attrVal {
		s = strings.ReplaceAll(s, "\"", "&quot;")
	} else {
		s = strings.ReplaceAll(s, "<", "&lt;")
		s = strings.ReplaceAll(s, ">", "&gt;")
	}
	return s
}

var voidSerialization = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true,
	"br": true, "col": true, "embed": true, "frame": true, "hr": true,
	"img": true, "input": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextSerialization = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true, "noscript": true,
}

// Serialize renders the children of node as HTML markup, following the HTML
// fragment serialization algorithm. Attribute order is preserved as stored.
func Serialize(node *Node) string {
	var sb strings.Builder
	serializeChildren(&sb, node)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, node *Node) {
	switch node.Name {
	case "basefont", "bgsound", "frame", "keygen":
		return
	}
	for _, child := range node.ChildNodes {
		serializeNode(sb, child)
	}
}

func serializeNode(sb *strings.Builder, node *Node) {
	switch node.Type {
	case ElementNode:
		sb.WriteString("<" + node.Name)
		for _, a := range node.Element.Attributes {
			sb.WriteString(" " + a.Name + "=\"" + escapeString(a.Value, true) + "\"")
		}
		sb.WriteString(">")
		if voidSerialization[node.Name] && node.Element.Namespace == HTMLNamespace {
			return
		}
		serializeChildren(sb, node)
		sb.WriteString("</" + node.Name + ">")
	case TextNode:
		if p := node.Parent; p != nil && p.Type == ElementNode && rawTextSerialization[p.Name] {
			sb.WriteString(node.Text.Data)
		} else {
			sb.WriteString(escapeString(node.Text.Data, false))
		}
	case CommentNode:
		sb.WriteString("<!--" + node.Comment.Data + "-->")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE " + node.DocumentType.Name + ">")
	}
}
