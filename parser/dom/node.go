package dom

import (
	"sort"
	"strings"
)

// NodeType discriminates the concrete kind of a Node. The values match the
// numbering used by the DOM standard where one exists.
type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
	ScopeMarkerNode
)

// ScopeMarker is the sentinel entry placed in the list of active formatting
// elements when entering a scope-bounding context (table, cell, caption,
// template and friends). It is never inserted into a document tree.
var ScopeMarker = &Node{
	Type: ScopeMarkerNode,
	Name: "marker",
}

// Node is a single node in the document tree. The per-type structs are
// embedded as pointers; exactly one of them is non-nil, matching Type.
//
// A parent exclusively owns its children through ChildNodes; Parent,
// PrevSibling and NextSibling are non-owning back-references used for
// traversal only.
type Node struct {
	Type          NodeType
	Name          string
	OwnerDocument *Node
	Parent        *Node
	PrevSibling   *Node
	NextSibling   *Node
	ChildNodes    []*Node

	*Element
	*Text
	*Comment
	*DocumentType
	*Document
}

// NewDocument returns an empty document node that owns itself.
func NewDocument() *Node {
	n := &Node{
		Type:     DocumentNode,
		Name:     "#document",
		Document: &Document{Mode: NoQuirks},
	}
	n.OwnerDocument = n
	return n
}

// NewElement returns a detached element node in the given namespace.
func NewElement(od *Node, name string, ns Namespace, attrs AttrList) *Node {
	return &Node{
		Type:          ElementNode,
		Name:          name,
		OwnerDocument: od,
		Element: &Element{
			Namespace:  ns,
			Attributes: attrs,
		},
	}
}

// NewText returns a detached text node.
func NewText(od *Node, data string) *Node {
	return &Node{
		Type:          TextNode,
		Name:          "#text",
		OwnerDocument: od,
		Text:          &Text{Data: data},
	}
}

// NewComment returns a detached comment node.
func NewComment(od *Node, data string) *Node {
	return &Node{
		Type:          CommentNode,
		Name:          "#comment",
		OwnerDocument: od,
		Comment:       &Comment{Data: data},
	}
}

// NewDocumentType returns a detached doctype node.
func NewDocumentType(name, publicID, systemID string) *Node {
	return &Node{
		Type: DocumentTypeNode,
		Name: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: publicID,
			SystemID: systemID,
		},
	}
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool { return len(n.ChildNodes) > 0 }

// AppendChild detaches child from its current parent, if any, and appends it
// to n's child list.
func (n *Node) AppendChild(child *Node) *Node {
	child.Detach()
	if last := n.LastChild(); last != nil {
		last.NextSibling = child
		child.PrevSibling = last
	}
	child.Parent = n
	n.ChildNodes = append(n.ChildNodes, child)
	return child
}

// InsertBefore inserts child into n's child list immediately before ref.
// A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if ref == nil {
		return n.AppendChild(child)
	}
	child.Detach()
	for i, c := range n.ChildNodes {
		if c != ref {
			continue
		}
		n.ChildNodes = append(n.ChildNodes, nil)
		copy(n.ChildNodes[i+1:], n.ChildNodes[i:])
		n.ChildNodes[i] = child
		child.Parent = n
		child.NextSibling = ref
		child.PrevSibling = ref.PrevSibling
		if ref.PrevSibling != nil {
			ref.PrevSibling.NextSibling = child
		}
		ref.PrevSibling = child
		return child
	}
	return n.AppendChild(child)
}

// RemoveChild unlinks child from n. The removed subtree stays intact and may
// be re-inserted elsewhere.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.ChildNodes {
		if c != child {
			continue
		}
		n.ChildNodes = append(n.ChildNodes[:i], n.ChildNodes[i+1:]...)
		if child.PrevSibling != nil {
			child.PrevSibling.NextSibling = child.NextSibling
		}
		if child.NextSibling != nil {
			child.NextSibling.PrevSibling = child.PrevSibling
		}
		child.Parent = nil
		child.PrevSibling = nil
		child.NextSibling = nil
		return child
	}
	return nil
}

// Detach removes the node from its parent, if it has one.
func (n *Node) Detach() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Clone copies the node. With deep set, the whole subtree is copied. The
// clone is detached; sibling and parent links are not carried over.
func (n *Node) Clone(deep bool) *Node {
	clone := &Node{
		Type:          n.Type,
		Name:          n.Name,
		OwnerDocument: n.OwnerDocument,
	}
	switch n.Type {
	case ElementNode:
		clone.Element = &Element{
			Namespace:  n.Element.Namespace,
			Attributes: n.Element.Attributes.Clone(),
		}
	case TextNode:
		clone.Text = &Text{Data: n.Text.Data}
	case CommentNode:
		clone.Comment = &Comment{Data: n.Comment.Data}
	case DocumentTypeNode:
		clone.DocumentType = &DocumentType{
			Name:     n.DocumentType.Name,
			PublicID: n.DocumentType.PublicID,
			SystemID: n.DocumentType.SystemID,
		}
	case DocumentNode:
		clone.Document = &Document{Mode: n.Document.Mode}
		clone.OwnerDocument = clone
	}
	if deep {
		for _, child := range n.ChildNodes {
			clone.AppendChild(child.Clone(true))
		}
	}
	return clone
}

func (n *Node) dumpSelf(sb *strings.Builder, depth int) {
	indent := ""
	if depth > 0 {
		indent = "| " + strings.Repeat("  ", depth-1)
	}
	switch n.Type {
	case DocumentNode:
		sb.WriteString("#document\n")
	case ElementNode:
		sb.WriteString(indent + "<")
		switch n.Element.Namespace {
		case SVGNamespace:
			sb.WriteString("svg ")
		case MathMLNamespace:
			sb.WriteString("math ")
		}
		sb.WriteString(n.Name + ">\n")
		if len(n.Element.Attributes) > 0 {
			attrs := n.Element.Attributes.Clone()
			sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
			for _, a := range attrs {
				sb.WriteString(indent + "  " + a.Name + "=\"" + a.Value + "\"\n")
			}
		}
	case TextNode:
		sb.WriteString(indent + "\"" + n.Text.Data + "\"\n")
	case CommentNode:
		sb.WriteString(indent + "<!-- " + n.Comment.Data + " -->\n")
	case DocumentTypeNode:
		sb.WriteString(indent + "<!DOCTYPE " + n.DocumentType.Name)
		if n.DocumentType.PublicID != "" || n.DocumentType.SystemID != "" {
			sb.WriteString(" \"" + n.DocumentType.PublicID + "\" \"" + n.DocumentType.SystemID + "\"")
		}
		sb.WriteString(">\n")
	}
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	n.dumpSelf(sb, depth)
	for _, child := range n.ChildNodes {
		child.dump(sb, depth+1)
	}
}

// String renders the tree in the html5lib test dump format, one node per
// line with "| " indentation and attributes sorted by name.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}
