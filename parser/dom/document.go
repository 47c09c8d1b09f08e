package dom

// QuirksMode is the rendering-compatibility mode a document was parsed
// under, decided by the doctype seen in the initial insertion mode.
type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

// Document holds the document-specific parts of a Node.
type Document struct {
	Mode QuirksMode
}

// DocumentElement returns the root element of a document node, usually the
// html element, or nil when the document has no element child.
func (n *Node) DocumentElement() *Node {
	if n.Type != DocumentNode {
		return nil
	}
	for _, child := range n.ChildNodes {
		if child.Type == ElementNode {
			return child
		}
	}
	return nil
}

// Head returns the document's head element, or nil.
func (n *Node) Head() *Node { return n.rootChild("head") }

// Body returns the document's body element, or nil. A frameset element in
// the body slot is returned as well, matching how user agents expose it.
func (n *Node) Body() *Node {
	if b := n.rootChild("body"); b != nil {
		return b
	}
	return n.rootChild("frameset")
}

func (n *Node) rootChild(name string) *Node {
	root := n.DocumentElement()
	if root == nil {
		return nil
	}
	for _, child := range root.ChildNodes {
		if child.Type == ElementNode && child.Name == name && child.Element.Namespace == HTMLNamespace {
			return child
		}
	}
	return nil
}
