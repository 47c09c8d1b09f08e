package dom

// Namespace identifies the namespace an element or attribute was created in.
type Namespace uint

const (
	HTMLNamespace Namespace = iota
	MathMLNamespace
	SVGNamespace
	XLinkNamespace
	XMLNamespace
	XMLNSNamespace
)

// Element holds the element-specific parts of a Node.
type Element struct {
	Namespace  Namespace
	Attributes AttrList
}

// Text holds character data for a text node.
type Text struct {
	Data string
}

// Comment holds the data of a comment node.
type Comment struct {
	Data string
}

// DocumentType holds the name and identifiers of a doctype node.
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}
