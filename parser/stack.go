package parser

import "github.com/willowweb/willow/parser/dom"

// openElementStack tracks the elements whose end tags have not been seen
// yet. Index 0 is the bottom (the html element in a full document parse);
// the last entry is the current node.
type openElementStack []*dom.Node

func (s *openElementStack) push(n *dom.Node) { *s = append(*s, n) }

func (s *openElementStack) pop() *dom.Node {
	if len(*s) == 0 {
		return nil
	}
	n := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return n
}

// current is the topmost (most recently pushed) node.
func (s openElementStack) current() *dom.Node {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// bottom is the first node pushed, the html root in document parsing.
func (s openElementStack) bottom() *dom.Node {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

func (s openElementStack) contains(n *dom.Node) bool {
	return s.indexOf(n) >= 0
}

func (s openElementStack) indexOf(n *dom.Node) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == n {
			return i
		}
	}
	return -1
}

func (s openElementStack) containsName(name string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if s.htmlElementNamed(i, name) {
			return true
		}
	}
	return false
}

func (s openElementStack) htmlElementNamed(i int, name string) bool {
	n := s[i]
	return n.Name == name && n.Element != nil && n.Element.Namespace == dom.HTMLNamespace
}

func (s *openElementStack) remove(n *dom.Node) {
	i := s.indexOf(n)
	if i < 0 {
		return
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
}

// insertAfter places n directly above ref on the stack.
func (s *openElementStack) insertAfter(ref, n *dom.Node) {
	i := s.indexOf(ref)
	if i < 0 {
		s.push(n)
		return
	}
	*s = append(*s, nil)
	copy((*s)[i+2:], (*s)[i+1:])
	(*s)[i+1] = n
}

func (s openElementStack) replace(old, n *dom.Node) {
	if i := s.indexOf(old); i >= 0 {
		s[i] = n
	}
}

// popUntil pops elements until one of the named HTML elements has been
// popped. Pops everything if none matches.
func (s *openElementStack) popUntil(names ...string) {
	for len(*s) > 0 {
		n := s.pop()
		for _, name := range names {
			if n.Name == name && n.Element != nil && n.Element.Namespace == dom.HTMLNamespace {
				return
			}
		}
	}
}

// popUntilNode pops elements up to and including n.
func (s *openElementStack) popUntilNode(n *dom.Node) {
	for len(*s) > 0 {
		if s.pop() == n {
			return
		}
	}
}

// clearBackTo pops until the current node is in the given boundary set,
// leaving the boundary element on the stack.
func (s *openElementStack) clearBackTo(boundary map[string]bool) {
	for len(*s) > 0 {
		cur := s.current()
		if cur.Element != nil && cur.Element.Namespace == dom.HTMLNamespace && boundary[cur.Name] {
			return
		}
		s.pop()
	}
}

// inScope walks from the current node downward; finding target before any
// boundary element means target is in scope. Non-HTML elements only ever
// act as boundaries, never as targets.
func (s openElementStack) inScopeWith(target string, boundary []string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		n := s[i]
		if n.Element == nil {
			continue
		}
		html := n.Element.Namespace == dom.HTMLNamespace
		if html && n.Name == target {
			return true
		}
		for _, b := range boundary {
			if n.Name == b && scopeBoundaryNamespaceMatches(n, b) {
				return false
			}
		}
	}
	return false
}

// scopeBoundaryNamespaceMatches keeps the MathML and SVG entries of the
// default boundary set from matching same-named HTML elements (and vice
// versa for "title").
func scopeBoundaryNamespaceMatches(n *dom.Node, b string) bool {
	switch b {
	case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
		return n.Element.Namespace == dom.MathMLNamespace
	case "foreignObject", "desc":
		return n.Element.Namespace == dom.SVGNamespace
	case "title":
		// In the default set "title" refers to SVG <title> only; HTML
		// <title> lives in head and is not a scope boundary.
		return n.Element.Namespace == dom.SVGNamespace
	default:
		return n.Element.Namespace == dom.HTMLNamespace
	}
}

func (s openElementStack) inScope(target string) bool {
	return s.inScopeWith(target, defaultScopeBoundary)
}

func (s openElementStack) inListItemScope(target string) bool {
	return s.inScopeWith(target, listItemScopeBoundary)
}

func (s openElementStack) inButtonScope(target string) bool {
	return s.inScopeWith(target, buttonScopeBoundary)
}

func (s openElementStack) inTableScope(target string) bool {
	return s.inScopeWith(target, tableScopeBoundary)
}

// inSelectScope inverts the usual rule: every element except optgroup and
// option is a boundary.
func (s openElementStack) inSelectScope(target string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		n := s[i]
		if n.Element == nil || n.Element.Namespace != dom.HTMLNamespace {
			return false
		}
		if n.Name == target {
			return true
		}
		if n.Name != "optgroup" && n.Name != "option" {
			return false
		}
	}
	return false
}

// nodeInScope runs the default scope query for a specific node rather than
// a tag name; the adoption agency needs this for formatting elements that
// appear on the stack more than once.
func (s openElementStack) nodeInScope(target *dom.Node) bool {
	for i := len(s) - 1; i >= 0; i-- {
		n := s[i]
		if n == target {
			return true
		}
		if n.Element == nil {
			continue
		}
		for _, b := range defaultScopeBoundary {
			if n.Name == b && scopeBoundaryNamespaceMatches(n, b) {
				return false
			}
		}
	}
	return false
}
