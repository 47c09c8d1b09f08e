package parser

import "github.com/willowweb/willow/parser/dom"

// formattingEntry pairs a formatting element with the start tag token that
// created it, so reconstruction can clone a fresh element with the same
// attributes.
type formattingEntry struct {
	node  *dom.Node
	token Token
}

func (e formattingEntry) isMarker() bool { return e.node == dom.ScopeMarker }

// activeFormattingList holds the formatting elements that may need to be
// reconstructed after mis-nesting, separated by scope markers pushed at
// applet, marquee, object, table, td, th and caption boundaries.
type activeFormattingList []formattingEntry

func (l *activeFormattingList) pushMarker() {
	*l = append(*l, formattingEntry{node: dom.ScopeMarker})
}

// push appends an entry, enforcing the three-identical-entries cap: if
// three entries since the last marker share the element's name, namespace
// and attribute set, the earliest of them is dropped first.
func (l *activeFormattingList) push(n *dom.Node, tok Token) {
	matches := 0
	earliest := -1
	for i := len(*l) - 1; i >= 0; i-- {
		e := (*l)[i]
		if e.isMarker() {
			break
		}
		if e.node.Name == n.Name &&
			e.node.Element.Namespace == n.Element.Namespace &&
			e.node.Element.Attributes.Equal(n.Element.Attributes) {
			matches++
			earliest = i
		}
	}
	if matches >= 3 {
		*l = append((*l)[:earliest], (*l)[earliest+1:]...)
	}
	*l = append(*l, formattingEntry{node: n, token: tok})
}

func (l activeFormattingList) indexOf(n *dom.Node) int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].node == n {
			return i
		}
	}
	return -1
}

func (l *activeFormattingList) remove(n *dom.Node) {
	if i := l.indexOf(n); i >= 0 {
		*l = append((*l)[:i], (*l)[i+1:]...)
	}
}

func (l activeFormattingList) replace(old, n *dom.Node) {
	if i := l.indexOf(old); i >= 0 {
		l[i].node = n
	}
}

func (l *activeFormattingList) insertAt(i int, n *dom.Node, tok Token) {
	*l = append(*l, formattingEntry{})
	copy((*l)[i+1:], (*l)[i:])
	(*l)[i] = formattingEntry{node: n, token: tok}
}

// clearToLastMarker drops entries up to and including the last marker,
// run when the element that pushed the marker closes.
func (l *activeFormattingList) clearToLastMarker() {
	for len(*l) > 0 {
		e := (*l)[len(*l)-1]
		*l = (*l)[:len(*l)-1]
		if e.isMarker() {
			return
		}
	}
}

// entryBetweenMarkerAndEnd finds the most recent entry for an element with
// the given tag name above the last marker, the lookup used by end tags
// feeding the adoption agency.
func (l activeFormattingList) entryBetweenMarkerAndEnd(name string) (formattingEntry, int) {
	for i := len(l) - 1; i >= 0; i-- {
		e := l[i]
		if e.isMarker() {
			break
		}
		if e.node.Name == name {
			return e, i
		}
	}
	return formattingEntry{}, -1
}
