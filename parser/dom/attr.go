package dom

// Attr is a single element attribute.
type Attr struct {
	Name      string
	Value     string
	Namespace Namespace
}

// AttrList is an ordered list of attributes, unique by name. Order is the
// order attributes first appeared in the source markup and survives
// serialization round trips.
type AttrList []Attr

// Get returns the value for name and whether it is present.
func (l AttrList) Get(name string) (string, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (l AttrList) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Set appends name=value, or replaces the value in place if name is already
// present.
func (l *AttrList) Set(name, value string) {
	for i := range *l {
		if (*l)[i].Name == name {
			(*l)[i].Value = value
			return
		}
	}
	*l = append(*l, Attr{Name: name, Value: value})
}

// Merge copies every attribute from other that is not already present.
// Used for the duplicate <html> and <body> start-tag repair, where the
// original element keeps its attributes and only gains missing ones.
func (l *AttrList) Merge(other AttrList) {
	for _, a := range other {
		if !l.Has(a.Name) {
			*l = append(*l, a)
		}
	}
}

// Clone returns an independent copy of the list.
func (l AttrList) Clone() AttrList {
	if l == nil {
		return nil
	}
	out := make(AttrList, len(l))
	copy(out, l)
	return out
}

// Equal reports whether both lists hold the same attributes with the same
// values and namespaces, regardless of order.
func (l AttrList) Equal(other AttrList) bool {
	if len(l) != len(other) {
		return false
	}
	for _, a := range l {
		found := false
		for _, b := range other {
			if a.Name == b.Name && a.Value == b.Value && a.Namespace == b.Namespace {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
