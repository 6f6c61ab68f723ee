package radiotap

import "fmt"

// Selector controls which present fields are materialized by a decode
// call. Selection never changes byte accounting: unselected fields are
// still sized and skipped so later offsets stay correct.
//
// A Selector is built before a parse and must not be mutated while a
// parse or iteration that holds it is running.
type Selector struct {
	fields [numFieldKinds]bool
	vendor bool
}

// NewSelector returns a selector that includes every known field and
// vendor block payloads.
func NewSelector() *Selector {
	var s Selector
	for i := range s.fields {
		s.fields[i] = true
	}
	s.vendor = true
	return &s
}

// EmptySelector returns a selector that includes nothing.
func EmptySelector() *Selector {
	return &Selector{}
}

// Include adds the given field identities to the selection. Unknown
// identities are rejected here, at configuration time, so a parse never
// sees them.
func (s *Selector) Include(kinds ...FieldKind) error {
	for _, k := range kinds {
		if k >= numFieldKinds {
			return fmt.Errorf("%w: %d", ErrUnknownField, uint8(k))
		}
		s.fields[k] = true
	}
	return nil
}

// Exclude removes the given field identities from the selection.
func (s *Selector) Exclude(kinds ...FieldKind) error {
	for _, k := range kinds {
		if k >= numFieldKinds {
			return fmt.Errorf("%w: %d", ErrUnknownField, uint8(k))
		}
		s.fields[k] = false
	}
	return nil
}

// IncludeNamespace adds every identity of a whole namespace. For the
// vendor namespace this enables materializing vendor block payloads.
func (s *Selector) IncludeNamespace(ns Namespace) error {
	return s.setNamespace(ns, true)
}

// ExcludeNamespace removes every identity of a whole namespace.
func (s *Selector) ExcludeNamespace(ns Namespace) error {
	return s.setNamespace(ns, false)
}

func (s *Selector) setNamespace(ns Namespace, on bool) error {
	switch ns {
	case NamespaceRadiotap:
		for i := range s.fields {
			s.fields[i] = on
		}
	case NamespaceVendor:
		s.vendor = on
	default:
		return fmt.Errorf("%w: namespace %d", ErrUnknownField, uint8(ns))
	}
	return nil
}

func (s *Selector) selected(k FieldKind) bool {
	if s == nil {
		return true
	}
	return k < numFieldKinds && s.fields[k]
}

func (s *Selector) vendorSelected() bool {
	if s == nil {
		return true
	}
	return s.vendor
}

// NewSelectorFromNames builds a selector from registry field names, the
// form used by configuration files. With an empty include list the
// selection starts from everything known; otherwise it starts empty and
// adds the named fields. Excludes are applied afterwards. The name
// "vendor" toggles vendor block payloads.
func NewSelectorFromNames(include, exclude []string) (*Selector, error) {
	var s *Selector
	if len(include) == 0 {
		s = NewSelector()
	} else {
		s = EmptySelector()
		for _, name := range include {
			if name == "vendor" {
				s.vendor = true
				continue
			}
			kind, err := FieldKindByName(name)
			if err != nil {
				return nil, err
			}
			s.fields[kind] = true
		}
	}
	for _, name := range exclude {
		if name == "vendor" {
			s.vendor = false
			continue
		}
		kind, err := FieldKindByName(name)
		if err != nil {
			return nil, err
		}
		s.fields[kind] = false
	}
	return s, nil
}
