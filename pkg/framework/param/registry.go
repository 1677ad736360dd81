package param

// List is an ordered snapshot of descriptors, in the algorithm's declared order.
type List []Descriptor

// Lookup finds a descriptor by exact, case-sensitive name
func (l List) Lookup(name string) (Descriptor, bool) {
	for _, d := range l {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Index returns the position of name in the list, or -1
func (l List) Index(name string) int {
	for i, d := range l {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the descriptor names in order
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, d := range l {
		names[i] = d.Name
	}
	return names
}

// Validate checks every descriptor and rejects duplicate names
func (l List) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for _, d := range l {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := seen[d.Name]; dup {
			return &DuplicateError{Name: d.Name}
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}

// DuplicateError reports a name declared twice in one list
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return "param: duplicate parameter " + e.Name
}
