package param

// Builder provides a fluent API for creating descriptors
type Builder struct {
	desc Descriptor
}

// Float creates a builder for a float parameter with an advisory range
func Float(name string, min, max float64) *Builder {
	return &Builder{
		desc: Descriptor{
			Name:       name,
			Value:      min,
			Constraint: FloatRange{Min: min, Max: max},
		},
	}
}

// Value sets the current value. It is not clamped to the range.
func (b *Builder) Value(value float64) *Builder {
	b.desc.Value = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.desc.Unit = unit
	return b
}

// Integer marks the parameter as integer-backed
func (b *Builder) Integer() *Builder {
	b.desc.Integer = true
	return b
}

// Build returns the configured descriptor
func (b *Builder) Build() Descriptor {
	return b.desc
}
