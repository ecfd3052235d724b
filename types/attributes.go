package types

// Attributes holds the out-of-band metadata a vector may carry: the
// names vector, the dimension vector, per-dimension names, and any
// other named attribute. The special slots are kept apart because index
// resolution consults them on hot paths.
type Attributes struct {
	names    *StrVector
	dims     []int
	dimNames *ListValue
	extra    map[string]Value
	order    []string // insertion order of extra attribute names
}

// NewAttributes creates an empty attribute set
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Copy returns an independent copy of the attribute set.
// The names vector and dim slice are copied; attribute values are
// shared (values are immutable under copy-on-write updates).
func (a *Attributes) Copy() *Attributes {
	if a == nil {
		return nil
	}
	c := &Attributes{}
	if a.names != nil {
		c.names = a.names.Copy()
	}
	if a.dims != nil {
		c.dims = append([]int(nil), a.dims...)
	}
	c.dimNames = a.dimNames
	if a.extra != nil {
		c.extra = make(map[string]Value, len(a.extra))
		for k, v := range a.extra {
			c.extra[k] = v
		}
		c.order = append([]string(nil), a.order...)
	}
	return c
}

// Names returns the names vector, or nil if the value is unnamed
func (a *Attributes) Names() *StrVector {
	if a == nil {
		return nil
	}
	return a.names
}

// SetNames replaces the names vector (nil removes it)
func (a *Attributes) SetNames(names *StrVector) {
	a.names = names
}

// Dims returns the dimension vector, or nil for dimensionless values
func (a *Attributes) Dims() []int {
	if a == nil {
		return nil
	}
	return a.dims
}

// SetDims replaces the dimension vector (nil removes it)
func (a *Attributes) SetDims(dims []int) {
	a.dims = dims
}

// DimNames returns the per-dimension names list, or nil
func (a *Attributes) DimNames() *ListValue {
	if a == nil {
		return nil
	}
	return a.dimNames
}

// SetDimNames replaces the per-dimension names list (nil removes it)
func (a *Attributes) SetDimNames(dn *ListValue) {
	a.dimNames = dn
}

// Get looks up an attribute by name, routing the special slots
func (a *Attributes) Get(name string) Value {
	if a == nil {
		return nil
	}
	switch name {
	case "names":
		if a.names == nil {
			return nil
		}
		return a.names
	case "dim":
		if a.dims == nil {
			return nil
		}
		return NewIntVector(append([]int(nil), a.dims...))
	case "dimnames":
		if a.dimNames == nil {
			return nil
		}
		return a.dimNames
	}
	return a.extra[name]
}

// Set stores an attribute by name, routing the special slots.
// Setting NULL removes the attribute.
func (a *Attributes) Set(name string, v Value) {
	if _, isNull := v.(NullValue); isNull || v == nil {
		a.Remove(name)
		return
	}
	switch name {
	case "names":
		if sv, ok := v.(*StrVector); ok {
			a.names = sv
			return
		}
	case "dim":
		if iv, ok := v.(*IntVector); ok {
			a.dims = append([]int(nil), iv.Data()...)
			return
		}
	case "dimnames":
		if lv, ok := v.(*ListValue); ok {
			a.dimNames = lv
			return
		}
	}
	if a.extra == nil {
		a.extra = make(map[string]Value)
	}
	if _, seen := a.extra[name]; !seen {
		a.order = append(a.order, name)
	}
	a.extra[name] = v
}

// Remove deletes an attribute by name
func (a *Attributes) Remove(name string) {
	switch name {
	case "names":
		a.names = nil
		return
	case "dim":
		a.dims = nil
		return
	case "dimnames":
		a.dimNames = nil
		return
	}
	if a.extra != nil {
		if _, seen := a.extra[name]; seen {
			delete(a.extra, name)
			for i, n := range a.order {
				if n == name {
					a.order = append(a.order[:i], a.order[i+1:]...)
					break
				}
			}
		}
	}
}

// IsEmpty reports whether no attributes are set
func (a *Attributes) IsEmpty() bool {
	return a == nil || (a.names == nil && a.dims == nil && a.dimNames == nil && len(a.extra) == 0)
}

// ExtraNames returns the non-special attribute names in insertion order
func (a *Attributes) ExtraNames() []string {
	if a == nil {
		return nil
	}
	return a.order
}

// DimensionName returns the names vector for dimension d (0-based), or
// nil when no dimnames are set or that entry is NULL.
func (a *Attributes) DimensionName(d int) *StrVector {
	dn := a.DimNames()
	if dn == nil || d < 0 || d >= dn.Length() {
		return nil
	}
	if sv, ok := dn.ElemAt(d + 1).(*StrVector); ok {
		return sv
	}
	return nil
}

// takenAttrs carries a source's names through a positional subset.
// Dimensions never survive a one-dimensional subset.
func takenAttrs(src *Attributes, positions []int) *Attributes {
	names := src.Names()
	if names == nil {
		return nil
	}
	a := NewAttributes()
	a.SetNames(names.Take(positions))
	return a
}

// attrsOf returns the attribute set of any value (nil for non-vectors)
func attrsOf(v Value) *Attributes {
	if vec, ok := v.(Vector); ok {
		return vec.Attrs()
	}
	return nil
}

// NamesOf returns the names vector of any value, or nil
func NamesOf(v Value) *StrVector {
	return attrsOf(v).Names()
}

// DimsOf returns the dimension vector of any value, or nil
func DimsOf(v Value) []int {
	return attrsOf(v).Dims()
}
