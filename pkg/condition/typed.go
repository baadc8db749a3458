package condition

// Typed is a strongly typed view of a Context. Subject and
// Value are populated only when the underlying runtime types
// match the type parameters; HasSubject and HasValue report
// presence.
type Typed[S, V any] struct {
	ID     string
	Name   string
	Extras map[string]any

	// Subject is the narrowed entity, valid only when
	// HasSubject is true.
	Subject    S
	HasSubject bool

	// Value is the narrowed comparison operand, valid only
	// when HasValue is true.
	Value    V
	HasValue bool
}

// Narrow converts an untyped Context into a Typed view. ID,
// Name, and Extras carry over unchanged. Subject and Value
// carry over iff their runtime types match S and V; fields of
// the wrong type become absent, never an error. A nil context
// narrows to an empty view.
func Narrow[S, V any](c *Context) Typed[S, V] {
	if c == nil {
		return Typed[S, V]{}
	}

	t := Typed[S, V]{
		ID:     c.ID,
		Name:   c.Name,
		Extras: c.Extras,
	}

	if s, ok := c.Subject.(S); ok {
		t.Subject = s
		t.HasSubject = true
	}
	if v, ok := c.Value.(V); ok {
		t.Value = v
		t.HasValue = true
	}

	return t
}

// Widen converts a Typed view back into an untyped Context.
// Absent subject and value stay absent.
func (t Typed[S, V]) Widen() *Context {
	c := &Context{
		ID:     t.ID,
		Name:   t.Name,
		Extras: t.Extras,
	}
	if t.HasSubject {
		c.Subject = t.Subject
	}
	if t.HasValue {
		c.Value = t.Value
	}
	return c
}
