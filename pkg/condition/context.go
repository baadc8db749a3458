// Package condition provides the core data model for the
// condition engine: evaluation contexts, conditions, and their
// tri-state results.
package condition

// Context carries the input for a single condition evaluation.
// A Context is constructed per evaluation call and must not be
// shared as a mutable object across concurrent evaluations.
type Context struct {
	// ID is an optional correlation key, typically the
	// identifier of the entity under evaluation.
	ID string `json:"id,omitempty"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty"`

	// Subject is the entity under evaluation. It stays untyped
	// until narrowed via Narrow.
	Subject any `json:"subject,omitempty"`

	// Value is an optional comparison operand examined by the
	// condition.
	Value any `json:"value,omitempty"`

	// Extras holds ad hoc key-value data for conditions that
	// need more than subject and value.
	Extras map[string]any `json:"extras,omitempty"`
}

// NewContext creates a Context from a bare identifier. It is
// the canonical conversion used when a caller supplies only an
// id instead of a full context.
func NewContext(id string) *Context {
	return &Context{ID: id}
}

// WithName sets the label and returns the context for chaining.
func (c *Context) WithName(name string) *Context {
	c.Name = name
	return c
}

// WithSubject attaches the entity under evaluation.
func (c *Context) WithSubject(subject any) *Context {
	c.Subject = subject
	return c
}

// WithValue attaches the comparison operand.
func (c *Context) WithValue(value any) *Context {
	c.Value = value
	return c
}

// WithExtra adds an ad hoc key-value pair, creating the extras
// map on first use.
func (c *Context) WithExtra(key string, value any) *Context {
	if c.Extras == nil {
		c.Extras = make(map[string]any)
	}
	c.Extras[key] = value
	return c
}

// Extra returns the extras value for key and whether it was
// present.
func (c *Context) Extra(key string) (any, bool) {
	if c.Extras == nil {
		return nil, false
	}
	v, ok := c.Extras[key]
	return v, ok
}
