// Package bank loads and validates declarative condition
// descriptor files (YAML or JSON). A bank entry carries the
// registration metadata of one condition: its kind, name,
// handler reference, default failure message, optional static
// comparison value, and the deferred-resolution flag.
package bank

// File is the on-disk structure of a condition descriptor bank.
type File struct {
	// Version identifies the bank schema version. Required.
	Version string `json:"version" yaml:"version"`

	// Conditions holds the declared registrations, in the
	// order they should be registered.
	Conditions []Entry `json:"conditions" yaml:"conditions"`
}

// Entry declares a single condition registration.
type Entry struct {
	// Kind names the enumeration member to register under,
	// parsed by the caller-supplied kind parser.
	Kind string `json:"kind" yaml:"kind"`

	// Name is the condition's diagnostic name. Required and
	// unique within a bank.
	Name string `json:"name" yaml:"name"`

	// Handler references a registered handler function by
	// name.
	Handler string `json:"handler" yaml:"handler"`

	// Message is the default failure message.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Value is an optional static comparison operand.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Resolve requests deferred subject resolution before the
	// handler runs.
	Resolve bool `json:"resolve,omitempty" yaml:"resolve,omitempty"`
}
