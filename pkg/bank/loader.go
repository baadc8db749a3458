package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.conditions/pkg/validator"
)

// KindParser converts a bank entry's kind string into a member
// of the target enumeration. Unknown names must return an
// error.
type KindParser[K comparable] func(name string) (K, error)

// Handlers is the table binding handler names referenced by
// bank entries to their functions.
type Handlers map[string]validator.Handler

// LoadFile reads a bank file (YAML or JSON by extension) and
// converts its entries into typed registration descriptors.
// An invalid file, an unknown kind, or an unknown handler name
// is a wiring fault and aborts the load with a loud error
// naming the offender.
func LoadFile[K comparable](
	path string,
	parseKind KindParser[K],
	handlers Handlers,
) ([]validator.Descriptor[K], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read bank file %s: %w", path, err,
		)
	}

	file, err := decode(data, path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(file); len(errs) > 0 {
		return nil, fmt.Errorf(
			"bank file %s is invalid: %s", path, errs[0].Error(),
		)
	}

	return Descriptors(file, parseKind, handlers)
}

// Descriptors converts a decoded bank file into registration
// descriptors, binding handler names through the handler table.
func Descriptors[K comparable](
	file *File,
	parseKind KindParser[K],
	handlers Handlers,
) ([]validator.Descriptor[K], error) {
	out := make([]validator.Descriptor[K], 0, len(file.Conditions))

	for i, e := range file.Conditions {
		kind, err := parseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf(
				"conditions[%d] (%q): unknown kind %q: %w",
				i, e.Name, e.Kind, err,
			)
		}

		handler, ok := handlers[e.Handler]
		if !ok || handler == nil {
			return nil, fmt.Errorf(
				"conditions[%d] (%q): unknown handler %q",
				i, e.Name, e.Handler,
			)
		}

		out = append(out, validator.Descriptor[K]{
			Kind:    kind,
			Name:    e.Name,
			Message: e.Message,
			Value:   e.Value,
			Resolve: e.Resolve,
			Handler: handler,
		})
	}

	return out, nil
}

// decode unmarshals bank file bytes, choosing the codec from
// the file extension. Unknown extensions fall back to YAML,
// which is a superset of JSON for this schema.
func decode(data []byte, path string) (*File, error) {
	var file File

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf(
				"failed to parse bank file %s: %w", path, err,
			)
		}
		return &file, nil
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(
			"failed to parse bank file %s: %w", path, err,
		)
	}
	return &file, nil
}
