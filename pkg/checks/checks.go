// Package checks provides the simple leaf predicates condition
// handlers are built from: presence, equality, emptiness, and
// well-formedness checks over context values. Each check
// returns whether it passed and a human-readable explanation.
package checks

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strings"

	"digital.vasic.conditions/pkg/condition"
)

// NotEmpty checks that a value is non-nil and non-empty.
func NotEmpty(value any) (bool, string) {
	if value == nil {
		return false, "value is nil"
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return false, "string is empty"
		}
	case []any:
		if len(v) == 0 {
			return false, "collection is empty"
		}
	case map[string]any:
		if len(v) == 0 {
			return false, "map is empty"
		}
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			if rv.Len() == 0 {
				return false, "collection is empty"
			}
		}
	}

	return true, "value is not empty"
}

// Equals checks that the actual value equals the expected one.
func Equals(actual, expected any) (bool, string) {
	if reflect.DeepEqual(actual, expected) {
		return true, fmt.Sprintf("value equals %v", expected)
	}
	return false, fmt.Sprintf(
		"expected %v, got %v", expected, actual,
	)
}

// BoolEquals checks that a value is a bool equal to expected.
func BoolEquals(value any, expected bool) (bool, string) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Sprintf(
			"expected a bool, got %T", value,
		)
	}
	if b != expected {
		return false, fmt.Sprintf(
			"expected %t, got %t", expected, b,
		)
	}
	return true, fmt.Sprintf("value is %t", b)
}

// ValidURI checks that a string is an absolute, well-formed URI.
func ValidURI(value any) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, fmt.Sprintf(
			"expected a string, got %T", value,
		)
	}

	u, err := url.Parse(s)
	if err != nil {
		return false, fmt.Sprintf("invalid URI: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return false, "URI must be absolute"
	}
	return true, "URI is well-formed"
}

// ValidEmail checks that a string is a parseable email address.
func ValidEmail(value any) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, fmt.Sprintf(
			"expected a string, got %T", value,
		)
	}

	if _, err := mail.ParseAddress(s); err != nil {
		return false, fmt.Sprintf("invalid email: %v", err)
	}
	return true, "email is well-formed"
}

// HasID checks that a context carries a non-empty identifier.
func HasID(cc *condition.Context) (bool, string) {
	if cc == nil || strings.TrimSpace(cc.ID) == "" {
		return false, "context has no id"
	}
	return true, "context has an id"
}

// HasSubject checks that a context carries a resolved subject.
// An absent subject reads as "entity not found", the normal
// outcome of a failed deferred resolution.
func HasSubject(cc *condition.Context) (bool, string) {
	if cc == nil || cc.Subject == nil {
		return false, "subject not found"
	}
	return true, "subject is present"
}

// HasExtra checks that a context carries the named extras key.
func HasExtra(cc *condition.Context, key string) (bool, string) {
	if cc == nil {
		return false, "context is nil"
	}
	if _, ok := cc.Extra(key); !ok {
		return false, fmt.Sprintf("extras key %q not found", key)
	}
	return true, fmt.Sprintf("extras key %q is present", key)
}
