package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"digital.vasic.conditions/pkg/condition"
)

func TestNotEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"whitespace string", "   ", false},
		{"string", "hello", true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"k": 1}, true},
		{"typed empty slice", []int{}, false},
		{"typed slice", []int{1}, true},
		{"number", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := NotEmpty(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestEquals(t *testing.T) {
	ok, _ := Equals(42, 42)
	assert.True(t, ok)

	ok, msg := Equals(42, 43)
	assert.False(t, ok)
	assert.Contains(t, msg, "expected 43")

	ok, _ = Equals(
		map[string]any{"a": 1}, map[string]any{"a": 1},
	)
	assert.True(t, ok)

	// DeepEqual distinguishes types, not just rendered values.
	ok, _ = Equals(42, int64(42))
	assert.False(t, ok)
}

func TestBoolEquals(t *testing.T) {
	ok, _ := BoolEquals(true, true)
	assert.True(t, ok)

	ok, msg := BoolEquals(false, true)
	assert.False(t, ok)
	assert.Contains(t, msg, "expected true")

	ok, msg = BoolEquals("true", true)
	assert.False(t, ok)
	assert.Contains(t, msg, "expected a bool")
}

func TestValidURI(t *testing.T) {
	ok, _ := ValidURI("https://example.com/path?q=1")
	assert.True(t, ok)

	ok, msg := ValidURI("/relative/only")
	assert.False(t, ok)
	assert.Contains(t, msg, "absolute")

	ok, _ = ValidURI("://broken")
	assert.False(t, ok)

	ok, msg = ValidURI(42)
	assert.False(t, ok)
	assert.Contains(t, msg, "expected a string")
}

func TestValidEmail(t *testing.T) {
	ok, _ := ValidEmail("alice@example.com")
	assert.True(t, ok)

	ok, _ = ValidEmail("Alice <alice@example.com>")
	assert.True(t, ok)

	ok, msg := ValidEmail("not-an-email")
	assert.False(t, ok)
	assert.Contains(t, msg, "invalid email")

	ok, _ = ValidEmail(nil)
	assert.False(t, ok)
}

func TestHasID(t *testing.T) {
	ok, _ := HasID(condition.NewContext("u-1"))
	assert.True(t, ok)

	ok, _ = HasID(condition.NewContext(""))
	assert.False(t, ok)

	ok, _ = HasID(condition.NewContext("   "))
	assert.False(t, ok)

	ok, msg := HasID(nil)
	assert.False(t, ok)
	assert.Equal(t, "context has no id", msg)
}

func TestHasSubject(t *testing.T) {
	ok, _ := HasSubject(
		condition.NewContext("1").WithSubject("entity"),
	)
	assert.True(t, ok)

	ok, msg := HasSubject(condition.NewContext("1"))
	assert.False(t, ok)
	assert.Equal(t, "subject not found", msg)

	ok, _ = HasSubject(nil)
	assert.False(t, ok)
}

func TestHasExtra(t *testing.T) {
	cc := condition.NewContext("1").WithExtra("region", "eu")

	ok, _ := HasExtra(cc, "region")
	assert.True(t, ok)

	ok, msg := HasExtra(cc, "missing")
	assert.False(t, ok)
	assert.Contains(t, msg, `"missing"`)

	ok, _ = HasExtra(nil, "region")
	assert.False(t, ok)
}
