package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Builders(t *testing.T) {
	cc := NewContext("user-1").
		WithName("login check").
		WithSubject("alice").
		WithValue(42).
		WithExtra("region", "eu")

	assert.Equal(t, "user-1", cc.ID)
	assert.Equal(t, "login check", cc.Name)
	assert.Equal(t, "alice", cc.Subject)
	assert.Equal(t, 42, cc.Value)

	region, ok := cc.Extra("region")
	require.True(t, ok)
	assert.Equal(t, "eu", region)

	_, ok = cc.Extra("missing")
	assert.False(t, ok)
}

func TestContext_Extra_NilMap(t *testing.T) {
	cc := &Context{}

	_, ok := cc.Extra("anything")
	assert.False(t, ok)
}

type account struct {
	Name string
}

func TestNarrow_MatchingTypes(t *testing.T) {
	cc := NewContext("a-1").
		WithName("balance").
		WithSubject(&account{Name: "alice"}).
		WithValue(100).
		WithExtra("currency", "EUR")

	typed := Narrow[*account, int](cc)

	require.True(t, typed.HasSubject)
	require.True(t, typed.HasValue)
	assert.Equal(t, "alice", typed.Subject.Name)
	assert.Equal(t, 100, typed.Value)
	assert.Equal(t, "a-1", typed.ID)
	assert.Equal(t, "balance", typed.Name)
	assert.Equal(t, "EUR", typed.Extras["currency"])
}

func TestNarrow_MismatchedSubjectAbsent(t *testing.T) {
	cc := NewContext("a-1").
		WithSubject("just a string").
		WithValue(100)

	typed := Narrow[*account, int](cc)

	assert.False(t, typed.HasSubject)
	require.True(t, typed.HasValue)
	assert.Equal(t, 100, typed.Value)
	assert.Equal(t, "a-1", typed.ID)
}

func TestNarrow_NilContext(t *testing.T) {
	typed := Narrow[*account, int](nil)

	assert.False(t, typed.HasSubject)
	assert.False(t, typed.HasValue)
	assert.Empty(t, typed.ID)
}

func TestTyped_Widen_RoundTrip(t *testing.T) {
	cc := NewContext("a-1").
		WithSubject(&account{Name: "bob"}).
		WithValue("cash").
		WithExtra("k", "v")

	back := Narrow[*account, string](cc).Widen()

	assert.Equal(t, cc.ID, back.ID)
	assert.Equal(t, cc.Subject, back.Subject)
	assert.Equal(t, cc.Value, back.Value)
	assert.Equal(t, "v", back.Extras["k"])
}
