package condition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition_Evaluate_Pass(t *testing.T) {
	c := New("has-id", "",
		func(_ context.Context, cc *Context) (*Result, error) {
			if cc.ID == "" {
				return Fail("no id"), nil
			}
			return Pass(cc.ID), nil
		},
	)

	r := c.Evaluate(context.Background(), NewContext("42"))
	require.True(t, r.Passed())
	assert.Equal(t, "42", r.Value)
	assert.Equal(t, "has-id", r.ConditionName)
}

func TestCondition_Evaluate_NilContextSynthesized(t *testing.T) {
	var seen *Context
	c := New("observer", "",
		func(_ context.Context, cc *Context) (*Result, error) {
			seen = cc
			return Pass(nil), nil
		},
	)

	r := c.Evaluate(context.Background(), nil)
	require.True(t, r.Passed())
	assert.NotNil(t, seen)
}

func TestCondition_Evaluate_ErrorBecomesFailure(t *testing.T) {
	c := New("faulty", "",
		func(_ context.Context, _ *Context) (*Result, error) {
			return nil, errors.New("boom")
		},
	)

	r := c.Evaluate(context.Background(), &Context{})
	require.False(t, r.Passed())
	assert.Contains(t, r.Message, "boom")
	assert.Contains(t, r.Message, "faulty")
}

func TestCondition_Evaluate_PanicBecomesFailure(t *testing.T) {
	c := New("panicky", "",
		func(_ context.Context, _ *Context) (*Result, error) {
			panic("kaput")
		},
	)

	var r *Result
	require.NotPanics(t, func() {
		r = c.Evaluate(context.Background(), &Context{})
	})
	require.False(t, r.Passed())
	assert.Contains(t, r.Message, "kaput")
}

func TestCondition_Evaluate_NilResultBecomesFailure(t *testing.T) {
	c := New("empty", "",
		func(_ context.Context, _ *Context) (*Result, error) {
			return nil, nil
		},
	)

	r := c.Evaluate(context.Background(), &Context{})
	require.False(t, r.Passed())
	assert.Contains(t, r.Message, "no result")
}

func TestCondition_Evaluate_NoFunc(t *testing.T) {
	c := New("hollow", "", nil)

	r := c.Evaluate(context.Background(), &Context{})
	require.False(t, r.Passed())
	assert.Contains(t, r.Message, "no evaluation function")
}

func TestCondition_Evaluate_StaticMessageApplied(t *testing.T) {
	c := New("strict", "value must be set",
		func(_ context.Context, _ *Context) (*Result, error) {
			return &Result{Status: StatusFailed}, nil
		},
	)

	r := c.Evaluate(context.Background(), &Context{})
	require.False(t, r.Passed())
	assert.Equal(t, "value must be set", r.Message)
}

func TestNewPredicate_TrueAndFalse(t *testing.T) {
	c := NewPredicate("enabled", "not enabled",
		func(_ context.Context, cc *Context) (bool, error) {
			b, _ := cc.Value.(bool)
			return b, nil
		},
	)

	pass := c.Evaluate(
		context.Background(),
		NewContext("1").WithValue(true),
	)
	require.True(t, pass.Passed())
	assert.Equal(t, true, pass.Value)

	fail := c.Evaluate(
		context.Background(),
		NewContext("1").WithValue(false),
	)
	require.False(t, fail.Passed())
	assert.Equal(t, "not enabled", fail.Message)
}

func TestNewPredicate_ErrorBecomesFailure(t *testing.T) {
	c := NewPredicate("flaky", "",
		func(_ context.Context, _ *Context) (bool, error) {
			return false, errors.New("lookup failed")
		},
	)

	r := c.Evaluate(context.Background(), &Context{})
	require.False(t, r.Passed())
	assert.Contains(t, r.Message, "lookup failed")
}

func TestResult_Passed_UnknownIsNotPassed(t *testing.T) {
	assert.False(t, Unknown("could not determine").Passed())
	assert.False(t, Fail("nope").Passed())
	assert.True(t, Pass(nil).Passed())

	var nilResult *Result
	assert.False(t, nilResult.Passed())
}
