package calc

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/fraction"
	"github.com/roach88/numtower/internal/ir"
)

func newEvaluator() *Evaluator {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		operands []string
		want     string
	}{
		{"complex product", OpMul, []string{"7-4i", "3+2i"}, "29 + 2i"},
		{"complex quotient", OpDiv, []string{"7-4i", "3+2i"}, "1 - 2i"},
		{"complex sum", OpAdd, []string{"7-4i", "3+2i"}, "10 - 2i"},
		{"complex difference", OpSub, []string{"7-4i", "3+2i"}, "4 - 6i"},
		{"mixed operands", OpMul, []string{"2", "3+2i"}, "6 + 4i"},
		{"fraction sum", OpAdd, []string{"1/2", "1/3"}, "5/6"},
		{"fraction quotient", OpDiv, []string{"1/2", "1/3"}, "3/2"},
		{"fraction negation", OpNeg, []string{"3/4"}, "-3/4"},
		{"complex negation", OpNeg, []string{"1-i"}, "-1 + 1i"},
		{"conjugate", OpConj, []string{"3+2i"}, "3 - 2i"},
		{"mod", OpMod, []string{"7/2", "3/2"}, "1/2"},
		{"sin zero", OpSin, []string{"0"}, "0"},
		{"cos zero", OpCos, []string{"0"}, "1"},
		{"sin one", OpSin, []string{"1"}, "4241/5040"},
		{"pi", OpPi, nil, "355/113"},
		{"tau", OpTau, nil, "710/113"},
	}

	e := newEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Evaluate(context.Background(), Request{Op: tt.op, Operands: tt.operands})
			require.NoError(t, res.Err)
			assert.True(t, res.OK())
			assert.Equal(t, tt.want, res.Rendered)
			assert.NotEmpty(t, res.Structure)
			assert.NotEmpty(t, res.Approx)
		})
	}
}

func TestEvaluateValueTypes(t *testing.T) {
	e := newEvaluator()

	res := e.Evaluate(context.Background(), Request{Op: OpMul, Operands: []string{"7-4i", "3+2i"}})
	require.NoError(t, res.Err)
	assert.Equal(t, complexrat.FromInts(29, 2), res.Value)
	assert.Equal(t, ir.EncodeComplex(complexrat.FromInts(29, 2)), res.Structure)
	assert.Equal(t, "29 + 2i", res.Approx)

	res = e.Evaluate(context.Background(), Request{Op: OpPi})
	require.NoError(t, res.Err)
	assert.Equal(t, fraction.FromInts(355, 113), res.Value)
	assert.Equal(t, "3.14159", res.Approx)
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		operands []string
		code     arith.ErrorCode
	}{
		{"complex division by zero", OpDiv, []string{"7-4i", "0i"}, arith.ErrCodeDivisionByZero},
		{"fraction division by zero", OpDiv, []string{"1", "0"}, arith.ErrCodeDivisionByZero},
		{"negative trig argument", OpSin, []string{"-1"}, arith.ErrCodeNegativeOperand},
		{"negative mod operand", OpMod, []string{"-1", "2"}, arith.ErrCodeNegativeOperand},
		{"zero modulus", OpMod, []string{"1", "0"}, arith.ErrCodeNonPositiveModulus},
		{"polar", OpPolar, []string{"1+i"}, arith.ErrCodeUnimplemented},
		{"unknown op", Op("sqrt"), []string{"4"}, arith.ErrCodeUnknownOp},
		{"too few operands", OpMul, []string{"1"}, arith.ErrCodeArity},
		{"too many operands", OpPi, []string{"1"}, arith.ErrCodeArity},
		{"malformed operand", OpAdd, []string{"x", "1"}, arith.ErrCodeParse},
		{"complex operand to trig", OpCos, []string{"1+i"}, arith.ErrCodeParse},
	}

	e := newEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Evaluate(context.Background(), Request{Op: tt.op, Operands: tt.operands})
			require.Error(t, res.Err)
			assert.False(t, res.OK())
			assert.Equal(t, tt.code, res.ErrorCode())
			assert.Nil(t, res.Value)
			assert.Empty(t, res.Rendered)
		})
	}
}

func TestEvaluateMagnitudeLimit(t *testing.T) {
	e := New(slog.New(slog.NewTextHandler(io.Discard, nil)), WithMaxMagnitude(50))

	res := e.Evaluate(context.Background(), Request{Op: OpAdd, Operands: []string{"51", "1"}})
	assert.Equal(t, arith.ErrCodeMagnitudeExceeded, res.ErrorCode())

	res = e.Evaluate(context.Background(), Request{Op: OpAdd, Operands: []string{"1/99999999999999999999999", "1"}})
	assert.Equal(t, arith.ErrCodeMagnitudeExceeded, res.ErrorCode())

	res = e.Evaluate(context.Background(), Request{Op: OpMul, Operands: []string{"50-50i", "1/50"}})
	require.NoError(t, res.Err)
	assert.Equal(t, "1 - 1i", res.Rendered)

	unlimited := New(nil, WithMaxMagnitude(0))
	res = unlimited.Evaluate(context.Background(), Request{Op: OpSub, Operands: []string{"200", "199"}})
	require.NoError(t, res.Err)
	assert.Equal(t, "1", res.Rendered)
}

func TestEvaluateCostLimit(t *testing.T) {
	e := newEvaluator()
	tests := []struct {
		name     string
		op       Op
		operands []string
	}{
		{"sin past one turn", OpSin, []string{"7"}},
		{"sin near two pi", OpSin, []string{"9999/1600"}},
		{"sin one half", OpSin, []string{"1/2"}},
		{"complex product of small parts", OpMul, []string{"1/1000+1/999i", "1/998+1/997i"}},
		{"mod by a small step", OpMod, []string{"1000", "1/1000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Evaluate(context.Background(), Request{Op: tt.op, Operands: tt.operands})
			require.Error(t, res.Err)
			assert.Equal(t, arith.ErrCodeMagnitudeExceeded, res.ErrorCode())
		})
	}

	for _, req := range []Request{
		{Op: OpSin, Operands: []string{"1"}},
		{Op: OpCos, Operands: []string{"1"}},
		{Op: OpMul, Operands: []string{"1000", "1000"}},
		{Op: OpDiv, Operands: []string{"7-4i", "3+2i"}},
		{Op: OpMod, Operands: []string{"7/2", "3/2"}},
	} {
		res := e.Evaluate(context.Background(), req)
		require.NoError(t, res.Err, "%s %v", req.Op, req.Operands)
	}
}

func TestEvaluateCostLimitDisabled(t *testing.T) {
	e := New(nil, WithMaxCost(0))
	res := e.Evaluate(context.Background(), Request{Op: OpMul, Operands: []string{"11", "10"}})
	require.NoError(t, res.Err)
	assert.Equal(t, "110", res.Rendered)

	tight := New(nil, WithMaxCost(100))
	res = tight.Evaluate(context.Background(), Request{Op: OpMul, Operands: []string{"11", "10"}})
	assert.Equal(t, arith.ErrCodeMagnitudeExceeded, res.ErrorCode())
	assert.Contains(t, res.Err.Error(), "limit 100")
}

func TestEvaluateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newEvaluator().Evaluate(ctx, Request{Op: OpPi})
	require.ErrorIs(t, res.Err, context.Canceled)
}

func TestOps(t *testing.T) {
	ops := Ops()
	assert.Len(t, ops, 13)
	assert.IsIncreasing(t, ops)
	assert.Contains(t, ops, "polar")

	n, ok := Arity(OpDiv)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = Arity("sqrt")
	assert.False(t, ok)
}
