// Package calc evaluates named operations over textual operands.
//
// It is the single entry point the CLI, the REPL and the scenario harness use
// to reach the numeric tower: operands are parsed, the operation is applied
// and the outcome is rendered both as text and as a structural tree.
package calc

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/fraction"
	"github.com/roach88/numtower/internal/integer"
	"github.com/roach88/numtower/internal/ir"
	"github.com/roach88/numtower/internal/trig"
)

// Op names an operation.
type Op string

const (
	OpAdd   Op = "add"
	OpSub   Op = "sub"
	OpMul   Op = "mul"
	OpDiv   Op = "div"
	OpNeg   Op = "neg"
	OpConj  Op = "conj"
	OpMod   Op = "mod"
	OpSin   Op = "sin"
	OpCos   Op = "cos"
	OpTan   Op = "tan"
	OpPi    Op = "pi"
	OpTau   Op = "tau"
	OpPolar Op = "polar"
)

// arity is the operand count of every known operation.
var arity = map[Op]int{
	OpAdd: 2, OpSub: 2, OpMul: 2, OpDiv: 2,
	OpNeg: 1, OpConj: 1, OpMod: 2,
	OpSin: 1, OpCos: 1, OpTan: 1,
	OpPi: 0, OpTau: 0,
	OpPolar: 1,
}

// Ops returns the known operation names in lexical order.
func Ops() []string {
	names := make([]string, 0, len(arity))
	for op := range arity {
		names = append(names, string(op))
	}
	slices.Sort(names)
	return names
}

// Arity returns the operand count of op and whether op is known.
func Arity(op Op) (int, bool) {
	n, ok := arity[op]
	return n, ok
}

// Request is one evaluation.
type Request struct {
	Op       Op
	Operands []string
}

// Result is the outcome of a Request. Exactly one of Value and Err is set.
type Result struct {
	Request Request

	// Value is a fraction.Fraction or a complexrat.Complex.
	Value any

	// Rendered is the String() form of Value.
	Rendered string

	// Structure is the structural tree of Value.
	Structure ir.Object

	// Approx is a decimal approximation of Value for display.
	Approx string

	Err error
}

// OK reports whether the evaluation produced a value.
func (r Result) OK() bool { return r.Err == nil }

// ErrorCode returns the arith code of Err, or "" on success.
func (r Result) ErrorCode() arith.ErrorCode {
	return arith.CodeOf(r.Err)
}

// DefaultMaxMagnitude bounds every integer written in an operand. Naturals
// are unary, so an operand of n costs n allocations before any arithmetic.
const DefaultMaxMagnitude = 1000

// DefaultMaxCost bounds the largest intermediate integer an evaluation may
// build. Products of small operands grow quickly: the series behind sin 7
// passes through denominators near 113^7.
const DefaultMaxCost = 10_000_000

// Evaluator applies Requests. It holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	logger       *slog.Logger
	maxMagnitude int
	maxCost      int64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxMagnitude sets the largest integer accepted in an operand.
// Zero or less disables the check.
func WithMaxMagnitude(n int) Option {
	return func(e *Evaluator) {
		e.maxMagnitude = n
	}
}

// WithMaxCost sets the largest intermediate integer an evaluation may build,
// as estimated from the parsed operands. Zero or less disables the check.
func WithMaxCost(n int64) Option {
	return func(e *Evaluator) {
		e.maxCost = n
	}
}

// New creates an Evaluator. A nil logger uses slog.Default().
func New(logger *slog.Logger, opts ...Option) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Evaluator{logger: logger, maxMagnitude: DefaultMaxMagnitude, maxCost: DefaultMaxCost}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs req. Failures are reported in Result.Err, never as a panic.
// The context is checked before work starts; the arithmetic itself is not
// interruptible.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	value, err := e.apply(req)
	if err != nil {
		res.Err = err
		e.logger.Debug("evaluation failed",
			"op", req.Op,
			"operands", req.Operands,
			"code", arith.CodeOf(err),
			"error", err)
		return res
	}

	res.Value = value
	switch v := value.(type) {
	case fraction.Fraction:
		res.Rendered = v.String()
		res.Structure = ir.EncodeFraction(v)
		res.Approx = approx(v)
	case complexrat.Complex:
		res.Rendered = v.String()
		res.Structure = ir.EncodeComplex(v)
		res.Approx = approx(v.Real()) + " " + imagSign(v) + " " + approx(v.Imag().Abs()) + "i"
	}

	e.logger.Debug("evaluated",
		"op", req.Op,
		"operands", req.Operands,
		"rendered", res.Rendered)
	return res
}

func (e *Evaluator) apply(req Request) (any, error) {
	want, ok := arity[req.Op]
	if !ok {
		return nil, arith.Newf(arith.ErrCodeUnknownOp, "calc.Evaluate", "%q (known: %s)", req.Op, strings.Join(Ops(), ", "))
	}
	if len(req.Operands) != want {
		return nil, arith.Newf(arith.ErrCodeArity, "calc.Evaluate", "%s takes %d operand(s), got %d", req.Op, want, len(req.Operands))
	}
	for _, operand := range req.Operands {
		if err := e.checkMagnitude(operand); err != nil {
			return nil, err
		}
	}

	switch req.Op {
	case OpPi:
		return trig.Pi(), nil
	case OpTau:
		return trig.Tau(), nil
	case OpSin, OpCos, OpTan:
		x, err := fraction.Parse(req.Operands[0])
		if err != nil {
			return nil, err
		}
		if err := e.checkCost(req.Op, trigCost(req.Op, x)); err != nil {
			return nil, err
		}
		return applyTrig(req.Op, x)
	case OpMod:
		a, b, err := parseFractions(req.Operands)
		if err != nil {
			return nil, err
		}
		if a.Sign() >= 0 && b.Sign() > 0 {
			var est estimate
			est.mod(sizeOf(a), sizeOf(b))
			if err := e.checkCost(req.Op, est.peak); err != nil {
				return nil, err
			}
		}
		return a.Mod(b)
	case OpConj, OpPolar:
		c, err := complexrat.Parse(req.Operands[0])
		if err != nil {
			return nil, err
		}
		if req.Op == OpConj {
			return c.Conjugate(), nil
		}
		_, _, err = c.Polar()
		return nil, err
	case OpNeg:
		if isComplex(req.Operands[0]) {
			c, err := complexrat.Parse(req.Operands[0])
			if err != nil {
				return nil, err
			}
			return c.Neg(), nil
		}
		f, err := fraction.Parse(req.Operands[0])
		if err != nil {
			return nil, err
		}
		return f.Neg(), nil
	}

	// Binary field operations. Real operands stay in the fraction layer.
	if !isComplex(req.Operands[0]) && !isComplex(req.Operands[1]) {
		a, b, err := parseFractions(req.Operands)
		if err != nil {
			return nil, err
		}
		var est estimate
		if req.Op == OpAdd || req.Op == OpSub {
			est.add(sizeOf(a), sizeOf(b))
		} else {
			est.mul(sizeOf(a), sizeOf(b))
		}
		if err := e.checkCost(req.Op, est.peak); err != nil {
			return nil, err
		}
		switch req.Op {
		case OpAdd:
			return a.Add(b), nil
		case OpSub:
			return a.Sub(b), nil
		case OpMul:
			return a.Mul(b), nil
		default:
			return a.Div(b)
		}
	}

	a, err := complexrat.Parse(req.Operands[0])
	if err != nil {
		return nil, err
	}
	b, err := complexrat.Parse(req.Operands[1])
	if err != nil {
		return nil, err
	}
	if err := e.checkCost(req.Op, complexCost(req.Op, a, b)); err != nil {
		return nil, err
	}
	switch req.Op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	default:
		return a.Div(b)
	}
}

// checkMagnitude rejects operands containing an integer above the limit
// before any unary value is built. Non-numeric text is left to the parsers.
func (e *Evaluator) checkMagnitude(operand string) error {
	if e.maxMagnitude <= 0 {
		return nil
	}
	digits := strings.FieldsFunc(operand, func(r rune) bool { return r < '0' || r > '9' })
	for _, d := range digits {
		n, err := strconv.Atoi(d)
		if err != nil || n > e.maxMagnitude {
			return arith.Newf(arith.ErrCodeMagnitudeExceeded, "calc.Evaluate", "%s in %q exceeds %d", d, operand, e.maxMagnitude)
		}
	}
	return nil
}

// checkCost rejects an evaluation whose estimated peak integer is over the
// limit, before any of it is built.
func (e *Evaluator) checkCost(op Op, peak float64) error {
	if e.maxCost <= 0 || peak <= float64(e.maxCost) {
		return nil
	}
	return arith.Newf(arith.ErrCodeMagnitudeExceeded, "calc.Evaluate", "%s would build integers near %.3g, limit %d", op, peak, e.maxCost)
}

// trigCost estimates reduction and the series for op. Negative and
// degenerate arguments fail before any series runs and cost nothing.
func trigCost(op Op, x fraction.Fraction) float64 {
	if x.Sign() < 0 || integer.IsZero(x.Den()) {
		return 0
	}
	var est estimate
	r := est.mod(sizeOf(x), sizeOf(trig.Tau()))
	one := size{num: 1, den: 1}
	switch op {
	case OpSin:
		est.series(r, r, trig.SineDenominators())
	case OpCos:
		est.series(r, one, trig.CosineDenominators())
	default:
		s := est.series(r, r, trig.SineDenominators())
		c := est.series(r, one, trig.CosineDenominators())
		est.div(s, c)
	}
	return est.peak
}

func complexCost(op Op, a, b complexrat.Complex) float64 {
	ca := csize{re: sizeOf(a.Real()), im: sizeOf(a.Imag())}
	cb := csize{re: sizeOf(b.Real()), im: sizeOf(b.Imag())}
	var est estimate
	switch op {
	case OpAdd, OpSub:
		est.cadd(ca, cb)
	case OpMul:
		est.cmul(ca, cb)
	default:
		est.cdiv(ca, cb)
	}
	return est.peak
}

func applyTrig(op Op, x fraction.Fraction) (fraction.Fraction, error) {
	switch op {
	case OpSin:
		return trig.Sin(x)
	case OpCos:
		return trig.Cos(x)
	default:
		return trig.Tan(x)
	}
}

func parseFractions(operands []string) (fraction.Fraction, fraction.Fraction, error) {
	a, err := fraction.Parse(operands[0])
	if err != nil {
		return fraction.Fraction{}, fraction.Fraction{}, err
	}
	b, err := fraction.Parse(operands[1])
	if err != nil {
		return fraction.Fraction{}, fraction.Fraction{}, err
	}
	return a, b, nil
}

func isComplex(operand string) bool {
	return strings.HasSuffix(strings.TrimSpace(operand), "i")
}

func imagSign(c complexrat.Complex) string {
	if c.Imag().Sign() < 0 {
		return "-"
	}
	return "+"
}

// approx renders f with six significant digits. Fractions over zero render
// as their exact text.
func approx(f fraction.Fraction) string {
	if integer.IsZero(f.Den()) {
		return f.String()
	}
	return strconv.FormatFloat(f.Float64(), 'g', 6, 64)
}
