package fraction

import (
	"strconv"
	"strings"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/integer"
)

// Fraction is a ratio of two Integers kept in lowest terms.
//
// Valid values are obtained from New and the constructors built on it, or
// returned by arithmetic on valid values. The zero value is not valid; use
// Zero(). Fractions are comparable with == and two normalized fractions of
// equal value are ==.
type Fraction struct {
	num integer.Integer
	den integer.Integer
}

// New builds num/den and normalizes it.
//
// The sign moves to the numerator so the denominator is non-negative, then
// both parts are divided by their GCD. 0/d becomes 0/1 and n/0 becomes ±1/0.
// 0/0 is accepted and kept as the degenerate fraction.
func New(num, den integer.Integer) Fraction {
	if integer.Sign(den) < 0 {
		num, den = integer.Neg(num), integer.Neg(den)
	}
	if integer.IsZero(num) && !integer.IsZero(den) {
		den = integer.One()
	}
	g := integer.GCD(num, den)
	if integer.IsZero(g) {
		return Fraction{num: num, den: den}
	}
	return Fraction{num: exact(num, g), den: exact(den, g)}
}

// FromInteger returns i/1.
func FromInteger(i integer.Integer) Fraction {
	return Fraction{num: i, den: integer.One()}
}

// FromInt returns n/1.
func FromInt(n int) Fraction { return FromInteger(integer.FromInt(n)) }

// FromInts returns num/den, normalized.
func FromInts(num, den int) Fraction {
	return New(integer.FromInt(num), integer.FromInt(den))
}

// Zero returns 0/1.
func Zero() Fraction { return FromInteger(integer.Zero{}) }

// One returns 1/1.
func One() Fraction { return FromInteger(integer.One()) }

// Num returns the numerator.
func (f Fraction) Num() integer.Integer { return f.num }

// Den returns the denominator. It is never negative.
func (f Fraction) Den() integer.Integer { return f.den }

// Sign returns the sign of the numerator.
func (f Fraction) Sign() int { return integer.Sign(f.num) }

// IsZero reports whether the numerator is zero. The degenerate 0/0 counts.
func (f Fraction) IsZero() bool { return integer.IsZero(f.num) }

// IsDegenerate reports whether f is 0/0.
func (f Fraction) IsDegenerate() bool {
	return integer.IsZero(f.num) && integer.IsZero(f.den)
}

// Add returns f + g.
func (f Fraction) Add(g Fraction) Fraction {
	return New(
		integer.Add(integer.Mul(f.num, g.den), integer.Mul(f.den, g.num)),
		integer.Mul(f.den, g.den),
	)
}

// Sub returns f - g.
func (f Fraction) Sub(g Fraction) Fraction {
	return New(
		integer.Sub(integer.Mul(f.num, g.den), integer.Mul(f.den, g.num)),
		integer.Mul(f.den, g.den),
	)
}

// Mul returns f * g.
func (f Fraction) Mul(g Fraction) Fraction {
	return New(integer.Mul(f.num, g.num), integer.Mul(f.den, g.den))
}

// Div returns f / g.
// Returns an ErrCodeDivisionByZero error when g's numerator is zero.
func (f Fraction) Div(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, arith.Newf(arith.ErrCodeDivisionByZero, "fraction.Div", "%s / %s", f, g)
	}
	return New(integer.Mul(f.num, g.den), integer.Mul(f.den, g.num)), nil
}

// Neg returns -f.
func (f Fraction) Neg() Fraction {
	return Fraction{num: integer.Neg(f.num), den: f.den}
}

// Abs returns |f|.
func (f Fraction) Abs() Fraction {
	return Fraction{num: integer.Abs(f.num), den: f.den}
}

// Cmp compares f and g and returns -1, 0 or +1, the sign of (f - g)'s
// numerator.
func (f Fraction) Cmp(g Fraction) int {
	return f.Sub(g).Sign()
}

// Equal reports whether f and g have the same value.
func (f Fraction) Equal(g Fraction) bool { return f.Cmp(g) == 0 }

// Mod subtracts m from f while f >= m and returns what is left.
//
// f must be non-negative (ErrCodeNegativeOperand otherwise) and m positive
// (ErrCodeNonPositiveModulus otherwise). This is the reduction used for
// trigonometric arguments, not a general signed modulo.
func (f Fraction) Mod(m Fraction) (Fraction, error) {
	if f.Abs() != f {
		return Fraction{}, arith.Newf(arith.ErrCodeNegativeOperand, "fraction.Mod", "%s is negative", f)
	}
	if m.Sign() <= 0 || integer.IsZero(m.den) {
		return Fraction{}, arith.Newf(arith.ErrCodeNonPositiveModulus, "fraction.Mod", "modulus %s", m)
	}
	if f.IsDegenerate() {
		return f, nil
	}
	if integer.IsZero(f.den) {
		return Fraction{}, arith.Newf(arith.ErrCodeDivisionByZero, "fraction.Mod", "%s has a zero denominator", f)
	}
	for f.Cmp(m) >= 0 {
		f = f.Sub(m)
	}
	return f, nil
}

// Float64 returns the nearest float64. For display only.
func (f Fraction) Float64() float64 {
	return float64(integer.ToInt(f.num)) / float64(integer.ToInt(f.den))
}

// String renders "n" when the denominator is one and "n/d" otherwise.
func (f Fraction) String() string {
	if integer.Equal(f.den, integer.One()) {
		return f.num.String()
	}
	return f.num.String() + "/" + f.den.String()
}

// GoString renders the raw layout of both parts.
func (f Fraction) GoString() string {
	return "Fraction{Num: " + f.num.GoString() + ", Den: " + f.den.GoString() + "}"
}

// Parse reads "n" or "n/d" with base 10 integers. Only the numerator may carry
// a sign and d must not be zero. The result is normalized.
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numText, denText, hasDen := strings.Cut(s, "/")
	num, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		return Fraction{}, arith.Newf(arith.ErrCodeParse, "fraction.Parse", "numerator of %q: %v", s, err)
	}
	if !hasDen {
		return FromInt(num), nil
	}
	denText = strings.TrimSpace(denText)
	if strings.HasPrefix(denText, "-") || strings.HasPrefix(denText, "+") {
		return Fraction{}, arith.Newf(arith.ErrCodeParse, "fraction.Parse", "denominator of %q must be unsigned", s)
	}
	den, err := strconv.Atoi(denText)
	if err != nil {
		return Fraction{}, arith.Newf(arith.ErrCodeParse, "fraction.Parse", "denominator of %q: %v", s, err)
	}
	if den == 0 {
		return Fraction{}, arith.Newf(arith.ErrCodeParse, "fraction.Parse", "denominator of %q is zero", s)
	}
	return FromInts(num, den), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// exact divides x by a non-zero divisor of it.
func exact(x, g integer.Integer) integer.Integer {
	q, err := integer.Div(x, g)
	if err != nil {
		panic(err) // g is a non-zero GCD
	}
	return q
}
