package integer

import (
	"strconv"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/natural"
)

// Integer is a sealed interface over Zero, Positive and Negative.
// Positive and Negative always carry a non-zero magnitude because Natural
// has no zero; zero is only ever the Zero variant.
type Integer interface {
	integer() // Sealed - only these types implement it

	// String renders the decimal value.
	String() string

	// GoString renders the raw variant layout, e.g. "Negative(Successor(Base))".
	GoString() string
}

// Zero is the integer 0.
type Zero struct{}

func (Zero) integer() {}

// String implements fmt.Stringer.
func (Zero) String() string { return "0" }

// GoString implements fmt.GoStringer.
func (Zero) GoString() string { return "Zero" }

// Positive is +Magnitude.
type Positive struct {
	Magnitude natural.Natural
}

func (Positive) integer() {}

// String implements fmt.Stringer.
func (p Positive) String() string { return strconv.Itoa(ToInt(p)) }

// GoString implements fmt.GoStringer.
func (p Positive) GoString() string { return "Positive(" + p.Magnitude.GoString() + ")" }

// Negative is -Magnitude.
type Negative struct {
	Magnitude natural.Natural
}

func (Negative) integer() {}

// String implements fmt.Stringer.
func (n Negative) String() string { return strconv.Itoa(ToInt(n)) }

// GoString implements fmt.GoStringer.
func (n Negative) GoString() string { return "Negative(" + n.Magnitude.GoString() + ")" }

// FromInt builds the Integer with value n.
// n must be representable as a Natural magnitude, so math.MinInt panics.
func FromInt(n int) Integer {
	switch {
	case n > 0:
		return Positive{Magnitude: natural.MustFromInt(n)}
	case n < 0:
		return Negative{Magnitude: natural.MustFromInt(-n)}
	default:
		return Zero{}
	}
}

// One returns +1.
func One() Integer { return Positive{Magnitude: natural.One()} }

// ToInt returns the machine value of i.
func ToInt(i Integer) int {
	sign, mag := split(i)
	if sign == 0 {
		return 0
	}
	return sign * natural.ToInt(mag)
}

// Sign returns -1, 0 or +1.
func Sign(i Integer) int {
	sign, _ := split(i)
	return sign
}

// IsZero reports whether i is Zero.
func IsZero(i Integer) bool { return Sign(i) == 0 }

// Magnitude returns |i| as a Natural, or false for Zero.
func Magnitude(i Integer) (natural.Natural, bool) {
	sign, mag := split(i)
	return mag, sign != 0
}

// Abs returns |i|.
func Abs(i Integer) Integer {
	if n, ok := i.(Negative); ok {
		return Positive{Magnitude: n.Magnitude}
	}
	return i
}

// Neg swaps Positive and Negative. Zero is unchanged.
func Neg(i Integer) Integer {
	switch v := i.(type) {
	case Positive:
		return Negative{Magnitude: v.Magnitude}
	case Negative:
		return Positive{Magnitude: v.Magnitude}
	default:
		return i
	}
}

// Add returns a + b.
//
// Zero is the identity. With matching signs the magnitudes add; otherwise the
// smaller magnitude is taken from the larger and the larger one's sign wins.
// Equal magnitudes of opposite sign cancel to Zero.
func Add(a, b Integer) Integer {
	sa, ma := split(a)
	sb, mb := split(b)
	switch {
	case sa == 0:
		return b
	case sb == 0:
		return a
	case sa == sb:
		return signed(sa, natural.Add(ma, mb))
	}
	switch natural.Cmp(ma, mb) {
	case 1:
		return signed(sa, difference(ma, mb))
	case -1:
		return signed(sb, difference(mb, ma))
	default:
		return Zero{}
	}
}

// Sub returns a - b, defined as a + (-b).
func Sub(a, b Integer) Integer { return Add(a, Neg(b)) }

// Cmp compares a and b and returns -1, 0 or +1.
// Every Negative sorts below Zero and every Positive above it.
func Cmp(a, b Integer) int {
	sa, ma := split(a)
	sb, mb := split(b)
	if sa != sb {
		if sa < sb {
			return -1
		}
		return 1
	}
	if sa == 0 {
		return 0
	}
	return sa * natural.Cmp(ma, mb)
}

// Equal reports whether a and b have the same value.
func Equal(a, b Integer) bool { return Cmp(a, b) == 0 }

// Mul returns a * b. The result is Positive when the signs match and Negative
// when they differ; a Zero operand gives Zero.
func Mul(a, b Integer) Integer {
	sa, ma := split(a)
	sb, mb := split(b)
	if sa == 0 || sb == 0 {
		return Zero{}
	}
	return signed(sa*sb, natural.Mul(ma, mb))
}

// Div returns a / b truncated toward zero, with the sign rule of Mul.
//
// Any division by Zero, 0/0 included, returns an ErrCodeDivisionByZero error.
func Div(a, b Integer) (Integer, error) {
	sa, ma := split(a)
	sb, mb := split(b)
	if sb == 0 {
		return nil, arith.Newf(arith.ErrCodeDivisionByZero, "integer.Div", "%s / 0", a)
	}
	if sa == 0 || natural.Cmp(ma, mb) < 0 {
		return Zero{}, nil
	}
	q, err := natural.Div(ma, mb)
	if err != nil {
		return nil, err
	}
	return signed(sa*sb, q), nil
}

// Rem subtracts b from a while a >= b and returns what is left.
//
// Zero operands are not rejected: Rem(Zero, b) returns b unchanged and
// Rem(a, Zero) returns a unchanged. Neither is a true remainder; GCD relies on
// the first form. A negative b is stepped by its magnitude.
func Rem(a, b Integer) Integer {
	if IsZero(a) {
		return b
	}
	if IsZero(b) {
		return a
	}
	step := Abs(b)
	for Cmp(a, step) >= 0 {
		a = Sub(a, step)
	}
	return a
}

// GCD returns the greatest common divisor of |a| and |b| by Euclid's
// algorithm over Rem. GCD(0, 0) is 0.
func GCD(a, b Integer) Integer {
	x, y := Abs(a), Abs(b)
	for !IsZero(y) {
		x, y = y, Rem(x, y)
	}
	return x
}

// split decomposes i into its sign and magnitude. The magnitude is nil for Zero.
func split(i Integer) (int, natural.Natural) {
	switch v := i.(type) {
	case Positive:
		return 1, v.Magnitude
	case Negative:
		return -1, v.Magnitude
	default:
		return 0, nil
	}
}

func signed(sign int, mag natural.Natural) Integer {
	if sign < 0 {
		return Negative{Magnitude: mag}
	}
	return Positive{Magnitude: mag}
}

// difference returns big - small for big > small.
func difference(big, small natural.Natural) natural.Natural {
	d, err := natural.Sub(big, small)
	if err != nil {
		panic(err) // callers compare first
	}
	return d
}
