package natural

import (
	"strconv"
	"strings"

	"github.com/roach88/numtower/internal/arith"
)

// Natural is a sealed interface over the two Peano variants.
// Only Base and Successor implement it. A nil Natural is not a valid value.
type Natural interface {
	natural() // Sealed - only these types implement it

	// String renders the decimal value.
	String() string

	// GoString renders the raw variant layout, e.g. "Successor(Base)".
	GoString() string
}

// Base is the natural number one.
type Base struct{}

func (Base) natural() {}

// String implements fmt.Stringer.
func (Base) String() string { return "1" }

// GoString implements fmt.GoStringer.
func (Base) GoString() string { return "Base" }

// Successor is Pred + 1.
type Successor struct {
	Pred Natural
}

func (Successor) natural() {}

// String implements fmt.Stringer.
func (s Successor) String() string { return strconv.Itoa(ToInt(s)) }

// GoString implements fmt.GoStringer.
func (s Successor) GoString() string {
	depth := ToInt(s) - 1
	var b strings.Builder
	b.Grow(depth*len("Successor()") + len("Base"))
	b.WriteString(strings.Repeat("Successor(", depth))
	b.WriteString("Base")
	b.WriteString(strings.Repeat(")", depth))
	return b.String()
}

// One returns Base.
func One() Natural { return Base{} }

// Succ returns n + 1.
func Succ(n Natural) Natural { return Successor{Pred: n} }

// Pred returns n - 1, or false when n is Base.
func Pred(n Natural) (Natural, bool) {
	s, ok := n.(Successor)
	if !ok {
		return nil, false
	}
	return s.Pred, true
}

// FromInt builds the Natural with value n.
// Returns an ErrCodeNonPositiveNatural error if n < 1.
func FromInt(n int) (Natural, error) {
	if n < 1 {
		return nil, arith.Newf(arith.ErrCodeNonPositiveNatural, "natural.FromInt", "%d is not a natural number", n)
	}
	var out Natural = Base{}
	for i := 1; i < n; i++ {
		out = Successor{Pred: out}
	}
	return out, nil
}

// MustFromInt is like FromInt but panics if n < 1.
func MustFromInt(n int) Natural {
	out, err := FromInt(n)
	if err != nil {
		panic(err)
	}
	return out
}

// ToInt returns the machine value of n. It is the inverse of FromInt.
func ToInt(n Natural) int {
	count := 1
	for {
		s, ok := n.(Successor)
		if !ok {
			return count
		}
		count++
		n = s.Pred
	}
}

// Add returns a + b.
//
// Base + b is Successor(b) and Successor(v) + b is Successor(v + b), so the
// result is b wrapped once for every unit in a. The spine of b is shared.
func Add(a, b Natural) Natural {
	out := Successor{Pred: b}
	for {
		s, ok := a.(Successor)
		if !ok {
			return out
		}
		out = Successor{Pred: out}
		a = s.Pred
	}
}

// Sub returns a - b by stripping one predecessor from a for every unit in b.
// Returns an ErrCodeNoPredecessor error unless b < a; there is no zero result.
func Sub(a, b Natural) (Natural, error) {
	for {
		as, ok := a.(Successor)
		if !ok {
			return nil, arith.New(arith.ErrCodeNoPredecessor, "natural.Sub", "predecessor of Base does not exist")
		}
		bs, ok := b.(Successor)
		if !ok {
			return as.Pred, nil
		}
		a, b = as.Pred, bs.Pred
	}
}

// Mul returns a * b as repeated addition: Base * b = b and
// Successor(v) * b = v*b + b.
func Mul(a, b Natural) Natural {
	out := b
	for {
		s, ok := a.(Successor)
		if !ok {
			return out
		}
		// b goes on the left: Add walks its first operand, and b is the
		// short one.
		out = Add(b, out)
		a = s.Pred
	}
}

// Cmp compares a and b and returns -1, 0 or +1. Base is the minimum.
func Cmp(a, b Natural) int {
	for {
		as, aok := a.(Successor)
		bs, bok := b.(Successor)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		a, b = as.Pred, bs.Pred
	}
}

// Div returns floor(a / b) by repeated subtraction.
// Equal operands give Base. Returns an ErrCodeQuotientBelowOne error when
// a < b, because the quotient would be zero.
func Div(a, b Natural) (Natural, error) {
	if Cmp(a, b) < 0 {
		return nil, arith.Newf(arith.ErrCodeQuotientBelowOne, "natural.Div", "%s / %s is below one", a, b)
	}
	// rest = a - (quotient-1)*b and rest >= b on every iteration.
	var quotient Natural = Base{}
	rest := a
	for Cmp(rest, b) > 0 {
		next, err := Sub(rest, b)
		if err != nil {
			return nil, err
		}
		if Cmp(next, b) < 0 {
			break
		}
		rest = next
		quotient = Successor{Pred: quotient}
	}
	return quotient, nil
}
