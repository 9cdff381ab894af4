package calc

import (
	"math"

	"github.com/roach88/numtower/internal/fraction"
	"github.com/roach88/numtower/internal/integer"
)

// size bounds the parts of a normalized fraction: |num| <= size.num and
// den <= size.den. Floats keep products of large bounds from overflowing.
type size struct {
	num, den float64
}

func sizeOf(f fraction.Fraction) size {
	return size{
		num: math.Abs(float64(integer.ToInt(f.Num()))),
		den: float64(integer.ToInt(f.Den())),
	}
}

func (s size) value() float64 { return s.num / s.den }

// csize bounds the parts of a complex number.
type csize struct {
	re, im size
}

// estimate follows an evaluation through the fraction layer without
// building any values and records the largest integer it would construct.
// Naturals are unary, so that integer is also the node count of the most
// expensive single step. Bounds ignore GCD reduction and only grow.
type estimate struct {
	peak float64
}

func (e *estimate) note(vs ...float64) {
	for _, v := range vs {
		if v > e.peak {
			e.peak = v
		}
	}
}

// mul mirrors Fraction.Mul: both cross products are built before New.
func (e *estimate) mul(a, b size) size {
	r := size{num: a.num * b.num, den: a.den * b.den}
	e.note(r.num, r.den)
	return r
}

// div mirrors Fraction.Div.
func (e *estimate) div(a, b size) size {
	return e.mul(a, size{num: b.den, den: b.num})
}

// add mirrors Fraction.Add and Fraction.Sub.
func (e *estimate) add(a, b size) size {
	r := size{num: a.num*b.den + b.num*a.den, den: a.den * b.den}
	e.note(a.num*b.den, b.num*a.den, r.num, r.den)
	return r
}

// mod mirrors Fraction.Mod: one comparison per iteration, one subtraction
// per whole multiple of m in f.
func (e *estimate) mod(f, m size) size {
	if m.num == 0 || m.den == 0 || f.den == 0 {
		return f
	}
	var step estimate
	step.add(f, m)
	iterations := math.Floor(f.value()/m.value()) + 1
	e.note(iterations * step.peak)
	if iterations == 1 {
		return f
	}
	// The remainder is below m and its denominator divides f.den·m.den.
	den := f.den * m.den
	return size{num: den * m.value(), den: den}
}

// series mirrors trig's truncated Taylor sum over x starting at first.
// The denominators divide one another, so the reduced running sum has the
// denominator of the latest term.
func (e *estimate) series(x, first size, denominators [3]int) size {
	square := e.mul(x, x)
	sum, power := first, first
	total := first.value()
	for _, d := range denominators {
		power = e.mul(power, square)
		term := e.mul(power, size{num: 1, den: float64(d)})
		e.add(sum, term)
		total += term.value()
		sum = size{num: term.den * total, den: term.den}
	}
	return sum
}

func (e *estimate) cadd(a, b csize) csize {
	return csize{re: e.add(a.re, b.re), im: e.add(a.im, b.im)}
}

// cmul mirrors Complex.Mul.
func (e *estimate) cmul(a, b csize) csize {
	ac := e.mul(a.re, b.re)
	ad := e.mul(a.re, b.im)
	bc := e.mul(a.im, b.re)
	bd := e.mul(a.im, b.im)
	return csize{re: e.add(ac, bd), im: e.add(ad, bc)}
}

// cdiv mirrors Complex.Div. The conjugate has the sizes of b.
func (e *estimate) cdiv(a, b csize) csize {
	modulus := e.add(e.mul(b.re, b.re), e.mul(b.im, b.im))
	top := e.cmul(a, b)
	return csize{re: e.div(top.re, modulus), im: e.div(top.im, modulus)}
}
