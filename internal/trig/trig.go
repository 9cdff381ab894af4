// Package trig approximates sine, cosine and tangent over exact fractions.
//
// Arguments are reduced modulo Tau and fed to a fixed four-term Taylor
// polynomial. Pi is the rational 355/113 because the tower has no irrational
// numbers. No error bound is computed.
package trig

import (
	"fmt"
	"sync"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/fraction"
)

type constants struct {
	pi  fraction.Fraction
	tau fraction.Fraction
}

// circle is built on first use and read-only afterwards.
var circle = sync.OnceValue(func() constants {
	pi := fraction.FromInts(355, 113)
	return constants{pi: pi, tau: pi.Add(pi)}
})

// Pi returns 355/113.
func Pi() fraction.Fraction { return circle().pi }

// Tau returns 2·Pi, 710/113.
func Tau() fraction.Fraction { return circle().tau }

// Factorial denominators of the truncated series. Each divides the next.
var (
	sineTerms   = [3]int{6, 120, 5040}
	cosineTerms = [3]int{2, 24, 720}
)

// SineDenominators returns the factorials dividing the sine terms after x.
func SineDenominators() [3]int { return sineTerms }

// CosineDenominators returns the factorials dividing the cosine terms after 1.
func CosineDenominators() [3]int { return cosineTerms }

// Reduce returns x mod Tau.
// Negative arguments are rejected with an ErrCodeNegativeOperand error.
func Reduce(x fraction.Fraction) (fraction.Fraction, error) {
	r, err := x.Mod(Tau())
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("reduce %s: %w", x, err)
	}
	return r, nil
}

// Sin returns x - x³/3! + x⁵/5! - x⁷/7! on the reduced argument.
func Sin(x fraction.Fraction) (fraction.Fraction, error) {
	r, err := Reduce(x)
	if err != nil {
		return fraction.Fraction{}, err
	}
	return series(r, r, sineTerms), nil
}

// Cos returns 1 - x²/2! + x⁴/4! - x⁶/6! on the reduced argument.
func Cos(x fraction.Fraction) (fraction.Fraction, error) {
	r, err := Reduce(x)
	if err != nil {
		return fraction.Fraction{}, err
	}
	return series(r, fraction.One(), cosineTerms), nil
}

// Tan returns Sin(x) / Cos(x).
//
// The cosine polynomial 1 - y/2 + y²/24 - y³/720 in y = x² is strictly
// decreasing and crosses zero once, between y = 2 and y = 3, at an irrational
// point, so no rational argument reaches the ErrCodeDivisionByZero branch.
func Tan(x fraction.Fraction) (fraction.Fraction, error) {
	s, err := Sin(x)
	if err != nil {
		return fraction.Fraction{}, err
	}
	c, err := Cos(x)
	if err != nil {
		return fraction.Fraction{}, err
	}
	t, err := s.Div(c)
	if err != nil {
		return fraction.Fraction{}, arith.Newf(arith.ErrCodeDivisionByZero, "trig.Tan", "cos(%s) is zero", x)
	}
	return t, nil
}

// series sums first - first·x²/d₁ + first·x⁴/d₂ - first·x⁶/d₃, where each term
// is the previous one times x².
func series(x, first fraction.Fraction, denominators [3]int) fraction.Fraction {
	square := x.Mul(x)
	sum := first
	power := first
	for i, d := range denominators {
		power = power.Mul(square)
		term := power.Mul(fraction.FromInts(1, d))
		if i%2 == 0 {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
	}
	return sum
}
