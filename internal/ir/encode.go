package ir

import (
	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/fraction"
	"github.com/roach88/numtower/internal/integer"
	"github.com/roach88/numtower/internal/natural"
)

// Structural encodings mirror the variant layout of each number.
// Every node has a "tag" naming its variant. A Natural is written as a
// successor count above Base rather than as nested objects so that the tree
// stays shallow for any magnitude:
//
//	{"tag":"Base"}
//	{"tag":"Successor","successors":3}         // 4
//	{"tag":"Negative","magnitude":{"tag":"Base"}} // -1
//	{"tag":"Fraction","num":...,"den":...}
//	{"tag":"Complex","real":...,"imag":...}

// EncodeNatural returns the structural form of n.
func EncodeNatural(n natural.Natural) Object {
	if _, ok := n.(natural.Base); ok {
		return Object{"tag": String("Base")}
	}
	return Object{
		"tag":        String("Successor"),
		"successors": Int(natural.ToInt(n) - 1),
	}
}

// EncodeInteger returns the structural form of i.
func EncodeInteger(i integer.Integer) Object {
	switch v := i.(type) {
	case integer.Positive:
		return Object{"tag": String("Positive"), "magnitude": EncodeNatural(v.Magnitude)}
	case integer.Negative:
		return Object{"tag": String("Negative"), "magnitude": EncodeNatural(v.Magnitude)}
	default:
		return Object{"tag": String("Zero")}
	}
}

// EncodeFraction returns the structural form of f.
func EncodeFraction(f fraction.Fraction) Object {
	return Object{
		"tag": String("Fraction"),
		"num": EncodeInteger(f.Num()),
		"den": EncodeInteger(f.Den()),
	}
}

// EncodeComplex returns the structural form of c.
func EncodeComplex(c complexrat.Complex) Object {
	return Object{
		"tag":  String("Complex"),
		"real": EncodeFraction(c.Real()),
		"imag": EncodeFraction(c.Imag()),
	}
}
