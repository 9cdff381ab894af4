// Package fraction implements rational numbers as normalized pairs of
// integer.Integer.
//
// Normalization happens once, in New: the denominator is made non-negative
// and both parts are reduced by their greatest common divisor. Every
// arithmetic method returns a freshly normalized value.
//
// The pair 0/0 is representable. It is produced, for example, by New with
// two zero Integers, and it propagates through arithmetic without raising an
// error. Division by a zero Fraction does raise one.
package fraction
