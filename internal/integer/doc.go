// Package integer implements signed integers on top of natural.Natural.
//
// An Integer is Zero, Positive(n) or Negative(n). Arithmetic is exposed as
// pure package functions (Add, Sub, Mul, Div, Rem, Neg, Cmp); none of them
// modify their operands.
package integer
