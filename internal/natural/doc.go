// Package natural implements positive integers as Peano numbers.
//
// A Natural is either Base (the value one) or the Successor of another
// Natural. There is no zero. The depth of the successor chain equals the
// numeric value, so every operation is linear (or worse) in its operands.
//
// Values are immutable and share structure: Sub returns a suffix of its first
// operand and Add reuses the spine of its second. Two Naturals of equal value
// compare equal with ==.
package natural
