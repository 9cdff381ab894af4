// Package complexrat implements complex numbers whose real and imaginary
// parts are exact fractions.
package complexrat
