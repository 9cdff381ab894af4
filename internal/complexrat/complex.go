package complexrat

import (
	"strings"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/fraction"
)

// Complex is re + im·i with exact rational parts.
type Complex struct {
	re fraction.Fraction
	im fraction.Fraction
}

// New returns re + im·i.
func New(re, im fraction.Fraction) Complex {
	return Complex{re: re, im: im}
}

// FromInts returns re + im·i for machine integers.
func FromInts(re, im int) Complex {
	return New(fraction.FromInt(re), fraction.FromInt(im))
}

// Zero returns 0 + 0i.
func Zero() Complex { return New(fraction.Zero(), fraction.Zero()) }

// Real returns the real part.
func (c Complex) Real() fraction.Fraction { return c.re }

// Imag returns the imaginary part.
func (c Complex) Imag() fraction.Fraction { return c.im }

// Add returns c + d.
func (c Complex) Add(d Complex) Complex {
	return New(c.re.Add(d.re), c.im.Add(d.im))
}

// Sub returns c - d.
func (c Complex) Sub(d Complex) Complex {
	return New(c.re.Sub(d.re), c.im.Sub(d.im))
}

// Mul returns c * d.
func (c Complex) Mul(d Complex) Complex {
	// (a+bi)(c+di) = (ac-bd) + (ad+bc)i
	ac := c.re.Mul(d.re)
	ad := c.re.Mul(d.im)
	bc := c.im.Mul(d.re)
	bd := c.im.Mul(d.im)
	return New(ac.Sub(bd), ad.Add(bc))
}

// Div returns c / d: c times the conjugate of d, each part divided by |d|².
// Returns an ErrCodeDivisionByZero error when d is 0 + 0i.
func (c Complex) Div(d Complex) (Complex, error) {
	modulus := d.ModulusSquared()
	if modulus.IsZero() {
		return Complex{}, arith.Newf(arith.ErrCodeDivisionByZero, "complexrat.Div", "(%s) / (%s)", c, d)
	}
	top := c.Mul(d.Conjugate())
	re, err := top.re.Div(modulus)
	if err != nil {
		return Complex{}, err
	}
	im, err := top.im.Div(modulus)
	if err != nil {
		return Complex{}, err
	}
	return New(re, im), nil
}

// Conjugate returns re - im·i.
func (c Complex) Conjugate() Complex { return New(c.re, c.im.Neg()) }

// Neg returns -c.
func (c Complex) Neg() Complex { return New(c.re.Neg(), c.im.Neg()) }

// ModulusSquared returns re² + im².
func (c Complex) ModulusSquared() fraction.Fraction {
	return c.re.Mul(c.re).Add(c.im.Mul(c.im))
}

// IsZero reports whether both parts are zero.
func (c Complex) IsZero() bool { return c.re.IsZero() && c.im.IsZero() }

// Polar would return the magnitude and angle of c. The angle needs an inverse
// tangent, which the tower does not provide, so Polar always returns an
// ErrCodeUnimplemented error.
func (c Complex) Polar() (magnitude, angle fraction.Fraction, err error) {
	return fraction.Fraction{}, fraction.Fraction{}, arith.New(arith.ErrCodeUnimplemented, "complexrat.Polar", "polar form requires an inverse tangent")
}

// String renders "re + im i" or "re - |im|i". The sign comes from comparing
// the imaginary part with zero and is not repeated in the magnitude.
func (c Complex) String() string {
	sign := "+"
	if c.im.Cmp(fraction.Zero()) < 0 {
		sign = "-"
	}
	return c.re.String() + " " + sign + " " + c.im.Abs().String() + "i"
}

// GoString renders the raw layout of both parts.
func (c Complex) GoString() string {
	return "Complex{Real: " + c.re.GoString() + ", Imag: " + c.im.GoString() + "}"
}

// Parse reads a complex literal: "a", "bi", "a+bi" or "a-bi", where a and b
// are fractions accepted by fraction.Parse. Spaces are ignored and a bare "i"
// means 1i.
func Parse(s string) (Complex, error) {
	text := strings.Join(strings.Fields(s), "")
	if text == "" {
		return Complex{}, arith.New(arith.ErrCodeParse, "complexrat.Parse", "empty input")
	}
	if !strings.HasSuffix(text, "i") {
		re, err := fraction.Parse(text)
		if err != nil {
			return Complex{}, err
		}
		return New(re, fraction.Zero()), nil
	}
	body := strings.TrimSuffix(text, "i")

	// The split point is the last sign that is not leading.
	split := strings.LastIndexAny(body, "+-")
	if split <= 0 {
		im, err := parseImag(s, body)
		if err != nil {
			return Complex{}, err
		}
		return New(fraction.Zero(), im), nil
	}
	re, err := fraction.Parse(body[:split])
	if err != nil {
		return Complex{}, err
	}
	im, err := parseImag(s, body[split:])
	if err != nil {
		return Complex{}, err
	}
	return New(re, im), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Complex {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseImag(input, text string) (fraction.Fraction, error) {
	switch text {
	case "", "+":
		return fraction.One(), nil
	case "-":
		return fraction.One().Neg(), nil
	}
	im, err := fraction.Parse(text)
	if err != nil {
		return fraction.Fraction{}, arith.Newf(arith.ErrCodeParse, "complexrat.Parse", "imaginary part of %q: %v", input, err)
	}
	return im, nil
}
