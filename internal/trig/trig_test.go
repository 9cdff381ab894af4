package trig

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/arith"
	"github.com/roach88/numtower/internal/fraction"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, fraction.FromInts(355, 113), Pi())
	assert.Equal(t, fraction.FromInts(710, 113), Tau())
	assert.Equal(t, "355/113", Pi().String())
}

func TestConstantsAreShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]fraction.Fraction, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Pi()
		}(i)
	}
	wg.Wait()
	for _, p := range got {
		assert.Equal(t, Pi(), p)
	}
}

func TestZeroIsExact(t *testing.T) {
	s, err := Sin(fraction.Zero())
	require.NoError(t, err)
	assert.Equal(t, fraction.Zero(), s)

	c, err := Cos(fraction.Zero())
	require.NoError(t, err)
	assert.Equal(t, fraction.One(), c)

	tn, err := Tan(fraction.Zero())
	require.NoError(t, err)
	assert.Equal(t, fraction.Zero(), tn)
}

func TestSeriesAtOne(t *testing.T) {
	// 1 - 1/6 + 1/120 - 1/5040
	s, err := Sin(fraction.One())
	require.NoError(t, err)
	assert.Equal(t, fraction.FromInts(4241, 5040), s)
	assert.InDelta(t, math.Sin(1), s.Float64(), 1e-4)

	// 1 - 1/2 + 1/24 - 1/720
	c, err := Cos(fraction.One())
	require.NoError(t, err)
	assert.Equal(t, fraction.FromInts(389, 720), c)
	assert.InDelta(t, math.Cos(1), c.Float64(), 1e-3)
}

func TestTanAtOne(t *testing.T) {
	if testing.Short() {
		t.Skip("unary products in the millions")
	}
	tn, err := Tan(fraction.One())
	require.NoError(t, err)
	assert.Equal(t, fraction.FromInts(4241, 2723), tn)
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name string
		x    fraction.Fraction
		want fraction.Fraction
	}{
		{"below tau", fraction.One(), fraction.One()},
		{"tau", Tau(), fraction.Zero()},
		{"pi", Pi(), Pi()},
		{"one turn past one", fraction.One().Add(Tau()), fraction.One()},
		{"zero", fraction.Zero(), fraction.Zero()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSinIsPeriodic(t *testing.T) {
	a, err := Sin(fraction.One())
	require.NoError(t, err)
	b, err := Sin(fraction.One().Add(Tau()))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNegativeArgumentsFail(t *testing.T) {
	x := fraction.FromInts(-1, 2)
	for name, fn := range map[string]func(fraction.Fraction) (fraction.Fraction, error){
		"sin": Sin,
		"cos": Cos,
		"tan": Tan,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fn(x)
			require.Error(t, err)
			assert.True(t, errors.Is(err, arith.ErrNegativeOperand))
		})
	}
}

func TestTanAcrossCosineRoot(t *testing.T) {
	c1, err := Cos(fraction.One())
	require.NoError(t, err)
	c2, err := Cos(fraction.FromInt(2))
	require.NoError(t, err)
	assert.Equal(t, 1, c1.Sign())
	assert.Equal(t, fraction.FromInts(-19, 45), c2)

	tan, err := Tan(fraction.FromInt(2))
	require.NoError(t, err)
	assert.Equal(t, fraction.FromInts(-286, 133), tan)
}

func TestSeriesDenominators(t *testing.T) {
	assert.Equal(t, [3]int{6, 120, 5040}, SineDenominators())
	assert.Equal(t, [3]int{2, 24, 720}, CosineDenominators())
}
