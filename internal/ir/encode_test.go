package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/fraction"
	"github.com/roach88/numtower/internal/integer"
	"github.com/roach88/numtower/internal/natural"
)

func TestEncodeNatural(t *testing.T) {
	assert.Equal(t, Object{"tag": String("Base")}, EncodeNatural(natural.One()))
	assert.Equal(t,
		Object{"tag": String("Successor"), "successors": Int(3)},
		EncodeNatural(natural.MustFromInt(4)))
}

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, `{"tag":"Zero"}`},
		{1, `{"magnitude":{"tag":"Base"},"tag":"Positive"}`},
		{-3, `{"magnitude":{"successors":2,"tag":"Successor"},"tag":"Negative"}`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			data, err := MarshalCanonical(EncodeInteger(integer.FromInt(tt.in)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEncodeFraction(t *testing.T) {
	data, err := MarshalCanonical(EncodeFraction(fraction.FromInts(-1, 2)))
	require.NoError(t, err)
	assert.Equal(t,
		`{"den":{"magnitude":{"successors":1,"tag":"Successor"},"tag":"Positive"},`+
			`"num":{"magnitude":{"tag":"Base"},"tag":"Negative"},"tag":"Fraction"}`,
		string(data))
}

func TestEncodeComplex(t *testing.T) {
	obj := EncodeComplex(complexrat.FromInts(1, -2))
	assert.Equal(t, String("Complex"), obj["tag"])
	assert.Equal(t, EncodeFraction(fraction.FromInt(1)), obj["real"])
	assert.Equal(t, EncodeFraction(fraction.FromInt(-2)), obj["imag"])
}
