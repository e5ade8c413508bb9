package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanmt/nmatrix/core"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
		str  string
	}{
		{Int(-7), KindInt, "-7"},
		{Float(2.5), KindFloat, "2.5"},
		{Rational{Num: 3, Den: 4}, KindRational, "3/4"},
		{Complex{Re: 1, Im: -2}, KindComplex, "(1-2i)"},
		{Object{Handle: 0x10}, KindObject, "object(0x10)"},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.v.Kind())
			assert.Equal(t, tc.str, tc.v.String())
		})
	}
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestNewRational(t *testing.T) {
	r, err := NewRational(6, -8)
	require.NoError(t, err)
	assert.Equal(t, Rational{Num: -3, Den: 4}, r)

	r, err = NewRational(0, 5)
	require.NoError(t, err)
	assert.Equal(t, Rational{Num: 0, Den: 1}, r)

	_, err = NewRational(1, 0)
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	_, err = NewRational(1, math.MinInt64)
	assert.ErrorIs(t, err, core.ErrTypeConversion)
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    int64
		wantErr bool
	}{
		{"int", Int(5), 5, false},
		{"float truncates", Float(-3.9), -3, false},
		{"rational truncates", Rational{Num: 7, Den: 2}, 3, false},
		{"real complex", Complex{Re: 4}, 4, false},
		{"complex", Complex{Re: 4, Im: 1}, 0, true},
		{"nan", Float(math.NaN()), 0, true},
		{"huge", Float(1e300), 0, true},
		{"object", Object{Handle: 1}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToInt64(tc.v)
			if tc.wantErr {
				assert.ErrorIs(t, err, core.ErrTypeConversion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToFloat64(t *testing.T) {
	f, err := ToFloat64(Rational{Num: 1, Den: 4})
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)

	f, err = ToFloat64(Int(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	_, err = ToFloat64(Complex{Re: 1, Im: 1})
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	_, err = ToFloat64(Object{})
	assert.ErrorIs(t, err, core.ErrTypeConversion)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"42", Int(42)},
		{"-0x10", Int(-16)},
		{"3.14", Float(3.14)},
		{"1e3", Float(1000)},
		{"6/8", Rational{Num: 3, Den: 4}},
		{" -1 / 3 ", Rational{Num: -1, Den: 3}},
		{"1+2i", Complex{Re: 1, Im: 2}},
		{"-2.5i", Complex{Re: 0, Im: -2.5}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "1/0", "1/x", "1+zi"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, core.ErrTypeConversion, "Parse(%q)", bad)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "float 0.5", Describe(Float(0.5)))
	assert.Equal(t, "nil value", Describe(nil))
}
