// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepchain/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_AtSetBounds(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = d.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, d.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestMul_Succeeds(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustDense(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireClose(t, [][]float64{{58, 64}, {139, 154}}, c, 0)

	// Generic path yields the same result.
	c2, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	RequireClose(t, [][]float64{{58, 64}, {139, 154}}, c2, 0)
}

func TestMul_DimensionMismatch(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(2, 3)
	_, err := matrix.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	RequireClose(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at, 0)
}

func TestVecMul(t *testing.T) {
	p := MustDense(t, chainFixture())
	y, err := matrix.VecMul([]float64{1, 0, 0}, p)
	require.NoError(t, err)
	require.Equal(t, []float64{0.9, 0.1, 0.0}, y)

	_, err = matrix.VecMul([]float64{1, 0}, p)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestPower_ZeroIsIdentity(t *testing.T) {
	p := MustDense(t, chainFixture())
	id, err := matrix.Power(p, 0)
	require.NoError(t, err)
	RequireClose(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id, 0)
}

func TestPower_OneIsExactCopy(t *testing.T) {
	p := MustDense(t, chainFixture())
	p1, err := matrix.Power(p, 1)
	require.NoError(t, err)
	require.Equal(t, p.RawRows(), p1.RawRows())

	// The result must not alias the operand.
	require.NoError(t, p1.Set(0, 0, 42))
	require.Equal(t, 0.9, MustAt(t, p, 0, 0))
}

func TestPower_MatchesRepeatedMultiplication(t *testing.T) {
	p := MustDense(t, chainFixture())

	for _, k := range []int{2, 3, 5, 10} {
		want := p
		var err error
		for i := 1; i < k; i++ {
			want, err = matrix.Mul(want, p)
			require.NoError(t, err)
		}
		got, err := matrix.Power(hide{p}, k)
		require.NoError(t, err)
		RequireClose(t, want.RawRows(), got, 1e-12)
	}
}

func TestPower_Errors(t *testing.T) {
	p := MustDense(t, chainFixture())
	_, err := matrix.Power(p, -1)
	require.ErrorIs(t, err, matrix.ErrNegativeExponent)

	r, _ := matrix.NewDense(2, 3)
	_, err = matrix.Power(r, 2)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestPower_RowsStayStochastic(t *testing.T) {
	p := MustDense(t, chainFixture())
	p100, err := matrix.Power(p, 100)
	require.NoError(t, err)

	sums, err := matrix.RowSums(p100)
	require.NoError(t, err)
	for i, s := range sums {
		require.InDelta(t, 1.0, s, 1e-9, "row %d", i)
	}
}
