package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/tenalg/tenalg/spaces"
)

func TestInsertAndDeleteAxis(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, spaces.Product(v2, v3))

	b, err := InsertAxis(a, 1, true)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, b.Dims())
	assert.True(t, b.SpaceAt(1).IsDual())
	assert.True(t, b.IsView())

	// The view aliases the source buffer.
	b.Set(42, 0, 0, 0)
	assert.Equal(t, 42.0, a.At(0, 0))

	c, err := DeleteAxis(b, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, c.Dims())
	assert.Equal(t, 42.0, c.At(0, 0))

	_, err = InsertAxis(a, 3, false)
	assert.ErrorIs(t, err, ErrIndexRange)
	_, err = DeleteAxis(a, 0)
	assert.ErrorIs(t, err, ErrDimensionMismatch, "only dimension-1 axes can be deleted")
}

func TestFuseAxes(t *testing.T) {
	a := Randn(spaces.Product(v2, v3, v4.Dual()), rand.NewSource(17))

	f, err := FuseAxes(a, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 12}, f.Dims())
	assert.False(t, f.SpaceAt(1).IsDual(), "fused axis has plain orientation")
	assert.True(t, f.IsView())

	// Row-major reinterpretation: element (i, j, k) maps to (i, j*4+k).
	assert.Equal(t, a.At(1, 2, 3), f.At(1, 11))

	_, err = FuseAxes(a, 2, 2)
	assert.ErrorIs(t, err, ErrIndexRange)
	_, err = FuseAxes(a, 1, 4)
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestSplitAxis(t *testing.T) {
	a := Randn(spaces.Product(v2, spaces.NewVectorSpace(12)), rand.NewSource(19))

	s, err := SplitAxis(a, 1, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, s.Dims())
	assert.True(t, s.IsView())
	assert.Equal(t, a.At(1, 7), s.At(1, 1, 3))

	_, err = SplitAxis(a, 1, 5, 2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = SplitAxis(a, 9, 3, 4)
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestFuseSplitRoundTrip(t *testing.T) {
	a := Randn(spaces.Product(v3, v4), rand.NewSource(23))

	f, err := FuseAxes(a, 0, 2)
	require.NoError(t, err)
	s, err := SplitAxis(f, 0, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, a.Dims(), s.Dims())
	assert.Equal(t, a.Data(), s.Data())
}

func TestAdjoint(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6},
		spaces.Product(v2, v3.Dual()))

	adj := Adjoint(a)
	require.Equal(t, []int{3, 2}, adj.Dims())
	assert.False(t, adj.SpaceAt(0).IsDual(), "dual axis dualizes back to plain")
	assert.True(t, adj.SpaceAt(1).IsDual())
	assert.False(t, adj.IsView(), "adjoint owns its buffer")

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.At(i, j), adj.At(j, i))
		}
	}
}

func TestCat(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, spaces.Product(v2, v2))
	b, _ := FromSlice([]float64{5, 6, 7, 8, 9, 10}, spaces.Product(v2, v3))

	c, err := Cat(1, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, c.Dims())
	assert.Equal(t, []float64{1, 2, 5, 6, 7, 3, 4, 8, 9, 10}, c.Data())
}

func TestCatAxisZero(t *testing.T) {
	a := Ones(spaces.Product(v2, v3))
	b := Full(spaces.Product(v4, v3), 2)

	c, err := Cat(0, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 3}, c.Dims())
	assert.Equal(t, 1.0, c.At(0, 0))
	assert.Equal(t, 2.0, c.At(5, 2))
}

func TestCatErrors(t *testing.T) {
	a := Ones(spaces.Product(v2, v3))

	_, err := Cat(0)
	assert.ErrorIs(t, err, ErrIndexRange)

	_, err = Cat(2, a, a)
	assert.ErrorIs(t, err, ErrIndexRange)

	b := Ones(spaces.Product(v2, v3.Dual()))
	_, err = Cat(0, a, b)
	assert.ErrorIs(t, err, ErrSpaceMismatch, "off-axis spaces must match exactly")
}
