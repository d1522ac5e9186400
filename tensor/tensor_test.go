package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/tenalg/tenalg/spaces"
)

func TestNewValidatesBufferSize(t *testing.T) {
	sp := spaces.Product(spaces.NewVectorSpace(2), spaces.NewVectorSpace(3).Dual())

	tn, err := New(make([]float64, 6), sp)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, tn.Dims())
	assert.True(t, tn.Space().Equal(sp), "constructed tensor exposes its exact space")
	assert.False(t, tn.IsView())

	_, err = New(make([]float64, 5), sp)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = New(nil, spaces.Product(spaces.NewVectorSpace(0), spaces.NewVectorSpace(7)))
	assert.NoError(t, err, "zero-dimensional spaces admit empty buffers")
}

func TestFromSliceCopies(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	tn, err := FromSlice(data, spaces.Product(spaces.NewVectorSpace(4)))
	require.NoError(t, err)

	data[0] = 99
	assert.Equal(t, 1.0, tn.At(0))
}

func TestAtSet(t *testing.T) {
	tn := Zeros(spaces.Product(spaces.NewVectorSpace(2), spaces.NewVectorSpace(3)))

	tn.Set(7, 1, 2)
	assert.Equal(t, 7.0, tn.At(1, 2))
	assert.Equal(t, 7.0, tn.Data()[5], "row-major layout")

	assert.Panics(t, func() { tn.At(2, 0) })
	assert.Panics(t, func() { tn.At(0) })
}

func TestScalarTensor(t *testing.T) {
	tn := Zeros(spaces.Product())
	assert.Equal(t, 0, tn.NDim())
	assert.Equal(t, 1, tn.NumElements())
	tn.Set(3)
	assert.Equal(t, 3.0, tn.At())
}

func TestCloneOwnsBuffer(t *testing.T) {
	a := Ones(spaces.Product(spaces.NewVectorSpace(3)))
	b := a.Clone()
	b.Set(5, 0)
	assert.Equal(t, 1.0, a.At(0))
	assert.False(t, b.IsView())
}

func TestEye(t *testing.T) {
	v := spaces.NewVectorSpace(3)
	id := Eye(v)

	require.Equal(t, []int{3, 3}, id.Dims())
	assert.True(t, id.SpaceAt(1).IsDual())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.Equal(t, want, id.At(i, j))
		}
	}
}

func TestFullAndOnes(t *testing.T) {
	sp := spaces.Product(spaces.NewVectorSpace(2), spaces.NewVectorSpace(2))
	f := Full(sp, 2.5)
	for _, v := range f.Data() {
		assert.Equal(t, 2.5, v)
	}
	o := Ones(sp)
	assert.Equal(t, 4.0, o.Norm()*o.Norm())
}

func TestRandnSeededIsReproducible(t *testing.T) {
	sp := spaces.Product(spaces.NewVectorSpace(4), spaces.NewVectorSpace(4))

	a := Randn(sp, rand.NewSource(7))
	b := Randn(sp, rand.NewSource(7))
	assert.Equal(t, a.Data(), b.Data())

	c := Randn(sp, rand.NewSource(8))
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestString(t *testing.T) {
	tn := Zeros(spaces.Product(spaces.NewVectorSpace(2), spaces.NewVectorSpace(3).Dual()))
	assert.Contains(t, tn.String(), "Tensor[2 3]")
	assert.Contains(t, tn.String(), "(R^3)*")
}
