package tensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tenalg/tenalg/spaces"
)

// Zeros creates a zero-filled tensor over space.
func Zeros(space spaces.ProductSpace) *Tensor {
	return &Tensor{
		data:  make([]float64, space.Dim()),
		space: space.Clone(),
		dims:  space.Dims(),
	}
}

// Ones creates a tensor over space filled with ones.
func Ones(space spaces.ProductSpace) *Tensor {
	return Full(space, 1)
}

// Full creates a tensor over space with every element set to value.
func Full(space spaces.ProductSpace, value float64) *Tensor {
	t := Zeros(space)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor over space with elements drawn from the standard
// normal distribution. A nil src uses the shared global source; pass
// rand.NewSource(seed) for reproducible draws.
func Randn(space spaces.ProductSpace, src rand.Source) *Tensor {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	t := Zeros(space)
	for i := range t.data {
		t.data[i] = dist.Rand()
	}
	return t
}

// Eye creates the identity operator over v: a rank-2 tensor over
// v ⊗ dual(v) with ones on the diagonal.
func Eye(v spaces.VectorSpace) *Tensor {
	t := Zeros(spaces.Product(v, v.Dual()))
	n := v.Dim()
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}
