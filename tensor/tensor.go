package tensor

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/tenalg/tenalg/spaces"
)

// Tensor is a dense N-dimensional array of float64 values paired with a
// product of index spaces, one per axis. The space is fixed at construction:
// len(data) == space.Dim() always holds, and per-axis extents equal the
// factor dimensions.
//
// A Tensor either owns its buffer or is a declared view of another Tensor's
// buffer. Views are produced only by the axis-reshaping family (InsertAxis,
// DeleteAxis, FuseAxes, SplitAxis); mutating a view mutates its source.
type Tensor struct {
	data  []float64
	space spaces.ProductSpace
	dims  []int
	view  bool
}

// New wraps data in a Tensor over space, taking ownership of the slice.
// Fails with ErrDimensionMismatch if len(data) != space.Dim().
func New(data []float64, space spaces.ProductSpace) (*Tensor, error) {
	if len(data) != space.Dim() {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"buffer has %d elements, space %v has dimension %d", len(data), space, space.Dim())
	}
	return &Tensor{data: data, space: space.Clone(), dims: space.Dims()}, nil
}

// FromSlice builds a Tensor over space from a copy of data.
func FromSlice(data []float64, space spaces.ProductSpace) (*Tensor, error) {
	buf := make([]float64, len(data))
	copy(buf, data)
	return New(buf, space)
}

// Space returns the tensor's product space. The returned value is a copy;
// the tensor's own space is immutable after construction.
func (t *Tensor) Space() spaces.ProductSpace {
	return t.space.Clone()
}

// SpaceAt returns the index space of axis i.
func (t *Tensor) SpaceAt(i int) spaces.Space {
	return t.space[i]
}

// Dims returns the per-axis extents.
func (t *Tensor) Dims() []int {
	d := make([]int, len(t.dims))
	copy(d, t.dims)
	return d
}

// NDim returns the number of axes.
func (t *Tensor) NDim() int { return len(t.space) }

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int { return len(t.data) }

// Data returns the tensor's backing slice in row-major order.
//
// WARNING: modifications to the returned slice modify the tensor, and for a
// view also its source.
func (t *Tensor) Data() []float64 { return t.data }

// IsView reports whether this tensor aliases another tensor's buffer.
func (t *Tensor) IsView() bool { return t.view }

// At returns the element at the given multi-index.
// Panics if the number of indices or any index is out of range.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set stores value at the given multi-index.
// Panics if the number of indices or any index is out of range.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.dims) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(t.dims), len(indices)))
	}
	offset := 0
	stride := 1
	for i := len(t.dims) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx < 0 || idx >= t.dims[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for axis %d (size %d)", idx, i, t.dims[i]))
		}
		offset += idx * stride
		stride *= t.dims[i]
	}
	return offset
}

// Clone returns a deep copy that owns its buffer.
func (t *Tensor) Clone() *Tensor {
	buf := make([]float64, len(t.data))
	copy(buf, t.data)
	return &Tensor{data: buf, space: t.space.Clone(), dims: t.Dims()}
}

// Norm returns the Frobenius norm of the tensor.
func (t *Tensor) Norm() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// String returns a human-readable description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v over %s", t.dims, t.space)
}

// reinterpret returns a tensor aliasing t's buffer under a new space. The
// caller guarantees newSpace.Dim() == len(t.data).
func (t *Tensor) reinterpret(newSpace spaces.ProductSpace) *Tensor {
	return &Tensor{data: t.data, space: newSpace, dims: newSpace.Dims(), view: true}
}
