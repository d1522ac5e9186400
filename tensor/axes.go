package tensor

import (
	"github.com/pkg/errors"

	"github.com/tenalg/tenalg/internal/kernel"
	"github.com/tenalg/tenalg/spaces"
)

// The axis-reshaping family reinterprets a tensor's buffer under a new
// product space without copying. Every function here returns a view: the
// result aliases the receiver's buffer, and mutating one mutates the other.
// All of them are defined for scalar index spaces only.

func scalarAxis(t *Tensor, axis int) (spaces.ScalarSpace, error) {
	if axis < 0 || axis >= t.NDim() {
		return nil, errors.Wrapf(ErrIndexRange, "axis %d out of range for %d axes", axis, t.NDim())
	}
	s, ok := t.space[axis].(spaces.ScalarSpace)
	if !ok {
		return nil, errors.Wrapf(ErrSpaceMismatch, "axis %d (%v) is not a scalar space", axis, t.space[axis])
	}
	return s, nil
}

// InsertAxis returns a view with a fresh dimension-1 scalar axis inserted at
// position pos (0..NDim inclusive), dualized when dual is set.
func InsertAxis(t *Tensor, pos int, dual bool) (*Tensor, error) {
	if pos < 0 || pos > t.NDim() {
		return nil, errors.Wrapf(ErrIndexRange, "insertion point %d out of range for %d axes", pos, t.NDim())
	}
	var s spaces.Space = spaces.NewVectorSpace(1)
	if dual {
		s = s.Dual()
	}
	sp := make(spaces.ProductSpace, 0, t.NDim()+1)
	sp = append(sp, t.space[:pos]...)
	sp = append(sp, s)
	sp = append(sp, t.space[pos:]...)
	return t.reinterpret(sp), nil
}

// DeleteAxis returns a view with the dimension-1 scalar axis at pos removed.
func DeleteAxis(t *Tensor, pos int) (*Tensor, error) {
	s, err := scalarAxis(t, pos)
	if err != nil {
		return nil, err
	}
	if s.Dim() != 1 {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"axis %d has dimension %d, only dimension-1 axes can be deleted", pos, s.Dim())
	}
	sp := make(spaces.ProductSpace, 0, t.NDim()-1)
	sp = append(sp, t.space[:pos]...)
	sp = append(sp, t.space[pos+1:]...)
	return t.reinterpret(sp), nil
}

// FuseAxes returns a view with the contiguous scalar axes [from, to) fused
// into one plain scalar axis of the product dimension.
func FuseAxes(t *Tensor, from, to int) (*Tensor, error) {
	if from < 0 || to > t.NDim() || from >= to {
		return nil, errors.Wrapf(ErrIndexRange,
			"fuse range [%d, %d) invalid for %d axes", from, to, t.NDim())
	}
	fused := spaces.NewVectorSpace(1)
	for ax := from; ax < to; ax++ {
		s, err := scalarAxis(t, ax)
		if err != nil {
			return nil, err
		}
		f, err := spaces.Fuse(fused, s)
		if err != nil {
			return nil, errors.Wrap(ErrSpaceMismatch, err.Error())
		}
		fused = f
	}
	sp := make(spaces.ProductSpace, 0, t.NDim()-(to-from)+1)
	sp = append(sp, t.space[:from]...)
	sp = append(sp, fused)
	sp = append(sp, t.space[to:]...)
	return t.reinterpret(sp), nil
}

// SplitAxis returns a view with the scalar axis at pos split into plain
// scalar axes of the given dimensions, whose product must equal the axis
// dimension.
func SplitAxis(t *Tensor, pos int, dims ...int) (*Tensor, error) {
	s, err := scalarAxis(t, pos)
	if err != nil {
		return nil, err
	}
	prod := 1
	for _, d := range dims {
		if d < 0 {
			return nil, errors.Wrapf(ErrIndexRange, "negative split dimension %d", d)
		}
		prod *= d
	}
	if prod != s.Dim() {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"split dimensions %v multiply to %d, axis %d has dimension %d", dims, prod, pos, s.Dim())
	}
	sp := make(spaces.ProductSpace, 0, t.NDim()-1+len(dims))
	sp = append(sp, t.space[:pos]...)
	for _, d := range dims {
		sp = append(sp, spaces.NewVectorSpace(d))
	}
	sp = append(sp, t.space[pos+1:]...)
	return t.reinterpret(sp), nil
}

// Adjoint returns the conjugate transpose of t as an independent tensor:
// axis order reversed, every index space dualized, data permuted to match.
// For real data conjugation leaves the entries unchanged.
func Adjoint(t *Tensor) *Tensor {
	n := t.NDim()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	out := Zeros(t.space.Reverse().Dual())
	kernel.Permute(out.data, t.data, t.dims, perm)
	return out
}
