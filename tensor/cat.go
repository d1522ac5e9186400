package tensor

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tenalg/tenalg/internal/kernel"
	"github.com/tenalg/tenalg/spaces"
)

// Cat concatenates tensors along the given axis. Away from that axis all
// spaces must be exactly equal; the concatenation axis itself must be a
// scalar space on every operand, and the result carries a fresh plain scalar
// space of the summed dimension there.
func Cat(axis int, tensors ...*Tensor) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, errors.Wrap(ErrIndexRange, "cat requires at least one tensor")
	}
	first := tensors[0]
	if axis < 0 || axis >= first.NDim() {
		return nil, errors.Wrapf(ErrIndexRange, "axis %d out of range for %d axes", axis, first.NDim())
	}

	var verr error
	total := 0
	for ti, t := range tensors {
		if t.NDim() != first.NDim() {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"tensor %d has %d axes, want %d", ti, t.NDim(), first.NDim()))
			continue
		}
		if _, ok := t.space[axis].(spaces.ScalarSpace); !ok {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"tensor %d: concatenation axis %d (%v) is not a scalar space", ti, axis, t.space[axis]))
		}
		for ax := range t.space {
			if ax != axis && !t.space[ax].Equal(first.space[ax]) {
				verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
					"tensor %d: axis %d is %v, want %v", ti, ax, t.space[ax], first.space[ax]))
			}
		}
		total += t.dims[axis]
	}
	if verr != nil {
		return nil, verr
	}

	sp := first.space.Clone()
	sp[axis] = spaces.NewVectorSpace(total)
	out := Zeros(sp)

	outer := kernel.Prod(first.dims[:axis])
	inner := kernel.Prod(first.dims[axis+1:])
	rowLen := total * inner
	col := 0
	for _, t := range tensors {
		slab := t.dims[axis] * inner
		for o := 0; o < outer; o++ {
			copy(out.data[o*rowLen+col:o*rowLen+col+slab], t.data[o*slab:(o+1)*slab])
		}
		col += slab
	}
	return out, nil
}
