package tensor

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tenalg/tenalg/internal/kernel"
	"github.com/tenalg/tenalg/spaces"
)

// ConjFlag selects whether an operand enters a contraction conjugated.
// Conjugating an operand flips the effective orientation of its axes: a
// contracted pair needs mutually dual spaces when both operands carry the
// same flag, and equal spaces when the flags differ.
type ConjFlag byte

// Conjugation states for Contract.
const (
	NoConj ConjFlag = 'N'
	Conj   ConjFlag = 'C'
)

func checkLabelCount(t *Tensor, labels []Label, operand string) error {
	if len(labels) != t.NDim() {
		return errors.Wrapf(ErrLabelMismatch,
			"%s has %d axes but %d labels", operand, t.NDim(), len(labels))
	}
	return nil
}

// permutationSpaces validates that destination axis i and source axis
// perm[i] carry identical spaces, reporting every offending axis.
func permutationSpaces(src, dst *Tensor, perm []int, labelsDst []Label) error {
	var err error
	for i, p := range perm {
		if !dst.space[i].Equal(src.space[p]) {
			err = multierr.Append(err, errors.Wrapf(ErrSpaceMismatch,
				"label %q: source axis %d is %v, destination axis %d is %v",
				labelsDst[i], p, src.space[p], i, dst.space[i]))
		}
	}
	return err
}

// Copy writes a label-permuted copy of src into dst and returns dst.
// Every paired axis must carry exactly equal spaces. On error dst is left
// unchanged.
func Copy(src *Tensor, labelsSrc []Label, dst *Tensor, labelsDst []Label) (*Tensor, error) {
	if err := multierr.Combine(
		checkLabelCount(src, labelsSrc, "source"),
		checkLabelCount(dst, labelsDst, "destination"),
	); err != nil {
		return nil, err
	}
	perm, err := resolvePermutation(labelsSrc, labelsDst)
	if err != nil {
		return nil, err
	}
	if err := permutationSpaces(src, dst, perm, labelsDst); err != nil {
		return nil, err
	}

	kernel.Permute(dst.data, src.data, src.dims, perm)
	return dst, nil
}

// Add computes dst = beta*dst + alpha*permute(src) under the label-induced
// axis pairing and returns dst. Space rules are those of Copy. On error dst
// is left unchanged.
func Add(alpha float64, src *Tensor, labelsSrc []Label, beta float64, dst *Tensor, labelsDst []Label) (*Tensor, error) {
	if err := multierr.Combine(
		checkLabelCount(src, labelsSrc, "source"),
		checkLabelCount(dst, labelsDst, "destination"),
	); err != nil {
		return nil, err
	}
	perm, err := resolvePermutation(labelsSrc, labelsDst)
	if err != nil {
		return nil, err
	}
	if err := permutationSpaces(src, dst, perm, labelsDst); err != nil {
		return nil, err
	}

	kernel.PermuteAcc(alpha, src.data, src.dims, perm, beta, dst.data)
	return dst, nil
}

// Trace computes dst = beta*dst + alpha*tr(a) and returns dst: labels of
// labelsC select the open axes of a, every remaining label must appear twice
// on a and its axis pair is summed along the diagonal. Each traced pair must
// be mutually dual; open axes must match the destination spaces exactly.
// With no traced labels this degenerates to Add. On error dst is left
// unchanged.
func Trace(alpha float64, a *Tensor, labelsA []Label, beta float64, dst *Tensor, labelsC []Label) (*Tensor, error) {
	if len(labelsA) == len(labelsC) {
		return Add(alpha, a, labelsA, beta, dst, labelsC)
	}

	if err := multierr.Combine(
		checkLabelCount(a, labelsA, "source"),
		checkLabelCount(dst, labelsC, "destination"),
	); err != nil {
		return nil, err
	}
	plan, err := resolveTrace(labelsA, labelsC)
	if err != nil {
		return nil, err
	}

	var verr error
	for i, p := range plan.open {
		if !dst.space[i].Equal(a.space[p]) {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"label %q: source axis %d is %v, destination axis %d is %v",
				labelsC[i], p, a.space[p], i, dst.space[i]))
		}
	}
	for k := range plan.first {
		p, q := plan.first[k], plan.second[k]
		if !a.space[p].Equal(a.space[q].Dual()) {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"label %q: traced axes %d (%v) and %d (%v) are not mutually dual",
				labelsA[p], p, a.space[p], q, a.space[q]))
		}
	}
	if verr != nil {
		return nil, verr
	}

	kernel.TraceAcc(alpha, a.data, a.dims, plan.open, plan.first, plan.second, beta, dst.data)
	return dst, nil
}

// Contract computes dst = beta*dst + alpha*contract(conj?(a), conj?(b)) and
// returns dst. Labels shared between a and b are contracted; all remaining
// labels must appear in labelsC. Contracted pairs need mutually dual spaces
// when conjA == conjB and equal spaces otherwise; an open axis of a
// conjugated operand must appear dualized on the destination. On error dst
// is left unchanged.
func Contract(alpha float64, a *Tensor, labelsA []Label, conjA ConjFlag,
	b *Tensor, labelsB []Label, conjB ConjFlag,
	beta float64, dst *Tensor, labelsC []Label) (*Tensor, error) {

	if err := multierr.Combine(
		checkLabelCount(a, labelsA, "operand A"),
		checkLabelCount(b, labelsB, "operand B"),
		checkLabelCount(dst, labelsC, "destination"),
	); err != nil {
		return nil, err
	}
	plan, err := resolveContraction(labelsA, labelsB, labelsC)
	if err != nil {
		return nil, err
	}

	var verr error
	for k := range plan.contractedA {
		i, j := plan.contractedA[k], plan.contractedB[k]
		want := spaces.Space(b.space[j])
		if conjA == conjB {
			want = want.Dual()
		}
		if !a.space[i].Equal(want) {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"label %q: contracted axes %v (A) and %v (B) are incompatible under conjugation %q,%q",
				labelsA[i], a.space[i], b.space[j], conjA, conjB))
		}
	}
	for c, p := range plan.toC {
		var op *Tensor
		var conj ConjFlag
		var axis int
		if plan.fromA[c] {
			op, conj, axis = a, conjA, plan.openA[p]
		} else {
			op, conj, axis = b, conjB, plan.openB[p-len(plan.openA)]
		}
		want := spaces.Space(op.space[axis])
		if conj == Conj {
			want = want.Dual()
		}
		if !dst.space[c].Equal(want) {
			verr = multierr.Append(verr, errors.Wrapf(ErrSpaceMismatch,
				"label %q: open axis %v does not match destination axis %d (%v)",
				labelsC[c], op.space[axis], c, dst.space[c]))
		}
	}
	if verr != nil {
		return nil, verr
	}

	permA := append(append([]int{}, plan.openA...), plan.contractedA...)
	permB := append(append([]int{}, plan.contractedB...), plan.openB...)

	m, n, k := 1, 1, 1
	for _, ax := range plan.openA {
		m *= a.dims[ax]
	}
	for _, ax := range plan.openB {
		n *= b.dims[ax]
	}
	for _, ax := range plan.contractedA {
		k *= a.dims[ax]
	}

	kernel.Contract(kernel.ContractArgs{
		Alpha: alpha, Beta: beta,
		A: a.data, DimsA: a.dims, PermA: permA,
		B: b.data, DimsB: b.dims, PermB: permB,
		M: m, K: k, N: n,
		C: dst.data, DimsC: dst.dims, PermC: plan.toC,
	})
	return dst, nil
}
