package tensor

import "github.com/pkg/errors"

// Label is a symbolic token bound to one tensor axis for the duration of a
// single operation call. Labels are not stored on tensors and carry no
// persistent identity.
type Label = string

// checkDistinct fails when labels contains a duplicate.
func checkDistinct(labels []Label, operand string) error {
	seen := make(map[Label]int, len(labels))
	for i, l := range labels {
		if j, dup := seen[l]; dup {
			return errors.Wrapf(ErrLabelMismatch,
				"label %q appears on axes %d and %d of %s", l, j, i, operand)
		}
		seen[l] = i
	}
	return nil
}

// resolvePermutation computes perm such that destination axis i corresponds
// to source axis perm[i], i.e. labelsDst[i] == labelsSrc[perm[i]]. Both lists
// must be duplicate-free and contain the same label set.
func resolvePermutation(labelsSrc, labelsDst []Label) ([]int, error) {
	if len(labelsSrc) != len(labelsDst) {
		return nil, errors.Wrapf(ErrLabelMismatch,
			"source has %d labels, destination has %d", len(labelsSrc), len(labelsDst))
	}
	if err := checkDistinct(labelsSrc, "source"); err != nil {
		return nil, err
	}
	if err := checkDistinct(labelsDst, "destination"); err != nil {
		return nil, err
	}

	srcPos := make(map[Label]int, len(labelsSrc))
	for i, l := range labelsSrc {
		srcPos[l] = i
	}

	perm := make([]int, len(labelsDst))
	for i, l := range labelsDst {
		j, ok := srcPos[l]
		if !ok {
			return nil, errors.Wrapf(ErrLabelMismatch,
				"destination label %q does not appear on the source", l)
		}
		perm[i] = j
	}
	return perm, nil
}

// tracePlan maps a partial trace: destination axis i runs over source axis
// open[i], and each pair (first[k], second[k]) of source axes is summed along
// its diagonal. open, first and second together form a bijection onto the
// source axes.
type tracePlan struct {
	open   []int
	first  []int
	second []int
}

// resolveTrace classifies labelsA against labelsC: labels of C must appear
// exactly once in A, every remaining label of A exactly twice.
func resolveTrace(labelsA, labelsC []Label) (tracePlan, error) {
	var plan tracePlan

	if err := checkDistinct(labelsC, "destination"); err != nil {
		return plan, err
	}
	if len(labelsA) < len(labelsC) || (len(labelsA)-len(labelsC))%2 != 0 {
		return plan, errors.Wrapf(ErrLabelMismatch,
			"cannot trace %d axes down to %d", len(labelsA), len(labelsC))
	}

	inC := make(map[Label]bool, len(labelsC))
	for _, l := range labelsC {
		inC[l] = true
	}

	positions := make(map[Label][]int, len(labelsA))
	for i, l := range labelsA {
		positions[l] = append(positions[l], i)
	}

	plan.open = make([]int, len(labelsC))
	for i, l := range labelsC {
		pos := positions[l]
		if len(pos) != 1 {
			return plan, errors.Wrapf(ErrLabelMismatch,
				"open label %q must appear exactly once on the source, found %d occurrences", l, len(pos))
		}
		plan.open[i] = pos[0]
	}

	// Traced pairs in order of first occurrence on the source.
	for i, l := range labelsA {
		if inC[l] || positions[l][0] != i {
			continue
		}
		pos := positions[l]
		if len(pos) != 2 {
			return plan, errors.Wrapf(ErrLabelMismatch,
				"traced label %q must appear exactly twice on the source, found %d occurrences", l, len(pos))
		}
		plan.first = append(plan.first, pos[0])
		plan.second = append(plan.second, pos[1])
	}

	if len(plan.open)+2*len(plan.first) != len(labelsA) {
		return plan, errors.Wrapf(ErrLabelMismatch,
			"open and traced labels do not cover all %d source axes", len(labelsA))
	}
	return plan, nil
}

// contractPlan maps a pairwise contraction. contractedA[k] pairs with
// contractedB[k]; openA and openB list the surviving axes of each operand;
// toC[i] gives, for destination axis i, the position of its label in the
// concatenated (openA..., openB...) product order.
type contractPlan struct {
	contractedA []int
	contractedB []int
	openA       []int
	openB       []int
	toC         []int
	fromA       []bool // per destination axis: label came from operand A
}

// resolveContraction partitions the labels of a pairwise contraction.
// Each list must be duplicate-free: an operand contracting with itself must
// be reduced by a partial trace first.
func resolveContraction(labelsA, labelsB, labelsC []Label) (contractPlan, error) {
	var plan contractPlan

	if err := checkDistinct(labelsA, "operand A"); err != nil {
		return plan, errors.WithMessage(err, "handle inner contraction first")
	}
	if err := checkDistinct(labelsB, "operand B"); err != nil {
		return plan, errors.WithMessage(err, "handle inner contraction first")
	}
	if err := checkDistinct(labelsC, "destination"); err != nil {
		return plan, err
	}

	posB := make(map[Label]int, len(labelsB))
	for i, l := range labelsB {
		posB[l] = i
	}
	posA := make(map[Label]int, len(labelsA))
	for i, l := range labelsA {
		posA[l] = i
	}
	inC := make(map[Label]bool, len(labelsC))
	for _, l := range labelsC {
		inC[l] = true
	}

	openPos := make(map[Label]int, len(labelsC))
	for i, l := range labelsA {
		if j, shared := posB[l]; shared {
			plan.contractedA = append(plan.contractedA, i)
			plan.contractedB = append(plan.contractedB, j)
		} else if inC[l] {
			openPos[l] = len(plan.openA)
			plan.openA = append(plan.openA, i)
		}
	}
	for i, l := range labelsB {
		if _, shared := posA[l]; !shared && inC[l] {
			openPos[l] = len(plan.openA) + len(plan.openB)
			plan.openB = append(plan.openB, i)
		}
	}

	if len(plan.contractedA)+len(plan.openA) != len(labelsA) ||
		len(plan.contractedB)+len(plan.openB) != len(labelsB) ||
		len(plan.openA)+len(plan.openB) != len(labelsC) {
		return plan, errors.Wrapf(ErrLabelMismatch,
			"invalid contraction pattern %v, %v -> %v", labelsA, labelsB, labelsC)
	}

	plan.toC = make([]int, len(labelsC))
	plan.fromA = make([]bool, len(labelsC))
	for i, l := range labelsC {
		plan.toC[i] = openPos[l]
		_, plan.fromA[i] = posA[l]
	}
	return plan, nil
}
