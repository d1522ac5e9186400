package spaces

import "strings"

// ProductSpace is an ordered, fixed-length tuple of index spaces, one per
// tensor axis. A length-zero product describes a scalar tensor.
type ProductSpace []Space

// Product builds a ProductSpace from the given factors.
func Product(factors ...Space) ProductSpace {
	p := make(ProductSpace, len(factors))
	copy(p, factors)
	return p
}

// Dim returns the product of the factor dimensions. A scalar product space
// has dimension 1.
func (p ProductSpace) Dim() int {
	n := 1
	for _, s := range p {
		n *= s.Dim()
	}
	return n
}

// Dims returns the per-axis dimensions.
func (p ProductSpace) Dims() []int {
	d := make([]int, len(p))
	for i, s := range p {
		d[i] = s.Dim()
	}
	return d
}

// Mul concatenates two product spaces, preserving axis order.
func (p ProductSpace) Mul(q ProductSpace) ProductSpace {
	r := make(ProductSpace, 0, len(p)+len(q))
	r = append(r, p...)
	return append(r, q...)
}

// Dual dualizes every factor, preserving axis order. Axis-order reversal is a
// separate operation (Reverse); conjugate transpose composes the two.
func (p ProductSpace) Dual() ProductSpace {
	r := make(ProductSpace, len(p))
	for i, s := range p {
		r[i] = s.Dual()
	}
	return r
}

// Reverse returns the factors in reversed axis order.
func (p ProductSpace) Reverse() ProductSpace {
	r := make(ProductSpace, len(p))
	for i, s := range p {
		r[len(p)-1-i] = s
	}
	return r
}

// Select returns the subspace formed by the factors at idx, in idx order.
// Panics if any index is out of range; callers validate bipartitions first.
func (p ProductSpace) Select(idx []int) ProductSpace {
	r := make(ProductSpace, len(idx))
	for i, j := range idx {
		r[i] = p[j]
	}
	return r
}

// Equal reports factor-wise structural equality.
func (p ProductSpace) Equal(q ProductSpace) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the product space.
func (p ProductSpace) Clone() ProductSpace {
	r := make(ProductSpace, len(p))
	copy(r, p)
	return r
}

// Scalar reports whether every factor is a scalar space.
func (p ProductSpace) Scalar() bool {
	for _, s := range p {
		if _, ok := s.(ScalarSpace); !ok {
			return false
		}
	}
	return true
}

// String renders the product as "V0 ⊗ V1 ⊗ …".
func (p ProductSpace) String() string {
	if len(p) == 0 {
		return "()"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		if str, ok := s.(interface{ String() string }); ok {
			parts[i] = str.String()
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, " ⊗ ")
}
