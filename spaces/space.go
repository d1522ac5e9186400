package spaces

import "fmt"

// Space is a single tensor axis: a dimension plus an orientation.
//
// Implementations must be comparable values; Equal requires the same concrete
// type, the same dimension and the same orientation.
type Space interface {
	// Dim returns the dimension of the space.
	Dim() int

	// Dual returns the orientation-flipped counterpart. Dual is an involution:
	// s.Dual().Dual() equals s.
	Dual() Space

	// IsDual reports whether this is the dual orientation.
	IsDual() bool

	// Equal reports structural equality: same concrete space kind, same
	// dimension, same orientation.
	Equal(other Space) bool
}

// ScalarSpace marks a space family that carries no structure beyond its
// dimension (a "c-number" space). Factorizations and axis insert, delete,
// fuse and split operations are only defined over this family.
type ScalarSpace interface {
	Space

	// scalarSpace is a marker; only space kinds with no internal structure
	// may implement it.
	scalarSpace()
}

// VectorSpace is the plain scalar index space: a dimension and an
// orientation bit. The zero value is the zero-dimensional plain space.
type VectorSpace struct {
	dim  int
	dual bool
}

var _ ScalarSpace = VectorSpace{}

// NewVectorSpace returns a plain-orientation vector space of dimension d.
// Panics if d is negative.
func NewVectorSpace(d int) VectorSpace {
	if d < 0 {
		panic(fmt.Sprintf("spaces: negative dimension %d", d))
	}
	return VectorSpace{dim: d}
}

// Dim returns the dimension of the space.
func (v VectorSpace) Dim() int { return v.dim }

// Dual returns the same space with flipped orientation.
func (v VectorSpace) Dual() Space {
	return VectorSpace{dim: v.dim, dual: !v.dual}
}

// IsDual reports whether the space has dual orientation.
func (v VectorSpace) IsDual() bool { return v.dual }

// Equal reports whether other is a VectorSpace with the same dimension and
// orientation.
func (v VectorSpace) Equal(other Space) bool {
	o, ok := other.(VectorSpace)
	return ok && o.dim == v.dim && o.dual == v.dual
}

func (v VectorSpace) scalarSpace() {}

// String renders the space as e.g. "R^4" or "(R^4)*".
func (v VectorSpace) String() string {
	if v.dual {
		return fmt.Sprintf("(R^%d)*", v.dim)
	}
	return fmt.Sprintf("R^%d", v.dim)
}

// Fusible reports whether a and b may be fused into a single axis. Only
// scalar spaces fuse; structured space kinds would need a fusion tree.
func Fusible(a, b Space) bool {
	_, aok := a.(ScalarSpace)
	_, bok := b.(ScalarSpace)
	return aok && bok
}

// Fuse combines two scalar spaces into one plain-orientation scalar space of
// the product dimension. Returns an error if either space is not scalar.
func Fuse(a, b Space) (VectorSpace, error) {
	if !Fusible(a, b) {
		return VectorSpace{}, fmt.Errorf("spaces: cannot fuse %v with %v: both must be scalar spaces", a, b)
	}
	return NewVectorSpace(a.Dim() * b.Dim()), nil
}
