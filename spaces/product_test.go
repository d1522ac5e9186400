package spaces

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestProductSpaceDim(t *testing.T) {
	tests := []struct {
		name string
		p    ProductSpace
		want int
	}{
		{"empty product is scalar", Product(), 1},
		{"single factor", Product(NewVectorSpace(5)), 5},
		{"mixed orientations", Product(NewVectorSpace(2), NewVectorSpace(3).Dual(), NewVectorSpace(4)), 24},
		{"zero dimensional factor", Product(NewVectorSpace(3), NewVectorSpace(0)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Dim())
		})
	}
}

func TestProductSpaceMulPreservesOrder(t *testing.T) {
	p := Product(NewVectorSpace(2), NewVectorSpace(3))
	q := Product(NewVectorSpace(4).Dual())

	r := p.Mul(q)
	assert.Equal(t, []int{2, 3, 4}, r.Dims())
	assert.True(t, r[2].IsDual())

	// Operands must be unchanged.
	assert.Equal(t, 2, len(p))
	assert.Equal(t, 1, len(q))
}

func TestProductSpaceDualAndReverse(t *testing.T) {
	p := Product(NewVectorSpace(2), NewVectorSpace(3).Dual())

	d := p.Dual()
	assert.True(t, d[0].IsDual())
	assert.False(t, d[1].IsDual())
	assert.Equal(t, []int{2, 3}, d.Dims(), "Dual preserves axis order")

	rev := p.Reverse()
	assert.Equal(t, []int{3, 2}, rev.Dims())

	// Conjugate transpose composes the two.
	adj := p.Reverse().Dual()
	assert.True(t, adj[1].IsDual())
	assert.False(t, adj[0].IsDual())
}

func TestProductSpaceEqual(t *testing.T) {
	p := Product(NewVectorSpace(2), NewVectorSpace(3).Dual())
	q := Product(NewVectorSpace(2), NewVectorSpace(3).Dual())

	assert.True(t, p.Equal(q))
	assert.False(t, p.Equal(p.Dual()))
	assert.False(t, p.Equal(Product(NewVectorSpace(2))))

	if diff := cmp.Diff(p.Dims(), q.Dims()); diff != "" {
		t.Errorf("dims mismatch (-want +got):\n%s", diff)
	}
}

func TestProductSpaceSelect(t *testing.T) {
	p := Product(NewVectorSpace(2), NewVectorSpace(3), NewVectorSpace(4).Dual())
	s := p.Select([]int{2, 0})
	assert.Equal(t, []int{4, 2}, s.Dims())
	assert.True(t, s[0].IsDual())
}

func TestProductSpaceScalar(t *testing.T) {
	assert.True(t, Product(NewVectorSpace(2), NewVectorSpace(3).Dual()).Scalar())
	assert.True(t, Product().Scalar())
}
