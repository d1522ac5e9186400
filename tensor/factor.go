package tensor

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/tenalg/tenalg/internal/kernel"
	"github.com/tenalg/tenalg/spaces"
)

// bipartition is the resolved common preamble of every factorization: axes
// permuted into (left..., right...) order and copied into a fresh matrix
// buffer of shape ldim×rdim. The copy is unconditional, factorization
// kernels may overwrite their input.
type bipartition struct {
	left, right []int
	ldim, rdim  int
	buf         []float64
}

func (t *Tensor) bipartition(leftInds, rightInds []int) (bipartition, error) {
	var bp bipartition

	if !t.space.Scalar() {
		return bp, errors.Wrapf(ErrSpaceMismatch,
			"factorization requires scalar index spaces, got %v", t.space)
	}

	n := t.NDim()
	used := make([]bool, n)
	mark := func(idx []int) error {
		for _, ax := range idx {
			if ax < 0 || ax >= n {
				return errors.Wrapf(ErrIndexRange, "axis %d out of range for %d axes", ax, n)
			}
			if used[ax] {
				return errors.Wrapf(ErrIndexRange, "axis %d used twice in bipartition", ax)
			}
			used[ax] = true
		}
		return nil
	}

	if err := mark(leftInds); err != nil {
		return bp, err
	}
	if rightInds == nil {
		for ax := 0; ax < n; ax++ {
			if !used[ax] {
				rightInds = append(rightInds, ax)
			}
		}
	}
	if err := mark(rightInds); err != nil {
		return bp, err
	}
	if len(leftInds)+len(rightInds) != n {
		return bp, errors.Wrapf(ErrIndexRange,
			"bipartition covers %d of %d axes", len(leftInds)+len(rightInds), n)
	}

	bp.left = append([]int{}, leftInds...)
	bp.right = append([]int{}, rightInds...)
	bp.ldim, bp.rdim = 1, 1
	for _, ax := range bp.left {
		bp.ldim *= t.dims[ax]
	}
	for _, ax := range bp.right {
		bp.rdim *= t.dims[ax]
	}

	perm := append(append([]int{}, bp.left...), bp.right...)
	bp.buf = make([]float64, len(t.data))
	kernel.Permute(bp.buf, t.data, t.dims, perm)
	return bp, nil
}

// mustNew wraps a buffer whose length is correct by construction.
func mustNew(data []float64, space spaces.ProductSpace) *Tensor {
	t, err := New(data, space)
	if err != nil {
		panic(err)
	}
	return t
}

// diagTensor builds the dense diagonal operator over v ⊗ dual(v) from d.
func diagTensor(d []float64, v spaces.VectorSpace) *Tensor {
	t := Zeros(spaces.Product(v, v.Dual()))
	for i, val := range d {
		t.data[i*len(d)+i] = val
	}
	return t
}

// SVD computes the full-rank singular value decomposition of t under the
// given axis bipartition (rightInds nil means the complement of leftInds):
// with k = min(leftdim, rightdim) and a fresh scalar space s of dimension k,
// U spans leftspace ⊗ dual(s), Sigma is the dense diagonal over s ⊗ dual(s),
// and V spans s ⊗ rightspace, such that U·Sigma·V reconstructs t.
func SVD(t *Tensor, leftInds, rightInds []int) (u, sigma, v *Tensor, err error) {
	bp, err := t.bipartition(leftInds, rightInds)
	if err != nil {
		return nil, nil, nil, err
	}

	ub, s, vtb, err := kernel.SVD(bp.buf, bp.ldim, bp.rdim)
	if err != nil {
		return nil, nil, nil, err
	}

	news := spaces.NewVectorSpace(len(s))
	u = mustNew(ub, t.space.Select(bp.left).Mul(spaces.Product(news.Dual())))
	sigma = diagTensor(s, news)
	v = mustNew(vtb, spaces.Product(news).Mul(t.space.Select(bp.right)))
	return u, sigma, v, nil
}

// truncOptions configures SVDTrunc.
type truncOptions struct {
	maxRank int
	tol     float64
}

// TruncOption customizes rank truncation.
type TruncOption func(*truncOptions)

// WithMaxRank caps the truncated rank at r. The default keeps the full left
// dimension.
func WithMaxRank(r int) TruncOption {
	return func(o *truncOptions) { o.maxRank = r }
}

// WithTol discards the smallest trailing singular values whose Euclidean
// norm stays within tol times the norm of the full spectrum.
func WithTol(tol float64) TruncOption {
	return func(o *truncOptions) { o.tol = tol }
}

// SVDTrunc computes the rank-truncated singular value decomposition of t.
// The output rank is the smaller of the WithMaxRank cap and the smallest
// rank admitted by WithTol; truncErr reports the Euclidean norm of the
// discarded singular values (zero when nothing is discarded). This is the
// engine's controlled-compression primitive.
func SVDTrunc(t *Tensor, leftInds, rightInds []int, opts ...TruncOption) (u, sigma, v *Tensor, truncErr float64, err error) {
	bp, err := t.bipartition(leftInds, rightInds)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	o := truncOptions{maxRank: bp.ldim}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxRank < 0 {
		o.maxRank = 0
	}

	ub, s, vtb, err := kernel.SVD(bp.buf, bp.ldim, bp.rdim)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	total := floats.Norm(s, 2)
	rank := len(s)
	for k := 0; k <= len(s); k++ {
		if floats.Norm(s[k:], 2) <= o.tol*total {
			rank = k
			break
		}
	}
	if o.maxRank < rank {
		rank = o.maxRank
	}
	truncErr = floats.Norm(s[rank:], 2)

	k := len(s)
	utrunc := make([]float64, bp.ldim*rank)
	for i := 0; i < bp.ldim; i++ {
		copy(utrunc[i*rank:(i+1)*rank], ub[i*k:i*k+rank])
	}
	vtrunc := make([]float64, rank*bp.rdim)
	copy(vtrunc, vtb[:rank*bp.rdim])

	news := spaces.NewVectorSpace(rank)
	u = mustNew(utrunc, t.space.Select(bp.left).Mul(spaces.Product(news.Dual())))
	sigma = diagTensor(append([]float64{}, s[:rank]...), news)
	v = mustNew(vtrunc, spaces.Product(news).Mul(t.space.Select(bp.right)))
	return u, sigma, v, truncErr, nil
}

// signFix rescales column j of q (m×n) and row j of r (n×n) by the sign of
// r's diagonal entry, making every diagonal entry non-negative. This removes
// the orthogonal factorization's sign ambiguity, so the decomposition is
// unique in floating point.
func signFix(q []float64, m int, r []float64, n int) {
	for j := 0; j < n; j++ {
		if r[j*n+j] >= 0 {
			continue
		}
		for c := j; c < n; c++ {
			r[j*n+c] = -r[j*n+c]
		}
		for i := 0; i < m; i++ {
			q[i*n+j] = -q[i*n+j]
		}
	}
}

// LeftOrth factors t under the bipartition into U·R with U column-orthonormal
// and the diagonal of R non-negative, so the result is unique. When the left
// dimension does not exceed the right one no compression is possible and U is
// the identity.
func LeftOrth(t *Tensor, leftInds, rightInds []int) (u, r *Tensor, err error) {
	bp, err := t.bipartition(leftInds, rightInds)
	if err != nil {
		return nil, nil, err
	}

	leftSpace := t.space.Select(bp.left)
	if bp.ldim > bp.rdim {
		qb, rb := kernel.QR(bp.buf, bp.ldim, bp.rdim)
		signFix(qb, bp.ldim, rb, bp.rdim)
		news := spaces.NewVectorSpace(bp.rdim)
		u = mustNew(qb, leftSpace.Mul(spaces.Product(news.Dual())))
		r = mustNew(rb, spaces.Product(news).Mul(t.space.Select(bp.right)))
		return u, r, nil
	}

	news := spaces.NewVectorSpace(bp.ldim)
	eye := Eye(news)
	u = mustNew(eye.data, leftSpace.Mul(spaces.Product(news.Dual())))
	r = mustNew(bp.buf, spaces.Product(news).Mul(t.space.Select(bp.right)))
	return u, r, nil
}

// RightOrth is the mirror of LeftOrth: it factors t into L·Q with Q
// row-orthonormal and the diagonal of L's triangular generator non-negative.
// When the right dimension does not exceed the left one, Q is the identity.
func RightOrth(t *Tensor, leftInds, rightInds []int) (l, q *Tensor, err error) {
	bp, err := t.bipartition(leftInds, rightInds)
	if err != nil {
		return nil, nil, err
	}

	leftSpace := t.space.Select(bp.left)
	rightSpace := t.space.Select(bp.right)

	if bp.rdim > bp.ldim {
		// Factor the transposed bipartition, then transpose back:
		// Aᵀ = Q̃·R̃ gives A = R̃ᵀ·Q̃ᵀ with Q̃ᵀ row-orthonormal.
		bufT := make([]float64, len(bp.buf))
		kernel.Permute(bufT, bp.buf, []int{bp.ldim, bp.rdim}, []int{1, 0})
		qb, rb := kernel.QR(bufT, bp.rdim, bp.ldim)
		signFix(qb, bp.rdim, rb, bp.ldim)

		lb := make([]float64, bp.ldim*bp.ldim)
		kernel.Permute(lb, rb, []int{bp.ldim, bp.ldim}, []int{1, 0})
		qt := make([]float64, bp.ldim*bp.rdim)
		kernel.Permute(qt, qb, []int{bp.rdim, bp.ldim}, []int{1, 0})

		news := spaces.NewVectorSpace(bp.ldim)
		l = mustNew(lb, leftSpace.Mul(spaces.Product(news.Dual())))
		q = mustNew(qt, spaces.Product(news).Mul(rightSpace))
		return l, q, nil
	}

	news := spaces.NewVectorSpace(bp.rdim)
	l = mustNew(bp.buf, leftSpace.Mul(spaces.Product(news.Dual())))
	q = mustNew(Eye(news).data, spaces.Product(news).Mul(rightSpace))
	return l, q, nil
}

// Pinv computes the Moore-Penrose pseudo-inverse of a 2-axis tensor via its
// SVD. Singular values at or below eps·max(m,n)·σmax are treated as zero and
// left uninverted, preventing blow-up from near-singular directions. The
// result spans the dual of the reversed input space, so Pinv(t)·t and
// t·Pinv(t) are well-formed contractions.
func Pinv(t *Tensor) (*Tensor, error) {
	if t.NDim() != 2 {
		return nil, errors.Wrapf(ErrIndexRange, "pinv requires a 2-axis tensor, got %d axes", t.NDim())
	}
	bp, err := t.bipartition([]int{0}, []int{1})
	if err != nil {
		return nil, err
	}

	ub, s, vtb, err := kernel.SVD(bp.buf, bp.ldim, bp.rdim)
	if err != nil {
		return nil, err
	}

	m, n := bp.ldim, bp.rdim
	k := len(s)
	cutoff := 0.0
	if k > 0 {
		cutoff = math.Max(float64(m), float64(n)) * s[0] * machineEps
	}

	// pinv[i,j] = Σ_r v[i,r] · (1/s[r]) · u[j,r] over the retained spectrum.
	out := make([]float64, n*m)
	for r := 0; r < k; r++ {
		if s[r] <= cutoff || s[r] == 0 {
			continue
		}
		inv := 1 / s[r]
		for i := 0; i < n; i++ {
			vi := vtb[r*n+i] * inv
			if vi == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				out[i*m+j] += vi * ub[j*k+r]
			}
		}
	}

	space := spaces.Product(t.space[1].Dual(), t.space[0].Dual())
	return mustNew(out, space), nil
}

const machineEps = 2.220446049250313e-16

// requireOperator checks the eig/inv precondition: a 2-axis tensor whose
// axes are mutually dual, i.e. a square operator over a space and its dual.
func requireOperator(t *Tensor) error {
	if t.NDim() != 2 {
		return errors.Wrapf(ErrIndexRange, "operator decomposition requires a 2-axis tensor, got %d axes", t.NDim())
	}
	if !t.space[0].Equal(t.space[1].Dual()) {
		return errors.Wrapf(ErrSpaceMismatch,
			"axes %v and %v are not mutually dual", t.space[0], t.space[1])
	}
	return nil
}

// eigImagTol bounds the relative imaginary magnitude accepted as numerically
// real when converting the general complex spectrum back to float64.
const eigImagTol = 1e-12

// Eig computes the eigendecomposition of a square operator t over a space
// paired with its dual, returning the dense diagonal eigenvalue tensor and
// the eigenvector tensor, both over t's own space. Fails with
// ErrComplexEigen when the spectrum is not real to working precision.
func Eig(t *Tensor) (lambda, vecs *Tensor, err error) {
	if err := requireOperator(t); err != nil {
		return nil, nil, err
	}
	bp, err := t.bipartition([]int{0}, []int{1})
	if err != nil {
		return nil, nil, err
	}

	values, vectors, err := kernel.Eig(bp.buf, bp.ldim)
	if err != nil {
		return nil, nil, err
	}

	n := bp.ldim
	scale := 1.0
	for _, v := range values {
		if m := math.Abs(real(v)); m > scale {
			scale = m
		}
	}
	lam := make([]float64, n)
	for i, v := range values {
		if math.Abs(imag(v)) > eigImagTol*scale {
			return nil, nil, errors.Wrapf(ErrComplexEigen,
				"eigenvalue %d is %v", i, v)
		}
		lam[i] = real(v)
	}
	vb := make([]float64, n*n)
	for i := range vectors {
		if math.Abs(imag(vectors[i])) > eigImagTol*scale {
			return nil, nil, errors.Wrapf(ErrComplexEigen,
				"eigenvector entry %d is %v", i, vectors[i])
		}
		vb[i] = real(vectors[i])
	}

	lamT := Zeros(t.space)
	for i := 0; i < n; i++ {
		lamT.data[i*n+i] = lam[i]
	}
	return lamT, mustNew(vb, t.space), nil
}

// Inv computes the exact inverse of a square operator t over a space paired
// with its dual; the result spans the same space.
func Inv(t *Tensor) (*Tensor, error) {
	if err := requireOperator(t); err != nil {
		return nil, err
	}
	bp, err := t.bipartition([]int{0}, []int{1})
	if err != nil {
		return nil, err
	}

	out, err := kernel.Inv(bp.buf, bp.ldim)
	if err != nil {
		return nil, err
	}
	return mustNew(out, t.space), nil
}
