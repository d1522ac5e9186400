package kernel

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SVD computes the thin singular value decomposition of the row-major m×n
// matrix a: a = U·diag(s)·Vt with U of shape m×k, Vt of shape k×n and
// k = min(m, n). Singular values are returned in descending order.
func SVD(a []float64, m, n int) (u, s, vt []float64, err error) {
	k := m
	if n < k {
		k = n
	}
	if k == 0 {
		return []float64{}, []float64{}, []float64{}, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(m, n, a), mat.SVDThin); !ok {
		return nil, nil, nil, errors.New("kernel: SVD failed to converge")
	}

	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm)
	s = svd.Values(nil)

	u = make([]float64, m*k)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			u[i*k+j] = um.At(i, j)
		}
	}
	vt = make([]float64, k*n)
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			vt[i*n+j] = vm.At(j, i)
		}
	}
	return u, s, vt, nil
}

// QR computes the thin Householder QR decomposition of the row-major m×n
// matrix a with m >= n: a = Q·R with Q of shape m×n having orthonormal
// columns and R upper triangular of shape n×n.
func QR(a []float64, m, n int) (q, r []float64) {
	if m < n {
		panic("kernel: QR requires m >= n")
	}
	if n == 0 {
		return []float64{}, []float64{}
	}

	var qr mat.QR
	qr.Factorize(mat.NewDense(m, n, a))

	var qm, rm mat.Dense
	qr.QTo(&qm)
	qr.RTo(&rm)

	q = make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			q[i*n+j] = qm.At(i, j)
		}
	}
	r = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[i*n+j] = rm.At(i, j)
		}
	}
	return q, r
}

// Eig computes the eigendecomposition of the row-major n×n matrix a,
// returning eigenvalues and the matrix of right eigenvectors (column j holds
// the eigenvector for values[j]). The general problem is complex-valued even
// for real input.
func Eig(a []float64, n int) (values []complex128, vectors []complex128, err error) {
	if n == 0 {
		return []complex128{}, []complex128{}, nil
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, a), mat.EigenRight); !ok {
		return nil, nil, errors.New("kernel: eigendecomposition failed to converge")
	}

	values = eig.Values(nil)
	var vm mat.CDense
	eig.VectorsTo(&vm)

	vectors = make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vectors[i*n+j] = vm.At(i, j)
		}
	}
	return values, vectors, nil
}

// Inv computes the inverse of the row-major n×n matrix a. Returns an error
// if the matrix is singular to working precision.
func Inv(a []float64, n int) ([]float64, error) {
	if n == 0 {
		return []float64{}, nil
	}

	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(n, n, a)); err != nil {
		return nil, errors.Wrap(err, "kernel: matrix inversion")
	}

	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = inv.At(i, j)
		}
	}
	return out, nil
}
