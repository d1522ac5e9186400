package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Prod returns the product of dims; the empty product is 1.
func Prod(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// Strides returns row-major strides for dims.
func Strides(dims []int) []int {
	s := make([]int, len(dims))
	if len(dims) == 0 {
		return s
	}
	s[len(dims)-1] = 1
	for i := len(dims) - 2; i >= 0; i-- {
		s[i] = s[i+1] * dims[i+1]
	}
	return s
}

// odometer iterates a multi-index over dims in row-major order, calling fn
// with the flat offset computed from strides at every step.
//
// The counter construction mirrors a hand-coded nest of len(dims) loops with
// arbitrary depth.
func odometer(dims, strides []int, fn func(offset int)) {
	n := Prod(dims)
	if n == 0 {
		return
	}
	idx := make([]int, len(dims))
	offset := 0
	for count := 0; count < n; count++ {
		fn(offset)
		for ax := len(dims) - 1; ax >= 0; ax-- {
			idx[ax]++
			offset += strides[ax]
			if idx[ax] < dims[ax] {
				break
			}
			offset -= idx[ax] * strides[ax]
			idx[ax] = 0
		}
	}
}

// permutedSrcStrides returns, for each destination axis i, the stride of the
// source axis perm[i], so that walking destination indices in row-major order
// accumulates the matching source offset.
func permutedSrcStrides(srcDims, perm []int) (dstDims, srcStrides []int) {
	src := Strides(srcDims)
	dstDims = make([]int, len(perm))
	srcStrides = make([]int, len(perm))
	for i, p := range perm {
		dstDims[i] = srcDims[p]
		srcStrides[i] = src[p]
	}
	return dstDims, srcStrides
}

// Permute copies src (shape dims) into dst such that destination axis i runs
// over source axis perm[i]. dst must have length Prod(dims).
func Permute(dst, src []float64, dims, perm []int) {
	dstDims, srcStrides := permutedSrcStrides(dims, perm)
	if len(dst) != Prod(dstDims) {
		panic(fmt.Sprintf("kernel: permute destination has %d elements, want %d", len(dst), Prod(dstDims)))
	}
	i := 0
	odometer(dstDims, srcStrides, func(srcOff int) {
		dst[i] = src[srcOff]
		i++
	})
}

// PermuteAcc computes dst = beta*dst + alpha*perm(src), with destination axis
// i running over source axis perm[i]. With beta == 0 the destination is
// overwritten so prior NaN contents cannot leak through.
func PermuteAcc(alpha float64, src []float64, dims, perm []int, beta float64, dst []float64) {
	dstDims, srcStrides := permutedSrcStrides(dims, perm)
	if len(dst) != Prod(dstDims) {
		panic(fmt.Sprintf("kernel: permute destination has %d elements, want %d", len(dst), Prod(dstDims)))
	}
	i := 0
	if beta == 0 {
		odometer(dstDims, srcStrides, func(srcOff int) {
			dst[i] = alpha * src[srcOff]
			i++
		})
		return
	}
	odometer(dstDims, srcStrides, func(srcOff int) {
		dst[i] = beta*dst[i] + alpha*src[srcOff]
		i++
	})
}

// TraceAcc computes dst = beta*dst + alpha*tr(src): destination axis i runs
// over source axis open[i], while every pair (first[k], second[k]) of source
// axes is summed along its diagonal. Paired axes must have equal dimensions.
func TraceAcc(alpha float64, src []float64, dims []int, open, first, second []int, beta float64, dst []float64) {
	srcStrides := Strides(dims)

	dstDims := make([]int, len(open))
	openStrides := make([]int, len(open))
	for i, ax := range open {
		dstDims[i] = dims[ax]
		openStrides[i] = srcStrides[ax]
	}

	trDims := make([]int, len(first))
	trStrides := make([]int, len(first))
	for k := range first {
		if dims[first[k]] != dims[second[k]] {
			panic(fmt.Sprintf("kernel: traced axes %d and %d have dimensions %d and %d",
				first[k], second[k], dims[first[k]], dims[second[k]]))
		}
		trDims[k] = dims[first[k]]
		trStrides[k] = srcStrides[first[k]] + srcStrides[second[k]]
	}

	if len(dst) != Prod(dstDims) {
		panic(fmt.Sprintf("kernel: trace destination has %d elements, want %d", len(dst), Prod(dstDims)))
	}

	i := 0
	odometer(dstDims, openStrides, func(base int) {
		var sum float64
		odometer(trDims, trStrides, func(diag int) {
			sum += src[base+diag]
		})
		if beta == 0 {
			dst[i] = alpha * sum
		} else {
			dst[i] = beta*dst[i] + alpha*sum
		}
		i++
	})
}

// ContractArgs is a fully resolved contraction plan.
//
// PermA brings A into (open..., contracted...) axis order and PermB brings B
// into (contracted..., open...) order, so the pairwise product is a plain
// (M×K)·(K×N) matrix multiply. PermC maps the product axes, ordered as
// (open-A..., open-B...), onto the destination axes: destination axis i runs
// over product axis PermC[i].
type ContractArgs struct {
	Alpha, Beta float64

	A     []float64
	DimsA []int
	PermA []int

	B     []float64
	DimsB []int
	PermB []int

	M, K, N int

	C     []float64
	DimsC []int
	PermC []int
}

// Contract computes C = Beta*C + Alpha*contract(A, B) for a resolved plan,
// using permute-multiply-permute: both operands are permuted into matrix
// layout, multiplied with gonum's GEMM, and the product is permute-accumulated
// into the destination.
func Contract(args ContractArgs) {
	ta := make([]float64, Prod(args.DimsA))
	Permute(ta, args.A, args.DimsA, args.PermA)

	tb := make([]float64, Prod(args.DimsB))
	Permute(tb, args.B, args.DimsB, args.PermB)

	prod := make([]float64, args.M*args.N)
	if args.K == 0 {
		// Empty contracted dimension: the product is identically zero.
	} else if args.M > 0 && args.N > 0 {
		pm := mat.NewDense(args.M, args.N, prod)
		pm.Mul(mat.NewDense(args.M, args.K, ta), mat.NewDense(args.K, args.N, tb))
	}

	// PermC is a bijection from destination axes onto the product axes, so
	// the product shape is recovered by inverting it.
	prodDims := make([]int, len(args.DimsC))
	for i, p := range args.PermC {
		prodDims[p] = args.DimsC[i]
	}

	PermuteAcc(args.Alpha, prod, prodDims, args.PermC, args.Beta, args.C)
}
