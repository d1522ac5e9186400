// Package kernel is the numeric library behind the tensor engine. It works
// on raw row-major float64 buffers and validated index plans: N-dimensional
// permutation and accumulation, partial trace, generalized contraction, and
// the gonum-backed matrix factorizations (SVD, QR, eigendecomposition,
// inverse).
//
// The engine validates every plan against the space model before calling in;
// kernels therefore trust their arguments and panic on malformed plans
// instead of returning errors.
package kernel
