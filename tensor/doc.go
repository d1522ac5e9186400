// Package tensor implements a dense tensor algebra engine whose axes carry
// explicit index spaces (see package spaces). Symbolic axis labels let
// callers express copy, scaled accumulation, partial trace and contraction
// declaratively; every operation validates space compatibility of all paired
// axes before any numeric work, so wrong contractions fail structurally.
//
// A space-consistent factorization engine (SVD with rank truncation,
// sign-fixed orthogonal decompositions, pseudo-inverse, eigendecomposition,
// inverse) bipartitions a tensor's axes into a matrix view and reconstructs
// factors with derived spaces.
//
// All operations validate first and mutate second: a failed call leaves
// every argument unchanged. The numeric kernels themselves (permutation,
// GEMM, SVD, QR, eigendecomposition, inversion) are delegated to gonum via
// an internal kernel layer.
package tensor
