// Package spaces models tensor index spaces: per-axis descriptors carrying a
// dimension and an orientation (a space or its dual), and ordered products of
// such descriptors describing a tensor's full shape.
//
// Pairing an index with its dual is what makes contraction and partial trace
// well-defined; the tensor engine checks every pairing against this model
// before touching numeric data.
package spaces
