// Package kernel executes the structural kernel variants of the batched
// linear feedback solver.
//
// Four variants exist, one per recognized layout of the coefficient matrix:
//
//   - CompactDiagonal: 1×1 matrix, one shared coefficient, uncoupled elements
//   - GeneralDiagonal: W×W matrix read on the diagonal only, uncoupled
//   - CompactSkew: 2×2 matrix, four shared coefficients, elements advanced
//     in pairs (i, i+W/2)
//   - GeneralSkew: W×W matrix, per-pair coefficient blocks
//
// Every unit of parallel work owns one element (diagonal variants) or one
// pair (skew variants) for the full step loop, so no synchronization is
// needed between units. The WaitGroup join at the end of a run is the only
// barrier; the call returns to the caller only after all elements have
// completed all steps.
package kernel
