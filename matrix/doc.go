// Package matrix provides the dense matrix container used by the lu solver.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set, shape
//     queries and raw contiguous storage access (RawData).
//   - Canonical validators (ValidateNotNil, ValidateSquare, ValidateVecLen,
//     ValidateMulCompatible) returning package sentinels.
//   - Mul and Transpose, delegated to gonum's mat.Dense, and MatVec for
//     residual checks.
//   - ToGonum / FromGonum converters for interop with gonum.
//
// Errors are package sentinels (errors.go); match them with errors.Is.
// Configuration uses functional options (options.go).
package matrix
