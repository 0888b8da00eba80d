// Package lu provides a dense linear solver built on in-place LU factorization
// with partial pivoting.
//
// Overview:
//
//   - A Solver takes exclusive ownership of a square *matrix.Dense A and, on the
//     first Solve, overwrites it with the combined factors: the strictly lower
//     part holds the multipliers of L (unit diagonal implied), the upper part
//     including the diagonal holds U.
//   - Row interchanges are never performed on storage. They are recorded in a
//     permutation: logical row i of the factored system lives in physical row
//     perm[i].
//   - Later Solve calls reuse the cached factorization, so k right-hand sides
//     cost one O(n³) factorization plus k O(n²) substitutions.
//   - The same factors back SolveTo, SolveMatrix (multi-RHS), Det and Inverse.
//
// Pivoting:
//
//   - PivotMagnitude (default) picks the candidate with the largest |A[i][k]|.
//   - PivotValue picks the largest raw value. It exists to reproduce legacy
//     results and is numerically weaker: a column of negative entries can
//     select a zero pivot and report ErrSingular for an invertible matrix.
//   - Ties go to the first row with a strictly greater key, so pivot decisions
//     are bit-reproducible.
//
// Singularity:
//
//	A pivot whose magnitude does not exceed Tolerance * min(rowScale, colScale)
//	fails with ErrSingular instead of producing Inf/NaN. rowScale and colScale
//	are the max magnitudes of the pivot's row and column in A before
//	elimination, so rows or columns in different units do not mask each
//	other. A zero row or column is singular.
//
// Error handling (sentinel errors, match with errors.Is):
//
//   - ErrSingular: zero or near-zero pivot.
//   - matrix.ErrNonSquare / matrix.ErrDimensionMismatch: shape violations.
//   - matrix.ErrNilMatrix: nil matrix or nil right-hand side.
//
// Concurrency:
//
//	A Solver is not safe for concurrent use. Share the input data, not the solver.
//
// Observability:
//
//	Off by default. WithLogger installs a *slog.Logger for Debug/Warn records;
//	WithOnPivot and WithOnFactorized install hooks.
//
// Complexity:
//
//   - Factorize: O(n³) time, O(n) extra space (permutation).
//   - Solve: O(n²) time, O(n) scratch reused across calls.
package lu
