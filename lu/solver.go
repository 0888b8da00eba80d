// SPDX-License-Identifier: MIT
// Package lu - in-place LU factorization with partial pivoting and
// forward/backward substitution.
//
// Storage layout after Factorize (n×n, row-major, rows addressed through perm):
//
//	a[perm[i]*n + k], k <  i : L multiplier l(i,k)
//	a[perm[i]*n + k], k >= i : U entry u(i,k)
//
// Determinism:
//   - Fixed loop orders; pivot ties broken by the first strictly greater key.
//   - Repeated Solve calls on the same factorization are bit-identical to
//     solving each right-hand side on a freshly factorized copy.

package lu

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/katalvlaran/lusolve/matrix"
)

// Operation tags for uniform error wrapping.
const (
	opNew         = "New"
	opFactorize   = "Factorize"
	opSolve       = "Solve"
	opSolveTo     = "SolveTo"
	opSolveMatrix = "SolveMatrix"
	opDet         = "Det"
	opLogDet      = "LogDet"
	opInverse     = "Inverse"
	opResidual    = "Residual"
)

// luErrorf wraps err with an operation tag ("lu.Op: underlying").
func luErrorf(tag string, err error) error {
	return fmt.Errorf("lu.%s: %w", tag, err)
}

// Solver solves A x = b for a square dense A by LU factorization.
// The zero value is not usable; construct with New or NewFromCopy.
type Solver struct {
	a          *matrix.Dense // owned; overwritten by the factors
	n          int           // dimension
	perm       []int         // logical row -> physical row
	work       []float64     // substitution scratch, len n
	swaps      int           // row interchanges performed (determinant sign)
	factorized bool          // set once, after a successful Factorize
	failed     error         // sticky factorization failure
	opts       Options
}

// New creates a Solver that takes exclusive ownership of a.
// The caller must not read or write a afterwards: the first Solve or
// Factorize overwrites it with the combined L/U factors.
//
// Errors:
//   - matrix.ErrNilMatrix when a is nil.
//   - matrix.ErrNonSquare (also matches matrix.ErrDimensionMismatch).
//
// Complexity:
//   - Time O(1), Space O(n) for the permutation and scratch vector.
func New(a *matrix.Dense, opts ...Option) (*Solver, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, luErrorf(opNew, err)
	}
	n := a.Rows()

	return &Solver{
		a:    a,
		n:    n,
		perm: make([]int, n),
		work: make([]float64, n),
		opts: gatherOptions(opts...),
	}, nil
}

// NewFromCopy is New on a private clone of a; the caller keeps a intact.
// Complexity: O(n²) for the copy.
func NewFromCopy(a *matrix.Dense, opts ...Option) (*Solver, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, luErrorf(opNew, err)
	}

	return New(a.CloneDense(), opts...)
}

// Dim returns the system dimension n.
func (s *Solver) Dim() int { return s.n }

// Factorized reports whether the factorization has been computed.
func (s *Solver) Factorized() bool { return s.factorized }

// Permutation returns a copy of the row permutation (logical -> physical),
// or nil before a successful factorization.
func (s *Solver) Permutation() []int {
	if !s.factorized {
		return nil
	}

	return slices.Clone(s.perm)
}

// Factorize computes the in-place LU factorization of the owned matrix.
//
// Implementation:
//   - Stage 1: reset perm to identity; record the max magnitude of every
//     original row and column.
//   - Stage 2: for each column ii, scan perm[ii..n-1] for the best pivot under
//     the configured rule and swap it into perm[ii].
//   - Stage 3: reject a pivot with |p| <= Tolerance * min(rowScale, colScale),
//     both taken from the original A at the pivot's physical row and column.
//   - Stage 4: store multipliers a[perm[jj]][ii] and eliminate columns kk > ii.
//
// Behavior highlights:
//   - Idempotent: returns nil immediately once factorized.
//   - A failure is sticky; the matrix is left partially eliminated and every
//     later call returns the same error.
//
// Errors:
//   - ErrSingular (wrapped with the failing step and pivot value).
//
// Complexity:
//   - Time O(n³), Space O(n) for the row and column scales.
func (s *Solver) Factorize() error {
	if s.factorized {
		return nil
	}
	if s.failed != nil {
		return s.failed
	}

	start := time.Now()
	n := s.n
	a := s.a.RawData()

	var (
		ii, jj, kk   int
		best         int
		rowP, rowJ   int
		key, bestKey float64
		pivot, mult  float64
		threshold    float64
	)
	for ii = 0; ii < n; ii++ {
		s.perm[ii] = ii
	}
	s.swaps = 0
	rowScale, colScale := lineScales(a, n)

	for ii = 0; ii < n; ii++ {
		// Pivot search over the remaining logical rows.
		best = ii
		bestKey = s.pivotKey(a[s.perm[ii]*n+ii])
		for kk = ii + 1; kk < n; kk++ {
			key = s.pivotKey(a[s.perm[kk]*n+ii])
			if key > bestKey {
				bestKey = key
				best = kk
			}
		}
		if best != ii {
			s.perm[ii], s.perm[best] = s.perm[best], s.perm[ii]
			s.swaps++
		}

		rowP = s.perm[ii] * n
		pivot = a[rowP+ii]
		if s.opts.OnPivot != nil {
			s.opts.OnPivot(ii, s.perm[ii], pivot)
		}
		threshold = s.opts.Tolerance * math.Min(rowScale[s.perm[ii]], colScale[ii])
		// Negated comparison also rejects NaN.
		if !(math.Abs(pivot) > threshold) {
			s.failed = luErrorf(opFactorize, fmt.Errorf("step %d: pivot %g: %w", ii, pivot, ErrSingular))
			if s.opts.Logger != nil {
				s.opts.Logger.Warn("lu: singular pivot",
					"step", ii, "row", s.perm[ii], "pivot", pivot, "threshold", threshold)
			}
			return s.failed
		}

		// Eliminate below the pivot; multipliers replace the eliminated entries.
		for jj = ii + 1; jj < n; jj++ {
			rowJ = s.perm[jj] * n
			mult = a[rowJ+ii] / pivot
			a[rowJ+ii] = mult
			for kk = ii + 1; kk < n; kk++ {
				a[rowJ+kk] -= a[rowP+kk] * mult
			}
		}
	}

	s.factorized = true
	if s.opts.OnFactorized != nil {
		s.opts.OnFactorized(slices.Clone(s.perm))
	}
	if s.opts.Logger != nil {
		s.opts.Logger.Debug("lu: factorize",
			"n", n, "rule", s.opts.Rule.String(), "swaps", s.swaps, "elapsed", time.Since(start))
	}

	return nil
}

// pivotKey maps a candidate pivot to the value compared during the search.
func (s *Solver) pivotKey(v float64) float64 {
	if s.opts.Rule == PivotValue {
		return v
	}

	return math.Abs(v)
}

// Solve overwrites b with the solution x of A x = b, factorizing on first use.
// The solution is stored in natural order: b[i] = x[i].
//
// Errors:
//   - matrix.ErrNilMatrix (nil b), matrix.ErrDimensionMismatch (len(b) != n).
//   - ErrSingular from factorization.
//
// On error b is left unmodified.
//
// Complexity:
//   - O(n²) once factorized; O(n³) on the first call.
func (s *Solver) Solve(b []float64) error {
	if err := s.solveInto(opSolve, b, b); err != nil {
		return err
	}

	return nil
}

// SolveTo writes the solution of A x = b into dst, leaving b untouched.
// dst and b may be the same slice.
//
// Errors: as Solve, plus matrix.ErrDimensionMismatch for len(dst) != n.
func (s *Solver) SolveTo(dst, b []float64) error {
	if err := matrix.ValidateVecLen(dst, s.n); err != nil {
		return luErrorf(opSolveTo, err)
	}

	return s.solveInto(opSolveTo, dst, b)
}

// solveInto validates b, factorizes if needed, substitutes into s.work and
// copies the result to dst.
func (s *Solver) solveInto(op string, dst, b []float64) error {
	if err := matrix.ValidateVecLen(b, s.n); err != nil {
		return luErrorf(op, err)
	}
	reused := s.factorized
	if err := s.Factorize(); err != nil {
		return err
	}
	s.substitute(b)
	copy(dst, s.work)

	if s.opts.Logger != nil {
		s.opts.Logger.Debug("lu: solve", "n", s.n, "reused", reused)
	}

	return nil
}

// substitute solves L y = P b then U x = y into s.work. b is only read.
// Requires a successful factorization, which guarantees every U diagonal
// entry passed the singularity check.
func (s *Solver) substitute(b []float64) {
	n := s.n
	a := s.a.RawData()
	w := s.work

	var ii, kk, row int
	var f float64

	// Forward: unit-diagonal L, rows through perm.
	for ii = 0; ii < n; ii++ {
		row = s.perm[ii] * n
		f = b[s.perm[ii]]
		for kk = 0; kk < ii; kk++ {
			f -= a[row+kk] * w[kk]
		}
		w[ii] = f
	}

	// Backward: U, last logical row first.
	for ii = n - 1; ii >= 0; ii-- {
		row = s.perm[ii] * n
		f = w[ii]
		for kk = ii + 1; kk < n; kk++ {
			f -= a[row+kk] * w[kk]
		}
		w[ii] = f / a[row+ii]
	}
}

// SolveMatrix solves A X = B for every column of b in place.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (b.Rows() != n).
//   - ErrSingular, reported before any column of b is written.
//
// Complexity:
//   - O(n²·m) for m columns once factorized.
func (s *Solver) SolveMatrix(b *matrix.Dense) error {
	if err := matrix.ValidateNotNil(b); err != nil {
		return luErrorf(opSolveMatrix, err)
	}
	if b.Rows() != s.n {
		return luErrorf(opSolveMatrix, fmt.Errorf("rhs has %d rows, want %d: %w", b.Rows(), s.n, matrix.ErrDimensionMismatch))
	}
	if err := s.Factorize(); err != nil {
		return err
	}

	var col []float64
	var err error
	var i, j int
	cols := b.Cols()
	raw := b.RawData()
	for j = 0; j < cols; j++ {
		if col, err = b.Col(j); err != nil {
			return luErrorf(opSolveMatrix, err)
		}
		s.substitute(col)
		for i = 0; i < s.n; i++ {
			raw[i*cols+j] = s.work[i]
		}
	}

	return nil
}

// Det returns det(A) = sign(perm) * Π U[i][i], factorizing on first use.
// A singular A yields (0, ErrSingular).
//
// The plain product overflows to ±Inf or underflows to 0 for large or badly
// scaled systems; use LogDet there.
//
// Complexity: O(n) once factorized.
func (s *Solver) Det() (float64, error) {
	if err := s.Factorize(); err != nil {
		return 0, luErrorf(opDet, err)
	}
	a := s.a.RawData()
	det := 1.0
	for i := 0; i < s.n; i++ {
		det *= a[s.perm[i]*s.n+i]
	}
	if s.swaps%2 == 1 {
		det = -det
	}

	return det, nil
}

// Inverse returns A⁻¹ as a new n×n Dense.
//
// Implementation:
//   - Stage 1: factorize (cached).
//   - Stage 2: for each unit vector eⱼ, substitute and write x into column j.
//
// Errors:
//   - ErrSingular.
//
// Complexity: O(n³) time, O(n²) memory.
func (s *Solver) Inverse() (*matrix.Dense, error) {
	if err := s.Factorize(); err != nil {
		return nil, luErrorf(opInverse, err)
	}
	inv, err := matrix.NewDense(s.n, s.n, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, luErrorf(opInverse, err)
	}
	e := make([]float64, s.n)
	for j := 0; j < s.n; j++ {
		e[j] = 1
		s.substitute(e)
		e[j] = 0
		if err = inv.SetCol(j, s.work); err != nil {
			return nil, luErrorf(opInverse, err)
		}
	}

	return inv, nil
}

// LogDet returns log|det(A)| and the sign of det(A) (±1), factorizing on
// first use. det(A) == sign * exp(logAbs), without the overflow of Det.
// A singular A yields (math.Inf(-1), 0, ErrSingular).
// Complexity: O(n) once factorized.
func (s *Solver) LogDet() (logAbs, sign float64, err error) {
	if err = s.Factorize(); err != nil {
		return math.Inf(-1), 0, luErrorf(opLogDet, err)
	}
	a := s.a.RawData()
	sign = 1
	if s.swaps%2 == 1 {
		sign = -1
	}
	var u float64
	for i := 0; i < s.n; i++ {
		u = a[s.perm[i]*s.n+i]
		if u < 0 {
			sign = -sign
		}
		logAbs += math.Log(math.Abs(u))
	}

	return logAbs, sign, nil
}

// lineScales returns the max magnitude of every row and column of the n×n
// row-major data.
func lineScales(data []float64, n int) (rows, cols []float64) {
	rows = make([]float64, n)
	cols = make([]float64, n)
	var i, j int
	var av float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			av = math.Abs(data[i*n+j])
			if av > rows[i] {
				rows[i] = av
			}
			if av > cols[j] {
				cols[j] = av
			}
		}
	}

	return rows, cols
}
