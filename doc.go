// Package lusolve is a small dense linear-algebra kit: a row-major matrix
// container and an LU solver for square systems A x = b.
//
// Under the hood, everything is organized under two subpackages:
//
//	matrix/ — Dense container, validators, sentinel errors, options;
//	          Mul/Transpose delegated to gonum
//	lu/     — Solver: in-place LU with partial pivoting, cached factorization,
//	          forward/backward substitution, determinant, residual checks
//
// Quick example:
//
//	a, _ := matrix.FromRows([][]float64{{2, 1}, {1, 3}})
//	s, _ := lu.New(a)
//	b := []float64{3, 5}
//	_ = s.Solve(b) // b == [0.8 1.4]
//
// The solver targets square, dense systems small enough to factor in memory
// with O(n³) Gaussian elimination. Sparse storage, iterative methods and
// eigenvalue routines are out of scope.
//
//	go get github.com/katalvlaran/lusolve
package lusolve
