// SPDX-License-Identifier: MIT
// Package matrix provides the few whole-matrix operations the solver stack
// needs: matrix multiplication and transpose (delegated to gonum's dense
// kernels) and a matrix-vector product used for residual checks.
//
// Notes:
//   - All operations validate through validators.go and wrap failures with
//     matrixErrorf so errors read "Op: underlying" and still match errors.Is.
//   - Results are freshly allocated Dense values; operands are never mutated.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: view both operands as gonum *mat.Dense (no copy for *Dense).
//   - Stage 3: let gonum write the product straight into the result buffer.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c) (BLAS dgemm), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.Rows(), b.Cols(), WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ga, err := gonumView(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	gb, err := gonumView(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// res.data is fresh, so the receiver never aliases an operand.
	dst := mat.NewDense(res.r, res.c, res.data)
	dst.Mul(ga, gb)
	res.validateNaNInf = policyOf(a)

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The copy is performed by gonum from the transposed view of m.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	g, err := gonumView(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dst := mat.NewDense(cols, rows, res.data)
	dst.Copy(g.T())
	res.validateNaNInf = policyOf(m)

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order, so repeated calls are bit-identical.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// policyOf returns the numeric policy of m when it is a *Dense, else the default.
func policyOf(m Matrix) bool {
	if d, ok := m.(*Dense); ok {
		return d.validateNaNInf
	}

	return DefaultValidateNaNInf
}
