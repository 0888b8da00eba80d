// SPDX-License-Identifier: MIT

// Package matrix: converters between Matrix and gonum's *mat.Dense.
package matrix

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

// gonumView returns a gonum view of m. For *Dense the backing slice is shared
// (callers must treat the view as read-only); other implementations are copied
// element by element through At.
func gonumView(m Matrix) (*mat.Dense, error) {
	if d, ok := m.(*Dense); ok {
		return mat.NewDense(d.r, d.c, d.data), nil
	}

	rows, cols := m.Rows(), m.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	buf := make([]float64, rows*cols)
	var i, j int
	var v float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			buf[i*cols+j] = v
		}
	}

	return mat.NewDense(rows, cols, buf), nil
}

// ToGonum returns an independent gonum copy of m.
// Errors: ErrNilMatrix.
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	g, err := gonumView(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	if _, shared := m.(*Dense); shared {
		return mat.DenseCopyOf(g), nil
	}

	return g, nil
}

// FromGonum copies any gonum matrix into a new Dense.
//
// Errors:
//   - ErrNilMatrix when g is nil or a typed nil pointer.
//   - ErrInvalidDimensions for an empty matrix.
//   - ErrNaNInf when the numeric policy is on and g holds NaN/±Inf.
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if isNilGonum(g) {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	rows, cols := g.Dims()
	res, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if err = res.Set(i, j, g.At(i, j)); err != nil {
				return nil, matrixErrorf(opFromGonum, err)
			}
		}
	}

	return res, nil
}

// isNilGonum reports whether g is a nil interface or holds a nil pointer.
func isNilGonum(g mat.Matrix) bool {
	if g == nil {
		return true
	}
	v := reflect.ValueOf(g)

	return v.Kind() == reflect.Ptr && v.IsNil()
}
