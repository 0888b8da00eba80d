// SPDX-License-Identifier: MIT

package lu

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lusolve/matrix"
)

// Residual returns max_i |(A x)_i - b_i| for a candidate solution x.
// a must be the original (unfactorized) matrix.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//
// Complexity: O(r*c).
func Residual(a matrix.Matrix, x, b []float64) (float64, error) {
	ax, err := matrix.MatVec(a, x)
	if err != nil {
		return 0, luErrorf(opResidual, err)
	}
	if err = matrix.ValidateVecLen(b, len(ax)); err != nil {
		return 0, luErrorf(opResidual, fmt.Errorf("b: %w", err))
	}
	var worst float64
	for i := range ax {
		if d := math.Abs(ax[i] - b[i]); d > worst {
			worst = d
		}
	}

	return worst, nil
}

// ValidPermutation reports whether p is a bijection on {0..len(p)-1}.
// Complexity: O(n) time and space.
func ValidPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}

	return true
}
