// SPDX-License-Identifier: MIT
// Package lu_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures for solver tests and benchmarks.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package lu_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lusolve/matrix"
	"github.com/stretchr/testify/require"
)

// mustFromRows builds a Dense from literal rows or fails the test.
func mustFromRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// randomDense returns an n×n matrix with entries uniform in [-1, 1).
// Small random matrices are invertible with probability 1, but may be poorly
// conditioned; use randomWellConditioned when accuracy is asserted.
func randomDense(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	m, err := matrix.NewDenseFrom(n, n, data)
	require.NoError(t, err)

	return m
}

// randomWellConditioned returns randomDense with n added on the diagonal
// (strict diagonal dominance), with the rows shuffled so that pivoting is
// still exercised.
func randomWellConditioned(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	m := randomDense(t, n, seed)
	raw := m.RawData()
	for i := 0; i < n; i++ {
		raw[i*n+i] += float64(n)
	}
	rng := rand.New(rand.NewSource(seed + 1))
	order := rng.Perm(n)
	shuffled := make([]float64, n*n)
	for i, src := range order {
		copy(shuffled[i*n:(i+1)*n], raw[src*n:(src+1)*n])
	}
	out, err := matrix.NewDenseFrom(n, n, shuffled)
	require.NoError(t, err)

	return out
}

// randomVec returns n values uniform in [-10, 10).
func randomVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()*20 - 10
	}

	return v
}

// requireSliceClose asserts |want[i]-got[i]| <= tol*max(1,|want[i]|) for all i.
func requireSliceClose(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		scale := math.Max(1, math.Abs(want[i]))
		require.InDeltaf(t, want[i], got[i], tol*scale, "index %d", i)
	}
}

// clone returns a copy of v.
func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
