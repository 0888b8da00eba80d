// SPDX-License-Identifier: MIT

// Package lu defines the solver options, pivot rules and sentinel errors.
package lu

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	// ErrSingular is returned when a pivot or U diagonal entry does not exceed
	// the singularity threshold during factorization.
	ErrSingular = errors.New("lu: singular matrix")
)

// PivotRule selects how the pivot row is chosen for each column.
type PivotRule int

const (
	// PivotMagnitude chooses the candidate with the largest absolute value.
	PivotMagnitude PivotRule = iota

	// PivotValue chooses the candidate with the largest raw value.
	PivotValue
)

// String implements fmt.Stringer.
func (r PivotRule) String() string {
	switch r {
	case PivotMagnitude:
		return "magnitude"
	case PivotValue:
		return "value"
	default:
		return fmt.Sprintf("PivotRule(%d)", int(r))
	}
}

// valid reports whether r is a known rule.
func (r PivotRule) valid() bool { return r == PivotMagnitude || r == PivotValue }

// Defaults.
const (
	// DefaultPivotRule is magnitude-based partial pivoting.
	DefaultPivotRule = PivotMagnitude

	// DefaultTolerance scales the pivot's row/column magnitude into the
	// singularity threshold.
	DefaultTolerance = 1e-12
)

const (
	panicToleranceInvalid = "lu: WithTolerance: tol must be finite, non-negative"
	panicPivotRuleInvalid = "lu: WithPivotRule: unknown pivot rule"
)

// Option configures a Solver. Use with New(a, opts...).
type Option func(*Options)

// Options holds the effective Solver configuration.
type Options struct {
	// Rule selects the pivot row per column. Default PivotMagnitude.
	Rule PivotRule

	// Tolerance is relative to the original scale of the pivot's row and
	// column; a pivot with |p| <= Tolerance*min(rowScale, colScale) is
	// treated as zero. Default DefaultTolerance. Zero rejects exact zeros only.
	Tolerance float64

	// Logger, if non-nil, receives Debug records for factorize/solve and a Warn
	// record on singular detection. Default nil (silent).
	Logger *slog.Logger

	// OnPivot, if non-nil, is invoked after the pivot for column step has been
	// chosen, with the physical row it lives in and its value.
	OnPivot func(step, row int, pivot float64)

	// OnFactorized, if non-nil, is invoked once after a successful
	// factorization with a copy of the final permutation.
	OnFactorized func(perm []int)
}

// DefaultOptions returns Options with:
//   - magnitude pivoting
//   - DefaultTolerance
//   - no logger and no hooks
func DefaultOptions() Options {
	return Options{
		Rule:      DefaultPivotRule,
		Tolerance: DefaultTolerance,
	}
}

// WithPivotRule selects the pivot rule. Panics on an unknown rule.
func WithPivotRule(rule PivotRule) Option {
	if !rule.valid() {
		panic(panicPivotRuleInvalid)
	}

	return func(o *Options) { o.Rule = rule }
}

// WithTolerance sets the relative singularity tolerance.
// Panics when tol is negative, NaN or ±Inf.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithLogger installs a structured logger. Passing nil keeps logging off.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnPivot installs fn as the per-column pivot hook.
func WithOnPivot(fn func(step, row int, pivot float64)) Option {
	return func(o *Options) { o.OnPivot = fn }
}

// WithOnFactorized installs fn as the post-factorization hook.
func WithOnFactorized(fn func(perm []int)) Option {
	return func(o *Options) { o.OnFactorized = fn }
}

// gatherOptions applies opts over DefaultOptions; nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
