// Package routererr defines the error kinds spec.md §7 requires the core to
// surface, as sentinel values shared across pcbmodel, astar, backtrack, and
// proba. Callers discriminate with errors.Is; every wrapping site uses
// fmt.Errorf("%w: ...") exactly as the teacher's core/gridgraph packages do.
package routererr

import "errors"

var (
	// ErrInvalidInput marks a malformed Problem: a referenced pad that is
	// missing, a zero-area board, non-unique net colors, an out-of-range
	// layer specifier.
	ErrInvalidInput = errors.New("routererr: invalid input")

	// ErrUnroutable marks a single connection for which A* exhausted its
	// open set against the current obstacle bundle. It triggers
	// backtracking locally and is surfaced to the caller only if the
	// backtracking root itself fails.
	ErrUnroutable = errors.New("routererr: connection unroutable")

	// ErrStackExhausted marks a solve where backtracking popped the root
	// node with no alternative left to try.
	ErrStackExhausted = errors.New("routererr: no solution found")

	// ErrBudgetExceeded marks a configured upper bound (A* expansions,
	// probabilistic iterations, wall time) being hit.
	ErrBudgetExceeded = errors.New("routererr: budget exceeded")

	// ErrPreprocessUnroutable marks a connection that A* could not route
	// during the backtrack solver's ascending-length ordering pre-pass,
	// with only every other net's pads as obstacles. Under
	// routerconfig.AbortOnPreprocessFailure this aborts the whole solve;
	// under AllowExcludeOnPreprocessFailure it only excludes the
	// connection from the ordering.
	ErrPreprocessUnroutable = errors.New("routererr: connection unroutable in preprocessing pass")
)
