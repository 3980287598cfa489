package pathfind

import "errors"

var (
	// ErrInvalidRequest is returned when start or goal lies outside the grid.
	ErrInvalidRequest = errors.New("pathfind: invalid request")
	// ErrNoPath is returned when the goal is not reachable from the start.
	ErrNoPath = errors.New("pathfind: no path")
	// ErrSearchLimit is returned when the expansion budget runs out.
	ErrSearchLimit = errors.New("pathfind: search limit reached")
)

// IsNoPath reports whether err is one of the "no route" outcomes.
func IsNoPath(err error) bool {
	return errors.Is(err, ErrNoPath) || errors.Is(err, ErrSearchLimit) || errors.Is(err, ErrInvalidRequest)
}
