package grid

import "errors"

var (
	// ErrInvalidSize is returned by [New] when width or height is not positive.
	ErrInvalidSize = errors.New("grid: width and height must be positive")

	// ErrOutOfBounds is returned by edit operations addressing a cell outside
	// [0,width)×[0,height).
	ErrOutOfBounds = errors.New("grid: cell out of bounds")

	// ErrMarkerCell is returned by [Grid.ToggleObstacle] when the cell is the
	// current start or end marker.
	ErrMarkerCell = errors.New("grid: cell holds the start or end marker")
)
