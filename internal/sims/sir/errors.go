package sir

import "errors"

var (
	// ErrInvalidDimensions reports a non-positive grid width or height.
	ErrInvalidDimensions = errors.New("sir: grid dimensions must be positive")
	// ErrDimensionOverflow reports a width*height product that does not fit in an int.
	ErrDimensionOverflow = errors.New("sir: grid dimensions overflow")
	// ErrGridTooLarge reports a cell count above the configured ceiling.
	ErrGridTooLarge = errors.New("sir: grid exceeds maximum cell count")
	// ErrInvalidParams reports simulation parameters outside their valid ranges.
	ErrInvalidParams = errors.New("sir: invalid parameters")
	// ErrInvalidEncoding reports a 2-bit code that maps to no health state.
	ErrInvalidEncoding = errors.New("sir: invalid state encoding")
	// ErrInvalidConfig reports a non-positive tile size, worker count or cell ceiling.
	ErrInvalidConfig = errors.New("sir: invalid configuration")
	// ErrUnknownStrategy reports an unrecognised step strategy name.
	ErrUnknownStrategy = errors.New("sir: unknown step strategy")
)
