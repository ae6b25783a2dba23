package polynomial

import "errors"

// Sentinel errors returned by this package. Callers match them with
// errors.Is; returned errors wrap them with the offending detail.
var (
	// ErrInvalidArgument is returned by New for mismatched coefficient and
	// exponent slices or an exponent outside [0, MaxExponent].
	ErrInvalidArgument = errors.New("polynomial: invalid argument")

	// ErrParse is returned when text does not follow the line format.
	ErrParse = errors.New("polynomial: parse error")

	// ErrIO is returned when a polynomial file cannot be read or written.
	// The underlying *fs.PathError is wrapped as well.
	ErrIO = errors.New("polynomial: i/o error")
)
