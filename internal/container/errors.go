package container

import "errors"

// Domain errors for the container package.
//
//	if errors.Is(err, container.ErrNegativeCapacity) {
//	    // reject the form input
//	}
var (
	// ErrNegativeCapacity is returned by Registry.Create and Registry.Resize
	// when the requested capacity is negative or NaN.
	ErrNegativeCapacity = errors.New("container: capacity must not be negative")

	// ErrPersistence wraps failures of the attached Repository. The in-memory
	// change has already been applied when it is returned.
	ErrPersistence = errors.New("container: persistence failed")
)
