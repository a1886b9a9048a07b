package jobsec

import "errors"

// Sentinel errors returned by jobsec operations.
//
// Callers should use [errors.Is] to check error types.
var (
	// ErrConfig indicates the engine cannot run with the given resources.
	//
	// It is never returned after the module has been modified.
	ErrConfig = errors.New("config error")

	// ErrNoStrings indicates the decoy string pool is empty. Wraps [ErrConfig].
	ErrNoStrings = errors.New("no strings found")

	// ErrNoLabels indicates the label pool is empty. Wraps [ErrConfig].
	ErrNoLabels = errors.New("no labels found")

	// ErrUnknownPass indicates a pipeline names a pass that is not registered.
	ErrUnknownPass = errors.New("unknown pass")

	// ErrEmptyPipeline indicates a pipeline string names no passes.
	ErrEmptyPipeline = errors.New("empty pass pipeline")
)
