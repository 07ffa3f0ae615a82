package engine

import "errors"

var (
	// ErrNoResults signals that matching found no posting data for a query.
	ErrNoResults = errors.New("no results available")
	// ErrCountUnavailable signals an exact-count request without a result set.
	ErrCountUnavailable = errors.New("exact result count unavailable")
	// ErrEngineLoad signals that an engine driver failed to initialize.
	ErrEngineLoad = errors.New("engine failed to load")
	// ErrUnknownDriver signals a driver name with no registered opener.
	ErrUnknownDriver = errors.New("unknown engine driver")
	// ErrUnknownModel signals an unrecognized matching or weighting model name.
	ErrUnknownModel = errors.New("unknown model")
)
