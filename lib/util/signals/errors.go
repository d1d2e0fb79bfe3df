package signals

import "errors"

// ErrInterrupted is the cancellation cause set by NotifyContext.
var ErrInterrupted = errors.New("interrupted by signal")
