package ai

import "errors"

// ErrProvider indicates an embedding or generation provider call failed
// (network, quota, malformed response). The enclosing operation aborts;
// the whole operation is safe to retry by the caller.
var ErrProvider = errors.New("provider call failed")
