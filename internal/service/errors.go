package service

import "errors"

// ErrValidation marks input the caller must fix. Errors wrapping it carry
// a human-readable detail after the colon.
var ErrValidation = errors.New("validation failed")

// ErrProvider wraps failures of the external payment provider.
var ErrProvider = errors.New("payment provider error")
