package config

import "errors"

// ErrMissingVariable indicates a required setting is absent or empty after all sources were applied.
var ErrMissingVariable = errors.New("missing required environment variable")
