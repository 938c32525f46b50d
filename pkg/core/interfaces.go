package core

import "errors"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")
