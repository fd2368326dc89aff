package clusterplay

import "errors"

var (
	ErrEmptySet        = errors.New("empty point set")
	ErrInvalidRange    = errors.New("invalid column range")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrWrongMode       = errors.New("operation not available in the current mode")
	ErrInvalidK        = errors.New("number of clusters cannot be less than 1")
	ErrZeroEpsilon     = errors.New("epsilon must be positive")
	ErrZeroMinpts      = errors.New("minPts cannot be less than 1")
)
