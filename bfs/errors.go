package bfs

import "errors"

var (
	// ErrInvalidArgument is returned for a source vertex outside the graph or
	// a plan with out of range values. Nothing has been written to the labels.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnrecognizedAlgorithm is returned when a plan names no known algorithm.
	ErrUnrecognizedAlgorithm = errors.New("unrecognized algorithm")

	// ErrAssertionFailed is returned when a labeling is not a legal hop-distance labeling.
	ErrAssertionFailed = errors.New("assertion failed")
)
