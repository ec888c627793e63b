package services

import "errors"

var (
	// ErrInvalidInput marks a malformed route: fewer than two points or a
	// non-positive resample interval.
	ErrInvalidInput = errors.New("invalid route input")

	// ErrLengthMismatch marks two segmentations of the same route whose
	// total distances disagree beyond tolerance. This is a caller bug, not
	// a recoverable condition.
	ErrLengthMismatch = errors.New("segmentation length mismatch")
)
