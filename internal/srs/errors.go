package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	ErrInvalidGrade = errors.New("srs: invalid grade")
	ErrInvalidFlag  = errors.New("srs: invalid flag")
)
