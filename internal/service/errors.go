package service

import "errors"

// Per-record failures. Each is recovered at the record boundary: the record is
// rejected, logged, and the run continues.
var (
	ErrExtraction    = errors.New("extraction failed")
	ErrDateParse     = errors.New("date parse failed")
	ErrDurationParse = errors.New("duration parse failed")
	ErrSubmission    = errors.New("submission failed")
)

// ErrInputUnreadable aborts the whole run: the input file is missing or its
// container format cannot be read.
var ErrInputUnreadable = errors.New("input unreadable")
