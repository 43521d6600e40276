package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyKeywords    = fmt.Errorf("no keywords have been found")
	ErrInvalidThreshold = fmt.Errorf("summon threshold must be positive")
	ErrBlankMessage     = fmt.Errorf("user and text must not be blank")
)
