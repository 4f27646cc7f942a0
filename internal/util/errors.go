package util

import "errors"

var (
	ErrResultNotFound   = errors.New("result not found")
	ErrListNotFound     = errors.New("list not found")
	ErrUnknownPaperCode = errors.New("unknown paper code")
	ErrEmptyQuestions   = errors.New("questions array is required")
)
