package analyzer

import "errors"

// Sentinel error kinds. Callers branch on them with errors.Is.
var (
	// ErrInvalidInput means the request was rejected before any external call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerate covers any fault reaching or returned by the model API.
	ErrGenerate = errors.New("generate content failed")
	// ErrDecode means the model replied but the reply is not a JSON object.
	ErrDecode = errors.New("decode model response failed")
)
