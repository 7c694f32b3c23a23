package orrery

import "errors"

var (
	// ErrInvalidElements is returned when Keplerian elements fall outside a>0, 0≤e<1.
	ErrInvalidElements = errors.New("invalid keplerian elements")
	// ErrUnknownBody is returned when a catalog lookup fails.
	ErrUnknownBody = errors.New("unknown body")
	// ErrUnknownClassification is returned when a classification string cannot be parsed.
	ErrUnknownClassification = errors.New("unknown classification")
	// ErrUnknownResource is returned by a Scene asked to remove a resource it never received.
	ErrUnknownResource = errors.New("unknown orbit resource")
)
