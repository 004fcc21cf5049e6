package main

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedFormat = errors.New("unknown or unsupported SN format")
	ErrParse              = errors.New("could not parse SN")
	ErrUnknownEncoding    = errors.New("unknown encoding")
	ErrEncode             = errors.New("could not encode SN")
)

// SNError is returned for every rejected serial number. Kind is one of the
// sentinel errors above, Cause is the underlying failure if there is one.
type SNError struct {
	Kind  error
	Input []byte
	Cause error
}

func (e *SNError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("%v: %q: %v", e.Kind, e.Input, e.Cause)
}

func (e *SNError) Is(target error) bool {
	return e.Kind == target
}

func (e *SNError) Unwrap() error {
	return e.Cause
}

func unrecognized(sn []byte) error {
	return &SNError{Kind: ErrUnrecognizedFormat, Input: sn}
}
