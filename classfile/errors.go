package classfile

import (
	"errors"
	"fmt"
)

var (
	ErrUnknown                     = errors.New("unknown class file error")
	ErrInvalidMagicNumber          = errors.New("invalid magic number")
	ErrMajorVersionTooLow          = errors.New("major version too low")
	ErrMajorVersionTooHigh         = errors.New("major version too high")
	ErrInvalidMinorVersion         = errors.New("invalid minor version")
	ErrUnknownConstantPoolEntryTag = errors.New("unknown constant pool entry tag")
	ErrInvalidConstantPoolContent  = errors.New("invalid constant pool content")
	ErrUnexpectedConstantPoolType  = errors.New("unexpected constant pool entry type")
	ErrInvalidConstantPoolIndex    = errors.New("invalid constant pool index")
	ErrInvalidAccessFlags          = errors.New("invalid access flags")

	// ErrTruncated is reported when the input ends before a field that the
	// layout requires. It is not part of the format's error taxonomy: it
	// means the buffer is corrupt or incomplete, never that it is valid.
	ErrTruncated = errors.New("truncated class file")
)

// DecodeError records the byte offset at which decoding failed.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("classfile: offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErrorf(offset int, sentinel error, format string, args ...any) error {
	return &DecodeError{
		Offset: offset,
		Err:    fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel),
	}
}
