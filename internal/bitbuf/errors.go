package bitbuf

import "fmt"

// BitBufError is a custom error type for accumulator errors
type BitBufError string

// Error implements the error interface
func (e BitBufError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        BitBufError = "config cannot be nil"
	ErrNilSink          BitBufError = "sink cannot be nil"
	ErrInvalidWordWidth BitBufError = "word width must be one of 8, 16, 32 or 64"
	ErrInvalidCapacity  BitBufError = "capacity must be at least one word"
	ErrInvalidWidth     BitBufError = "append width exceeds word width"
	ErrOverflow         BitBufError = "append on a full buffer"
	ErrShortWrite       BitBufError = "sink accepted fewer bytes than requested"
)

// WriteError is returned by Flush when the sink did not accept every byte.
// The undelivered bytes are discarded.
type WriteError struct {
	// Written is the number of bytes the sink accepted
	Written int

	// Requested is the number of bytes handed to the sink
	Requested int

	// Err is the error reported by the sink, if any
	Err error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("only %d of %d bytes written: %v", e.Written, e.Requested, e.Err)
	}
	return fmt.Sprintf("only %d of %d bytes written", e.Written, e.Requested)
}

// Unwrap returns the sink error
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports ErrShortWrite so callers can branch with errors.Is
func (e *WriteError) Is(target error) bool {
	return target == ErrShortWrite
}
