package tagtree

import (
	"errors"
	"fmt"
)

// ErrTruncated is wrapped by a DecodingError when the stream ends before a
// tag, length prefix or payload has been fully read.
var ErrTruncated = errors.New("unexpected end of data")

// EncodingError reports a value that cannot be represented in its length
// prefix, or a tree that contains a nil value.
type EncodingError struct {
	Key    string
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Key == "" {
		return "tagtree: encode: " + e.Reason
	}
	return fmt.Sprintf("tagtree: encode %.64q: %s", e.Key, e.Reason)
}

// DecodingError reports a malformed or truncated byte stream.
type DecodingError struct {
	Offset int
	Reason string
	Err    error
}

func (e *DecodingError) Error() string {
	msg := fmt.Sprintf("tagtree: decode at offset %d: %s", e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodingError) Unwrap() error { return e.Err }
