package codec

import (
	"errors"
	"fmt"
)

// ErrNull is reported when a field that must carry text holds JSON null.
var ErrNull = errors.New("unexpected null")

// FieldParseError reports a field whose text is not a valid rendering of its target type.
type FieldParseError struct {
	Text string
	Err  error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("parse field %q: %v", e.Text, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// Base64DecodeError reports a binary payload that is not valid standard base-64.
type Base64DecodeError struct {
	Err error
}

func (e *Base64DecodeError) Error() string {
	return fmt.Sprintf("base64 decoding error: %v", e.Err)
}

func (e *Base64DecodeError) Unwrap() error { return e.Err }
