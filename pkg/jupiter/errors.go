package jupiter

import (
	"errors"
	"fmt"
)

// RequestFailedError is returned when the service answers with a non-2xx status.
// Body is the raw response text, empty when it could not be read.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// DeserializationError wraps transport failures: the request could not be sent
// or the response byte stream could not be read.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize response: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// ParseError is returned when a response body is not valid JSON, does not match
// the expected shape, or a field codec rejects its value. Field level errors
// (codec.FieldParseError, codec.Base64DecodeError) stay reachable through errors.As.
type ParseError struct {
	Target string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Target, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ArgCollisionError is returned before any I/O when a passthrough key would
// overwrite a field already set from a typed argument.
type ArgCollisionError struct {
	Key string
}

func (e *ArgCollisionError) Error() string {
	return fmt.Sprintf("passthrough argument %q collides with a typed field", e.Key)
}

// IsRequestFailed reports whether the service rejected the request.
func IsRequestFailed(err error) bool {
	var target *RequestFailedError
	return errors.As(err, &target)
}

// IsResponseInvalid reports whether a response arrived but could not be understood.
func IsResponseInvalid(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
