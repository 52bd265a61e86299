package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var errLineBreak = errors.New("illegal line break in input")

// Base64 is a raw byte payload carried as standard, padded base-64.
type Base64 []byte

func (b Base64) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

// UnmarshalJSON decodes the payload. JSON null leaves b nil so required checks
// can tell it apart from an empty payload, which decodes to a non-nil empty slice.
func (b *Base64) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*b = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := DecodeBase64(s)
	if err != nil {
		return err
	}
	*b = raw
	return nil
}

// DecodeBase64 decodes s with the standard alphabet and strict padding.
func DecodeBase64(s string) ([]byte, error) {
	// the stdlib decoder skips CR and LF; a wire payload never contains them
	if strings.ContainsAny(s, "\r\n") {
		return nil, &Base64DecodeError{Err: errLineBreak}
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, &Base64DecodeError{Err: err}
	}
	return raw, nil
}

// EncodeBase64 is the inverse of DecodeBase64.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
