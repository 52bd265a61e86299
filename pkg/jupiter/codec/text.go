// Package codec bridges JSON strings and the binary or textual values the
// swap API carries in them: base58 addresses, base-64 payloads, decimal
// strings and integers rendered as text.
package codec

import (
	"bytes"
	"encoding"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TextValue is satisfied by *T when T renders to and parses from text.
type TextValue[T any] interface {
	*T
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// Text carries a value on the wire as a JSON string holding its canonical text.
type Text[T any, P TextValue[T]] struct {
	Value T
}

// NewText wraps v. The pointer type is inferred, so NewText(pubkey) is enough.
func NewText[T any, P TextValue[T]](v T) Text[T, P] {
	return Text[T, P]{Value: v}
}

func (t Text[T, P]) MarshalJSON() ([]byte, error) {
	text, err := P(&t.Value).MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON parses the string into T. Nothing is assigned unless the parse succeeds.
func (t *Text[T, P]) UnmarshalJSON(data []byte) error {
	v, err := parseText[T, P](data)
	if err != nil {
		return err
	}
	t.Value = v
	return nil
}

func parseText[T any, P TextValue[T]](data []byte) (T, error) {
	var v T
	if isNull(data) {
		return v, &FieldParseError{Text: "null", Err: ErrNull}
	}
	var s string
	if _, ok := any(v).(decimal.Decimal); ok && isNumber(data) {
		// decimals may also arrive as bare JSON numbers
		s = string(bytes.TrimSpace(data))
	} else if err := json.Unmarshal(data, &s); err != nil {
		return v, err
	}
	if err := P(&v).UnmarshalText([]byte(s)); err != nil {
		return v, &FieldParseError{Text: s, Err: err}
	}
	return v, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func isNumber(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9'))
}
