package codec

import "encoding/json"

// Optional is Text that tolerates absence. A missing field or JSON null leaves
// it invalid; a present string that fails to parse is still a FieldParseError.
type Optional[T any, P TextValue[T]] struct {
	Value T
	Valid bool
}

// Some returns a valid Optional holding v.
func Some[T any, P TextValue[T]](v T) Optional[T, P] {
	return Optional[T, P]{Value: v, Valid: true}
}

// FromPtr returns an Optional that is valid when p is non-nil.
func FromPtr[T any, P TextValue[T]](p *T) Optional[T, P] {
	if p == nil {
		return Optional[T, P]{}
	}
	return Some[T, P](*p)
}

// Ptr returns a copy of the value, or nil when absent.
func (o Optional[T, P]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// IsZero lets `omitzero` drop absent values when encoding.
func (o Optional[T, P]) IsZero() bool { return !o.Valid }

func (o Optional[T, P]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return Text[T, P]{Value: o.Value}.MarshalJSON()
}

func (o *Optional[T, P]) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*o = Optional[T, P]{}
		return nil
	}
	v, err := parseText[T, P](data)
	if err != nil {
		return err
	}
	*o = Optional[T, P]{Value: v, Valid: true}
	return nil
}

var (
	_ json.Marshaler   = Optional[Uint64, *Uint64]{}
	_ json.Unmarshaler = (*Optional[Uint64, *Uint64])(nil)
)
