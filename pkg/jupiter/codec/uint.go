package codec

import "strconv"

// Uint64 is an unsigned integer rendered as a decimal string, as token amounts are.
type Uint64 uint64

func (u Uint64) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(u), 10), nil
}

func (u *Uint64) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return err
	}
	*u = Uint64(v)
	return nil
}
