package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

type (
	pubkeyText     = Text[solana.PublicKey, *solana.PublicKey]
	optionalPubkey = Optional[solana.PublicKey, *solana.PublicKey]
)

func TestTextPublicKeyRoundTrip(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	data, err := json.Marshal(NewText(key))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"`+key.String()+`"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var decoded pubkeyText
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Value != key {
		t.Fatalf("expected %s, got %s", key, decoded.Value)
	}
}

func TestTextRejectsWrongWidthAddress(t *testing.T) {
	for name, width := range map[string]int{"short": 31, "long": 33} {
		t.Run(name, func(t *testing.T) {
			raw := make([]byte, width)
			for i := range raw {
				raw[i] = byte(i + 1)
			}
			text := base58.Encode(raw)

			var decoded pubkeyText
			err := json.Unmarshal([]byte(`"`+text+`"`), &decoded)

			var fieldErr *FieldParseError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldParseError, got %T %v", err, err)
			}
			if fieldErr.Text != text {
				t.Fatalf("expected offending text %q, got %q", text, fieldErr.Text)
			}
			if decoded.Value != (solana.PublicKey{}) {
				t.Fatalf("value assigned on failure: %s", decoded.Value)
			}
		})
	}
}

func TestTextRejectsInvalidAlphabet(t *testing.T) {
	var decoded pubkeyText
	err := json.Unmarshal([]byte(`"0OIl-not-base58"`), &decoded)

	var fieldErr *FieldParseError
	if !errors.As(err, &fieldErr) || fieldErr.Text != "0OIl-not-base58" {
		t.Fatalf("expected FieldParseError for bad alphabet, got %v", err)
	}
}

func TestTextRejectsNull(t *testing.T) {
	var decoded pubkeyText
	if err := json.Unmarshal([]byte(`null`), &decoded); !errors.Is(err, ErrNull) {
		t.Fatalf("expected ErrNull, got %v", err)
	}
}

func TestTextRejectsNonString(t *testing.T) {
	var decoded pubkeyText
	err := json.Unmarshal([]byte(`42`), &decoded)
	if err == nil {
		t.Fatalf("expected error for a number")
	}
	var fieldErr *FieldParseError
	if errors.As(err, &fieldErr) {
		t.Fatalf("a number is a shape error, got FieldParseError %v", err)
	}
}

func TestTextDecimalAndUint(t *testing.T) {
	var pct Text[decimal.Decimal, *decimal.Decimal]
	if err := json.Unmarshal([]byte(`"0.00125"`), &pct); err != nil {
		t.Fatalf("decimal: %v", err)
	}
	if !pct.Value.Equal(decimal.RequireFromString("0.00125")) {
		t.Fatalf("unexpected decimal %s", pct.Value)
	}

	var amount Text[Uint64, *Uint64]
	if err := json.Unmarshal([]byte(`"18446744073709551615"`), &amount); err != nil {
		t.Fatalf("uint: %v", err)
	}
	if amount.Value != Uint64(18446744073709551615) {
		t.Fatalf("unexpected amount %d", amount.Value)
	}

	data, err := json.Marshal(amount)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"18446744073709551615"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	err = json.Unmarshal([]byte(`"-1"`), &amount)
	var fieldErr *FieldParseError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldParseError for -1, got %v", err)
	}
	if amount.Value != Uint64(18446744073709551615) {
		t.Fatalf("failed parse touched the value: %d", amount.Value)
	}
}

func TestTextDecimalAcceptsNumber(t *testing.T) {
	var ratio Text[decimal.Decimal, *decimal.Decimal]
	if err := json.Unmarshal([]byte(`1.5`), &ratio); err != nil {
		t.Fatalf("numeric decimal: %v", err)
	}
	if !ratio.Value.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected decimal %s", ratio.Value)
	}

	var opt Optional[decimal.Decimal, *decimal.Decimal]
	if err := json.Unmarshal([]byte(`2`), &opt); err != nil || !opt.Valid || !opt.Value.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("numeric optional decimal: %v %+v", err, opt)
	}

	data, err := json.Marshal(ratio)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"1.5"` {
		t.Fatalf("decimals encode as strings, got %s", data)
	}
}

func TestOptionalAbsenceIsNotInvalidity(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	var holder struct {
		Fee optionalPubkey `json:"feeAccount"`
	}
	if err := json.Unmarshal([]byte(`{}`), &holder); err != nil {
		t.Fatalf("absent: %v", err)
	}
	if holder.Fee.Valid || holder.Fee.Ptr() != nil {
		t.Fatalf("absent field should be invalid")
	}

	if err := json.Unmarshal([]byte(`{"feeAccount":null}`), &holder); err != nil {
		t.Fatalf("null: %v", err)
	}
	if holder.Fee.Valid {
		t.Fatalf("null field should be invalid")
	}

	if err := json.Unmarshal([]byte(`{"feeAccount":"`+key.String()+`"}`), &holder); err != nil {
		t.Fatalf("present: %v", err)
	}
	if !holder.Fee.Valid || *holder.Fee.Ptr() != key {
		t.Fatalf("expected %s, got %+v", key, holder.Fee)
	}

	err := json.Unmarshal([]byte(`{"feeAccount":"bogus!"}`), &holder)
	var fieldErr *FieldParseError
	if !errors.As(err, &fieldErr) || fieldErr.Text != "bogus!" {
		t.Fatalf("expected FieldParseError for bogus!, got %v", err)
	}
}

func TestOptionalEncoding(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	data, err := json.Marshal(optionalPubkey{})
	if err != nil || string(data) != "null" {
		t.Fatalf("absent should encode as null, got %s %v", data, err)
	}

	data, err = json.Marshal(FromPtr(&key))
	if err != nil || string(data) != `"`+key.String()+`"` {
		t.Fatalf("unexpected encoding %s %v", data, err)
	}

	var omitted struct {
		Fee optionalPubkey `json:"feeAccount,omitzero"`
	}
	data, err = json.Marshal(omitted)
	if err != nil || string(data) != `{}` {
		t.Fatalf("omitzero should drop absent value, got %s %v", data, err)
	}
}

func TestBase64Scenario(t *testing.T) {
	var payload Base64
	if err := json.Unmarshal([]byte(`"AQID"`), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(payload, []byte{1, 2, 3}) {
		t.Fatalf("unexpected payload %v", payload)
	}

	data, err := json.Marshal(Base64{1, 2, 3})
	if err != nil || string(data) != `"AQID"` {
		t.Fatalf("unexpected encoding %s %v", data, err)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0},
		{0xff, 0xfe},
		[]byte("swap instruction data"),
	}
	for _, want := range payloads {
		got, err := DecodeBase64(EncodeBase64(want))
		if err != nil {
			t.Fatalf("decode %v: %v", want, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBase64Rejects(t *testing.T) {
	cases := map[string]string{
		"bad alphabet":   `"AQ!D"`,
		"url alphabet":   `"-_-_"`,
		"missing pad":    `"AQI"`,
		"bad length":     `"AQIDB"`,
		"embedded break": `"AQ\nID"`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var payload Base64
			err := json.Unmarshal([]byte(in), &payload)
			var b64Err *Base64DecodeError
			if !errors.As(err, &b64Err) {
				t.Fatalf("expected Base64DecodeError, got %T %v", err, err)
			}
		})
	}
}

func TestBase64NullAndEmpty(t *testing.T) {
	var payload Base64
	if err := json.Unmarshal([]byte(`null`), &payload); err != nil || payload != nil {
		t.Fatalf("null should leave payload nil, got %v %v", payload, err)
	}

	if err := json.Unmarshal([]byte(`""`), &payload); err != nil {
		t.Fatalf("empty: %v", err)
	}
	if payload == nil || len(payload) != 0 {
		t.Fatalf("empty string should decode to a non-nil empty payload, got %#v", payload)
	}
}
