package jupiter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter/codec"
)

// Wire shapes of the binary and textual values carried in response bodies.
type (
	pubkeyText      = codec.Text[solana.PublicKey, *solana.PublicKey]
	optionalPubkey  = codec.Optional[solana.PublicKey, *solana.PublicKey]
	amountText      = codec.Text[codec.Uint64, *codec.Uint64]
	optionalAmount  = codec.Optional[codec.Uint64, *codec.Uint64]
	decimalText     = codec.Text[decimal.Decimal, *decimal.Decimal]
	optionalDecimal = codec.Optional[decimal.Decimal, *decimal.Decimal]
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// unmarshalWire decodes data into the mirror w and enforces its required fields.
// Conversion from a mirror that passed here cannot fail.
func unmarshalWire(data []byte, w any) error {
	if err := json.Unmarshal(data, w); err != nil {
		return err
	}
	return validateWire(w)
}

func validateWire(w any) error {
	err := validate.Struct(w)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	// drop the mirror type name from the namespace
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	if fe.Tag() == "required" {
		return fmt.Errorf("missing required field %q", field)
	}
	return fmt.Errorf("field %q failed %q check", field, fe.Tag())
}

func textOf[T any, P codec.TextValue[T]](v T) *codec.Text[T, P] {
	return &codec.Text[T, P]{Value: v}
}

func amountOf(v uint64) *amountText {
	return textOf(codec.Uint64(v))
}

func optionalAmountOf(p *uint64) optionalAmount {
	if p == nil {
		return optionalAmount{}
	}
	return codec.Some(codec.Uint64(*p))
}

func uint64Ptr(o optionalAmount) *uint64 {
	if !o.Valid {
		return nil
	}
	v := uint64(o.Value)
	return &v
}

func pubkeys(ws []pubkeyText) []solana.PublicKey {
	out := make([]solana.PublicKey, len(ws))
	for i, w := range ws {
		out[i] = w.Value
	}
	return out
}

func pubkeyWires(keys []solana.PublicKey) []pubkeyText {
	out := make([]pubkeyText, len(keys))
	for i, k := range keys {
		out[i] = pubkeyText{Value: k}
	}
	return out
}

// Ptr returns a pointer to v, for filling optional request fields.
func Ptr[T any](v T) *T {
	return &v
}
