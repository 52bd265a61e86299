package jupiter

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// SwapMode selects which side of the swap the amount fixes.
type SwapMode string

const (
	SwapModeExactIn  SwapMode = "ExactIn"
	SwapModeExactOut SwapMode = "ExactOut"
)

// QuoteRequest holds the typed /quote parameters. Nil or empty optional fields
// are left to the service default. QuoteArgs is forwarded verbatim; a key that
// is also set by a typed field is rejected.
type QuoteRequest struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	// Amount in the smallest unit of the mint fixed by SwapMode.
	Amount      uint64
	SwapMode    SwapMode
	SlippageBps uint16

	AutoSlippage                  *bool
	MaxAutoSlippageBps            *uint16
	ComputeAutoSlippage           *bool
	AutoSlippageCollisionUsdValue *uint32
	PlatformFeeBps                *uint8
	Dexes                         []string
	ExcludeDexes                  []string
	OnlyDirectRoutes              *bool
	AsLegacyTransaction           *bool
	RestrictIntermediateTokens    *bool
	MaxAccounts                   *int
	MinimizeSlippage              *bool
	PreferLiquidDexes             *bool

	QuoteArgs map[string]string
}

// Values flattens the request into query parameters.
func (r *QuoteRequest) Values() (url.Values, error) {
	q := url.Values{}
	q.Set("inputMint", r.InputMint.String())
	q.Set("outputMint", r.OutputMint.String())
	q.Set("amount", strconv.FormatUint(r.Amount, 10))
	if r.SwapMode != "" {
		q.Set("swapMode", string(r.SwapMode))
	}
	q.Set("slippageBps", strconv.FormatUint(uint64(r.SlippageBps), 10))

	setBool(q, "autoSlippage", r.AutoSlippage)
	if r.MaxAutoSlippageBps != nil {
		q.Set("maxAutoSlippageBps", strconv.FormatUint(uint64(*r.MaxAutoSlippageBps), 10))
	}
	setBool(q, "computeAutoSlippage", r.ComputeAutoSlippage)
	if r.AutoSlippageCollisionUsdValue != nil {
		q.Set("autoSlippageCollisionUsdValue", strconv.FormatUint(uint64(*r.AutoSlippageCollisionUsdValue), 10))
	}
	if r.PlatformFeeBps != nil {
		q.Set("platformFeeBps", strconv.FormatUint(uint64(*r.PlatformFeeBps), 10))
	}
	if len(r.Dexes) > 0 {
		q.Set("dexes", strings.Join(r.Dexes, ","))
	}
	if len(r.ExcludeDexes) > 0 {
		q.Set("excludeDexes", strings.Join(r.ExcludeDexes, ","))
	}
	setBool(q, "onlyDirectRoutes", r.OnlyDirectRoutes)
	setBool(q, "asLegacyTransaction", r.AsLegacyTransaction)
	setBool(q, "restrictIntermediateTokens", r.RestrictIntermediateTokens)
	if r.MaxAccounts != nil {
		q.Set("maxAccounts", strconv.Itoa(*r.MaxAccounts))
	}
	setBool(q, "minimizeSlippage", r.MinimizeSlippage)
	setBool(q, "preferLiquidDexes", r.PreferLiquidDexes)

	if err := mergeArgs(q, r.QuoteArgs); err != nil {
		return nil, err
	}
	return q, nil
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

// mergeArgs adds passthrough args to q, refusing keys q already holds.
func mergeArgs(q url.Values, args map[string]string) error {
	for _, k := range sortedKeys(args) {
		if q.Has(k) {
			return &ArgCollisionError{Key: k}
		}
		q.Set(k, args[k])
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// QuoteResponse is the route the service priced. It is sent back unchanged
// inside SwapRequest, so it encodes to the same wire shape it decodes from.
type QuoteResponse struct {
	InputMint                   solana.PublicKey
	InAmount                    uint64
	OutputMint                  solana.PublicKey
	OutAmount                   uint64
	OtherAmountThreshold        uint64
	SwapMode                    SwapMode
	SlippageBps                 uint16
	ComputedAutoSlippage        *uint64
	UsesQuoteMinimizingSlippage *bool
	PlatformFee                 *PlatformFee
	PriceImpactPct              decimal.Decimal
	RoutePlan                   []RoutePlanStep
	ContextSlot                 uint64
	TimeTaken                   float64
}

// PlatformFee is the integrator fee included in the quote.
type PlatformFee struct {
	Amount uint64
	FeeBps uint8
}

// RoutePlanStep is one leg of the route; Percent is the share of the input it carries.
type RoutePlanStep struct {
	SwapInfo SwapInfo
	Percent  uint8
}

// SwapInfo describes the pool a leg trades through and what it moves.
type SwapInfo struct {
	AmmKey     solana.PublicKey
	Label      string
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	InAmount   uint64
	OutAmount  uint64
	FeeAmount  uint64
	FeeMint    solana.PublicKey
}

type quoteResponseWire struct {
	InputMint                   *pubkeyText         `json:"inputMint" validate:"required"`
	InAmount                    *amountText         `json:"inAmount" validate:"required"`
	OutputMint                  *pubkeyText         `json:"outputMint" validate:"required"`
	OutAmount                   *amountText         `json:"outAmount" validate:"required"`
	OtherAmountThreshold        *amountText         `json:"otherAmountThreshold" validate:"required"`
	SwapMode                    *SwapMode           `json:"swapMode" validate:"required,oneof=ExactIn ExactOut"`
	SlippageBps                 *uint16             `json:"slippageBps" validate:"required"`
	ComputedAutoSlippage        optionalAmount      `json:"computedAutoSlippage,omitzero"`
	UsesQuoteMinimizingSlippage *bool               `json:"usesQuoteMinimizingSlippage,omitempty"`
	PlatformFee                 *platformFeeWire    `json:"platformFee"`
	PriceImpactPct              *decimalText        `json:"priceImpactPct" validate:"required"`
	RoutePlan                   []routePlanStepWire `json:"routePlan" validate:"required,dive"`
	ContextSlot                 uint64              `json:"contextSlot"`
	TimeTaken                   float64             `json:"timeTaken"`
}

type platformFeeWire struct {
	Amount *amountText `json:"amount" validate:"required"`
	FeeBps *uint8      `json:"feeBps" validate:"required"`
}

type routePlanStepWire struct {
	SwapInfo *swapInfoWire `json:"swapInfo" validate:"required"`
	Percent  *uint8        `json:"percent" validate:"required"`
}

type swapInfoWire struct {
	AmmKey     *pubkeyText `json:"ammKey" validate:"required"`
	Label      *string     `json:"label" validate:"required"`
	InputMint  *pubkeyText `json:"inputMint" validate:"required"`
	OutputMint *pubkeyText `json:"outputMint" validate:"required"`
	InAmount   *amountText `json:"inAmount" validate:"required"`
	OutAmount  *amountText `json:"outAmount" validate:"required"`
	FeeAmount  *amountText `json:"feeAmount" validate:"required"`
	FeeMint    *pubkeyText `json:"feeMint" validate:"required"`
}

func (w *quoteResponseWire) quoteResponse() QuoteResponse {
	q := QuoteResponse{
		InputMint:                   w.InputMint.Value,
		InAmount:                    uint64(w.InAmount.Value),
		OutputMint:                  w.OutputMint.Value,
		OutAmount:                   uint64(w.OutAmount.Value),
		OtherAmountThreshold:        uint64(w.OtherAmountThreshold.Value),
		SwapMode:                    *w.SwapMode,
		SlippageBps:                 *w.SlippageBps,
		ComputedAutoSlippage:        uint64Ptr(w.ComputedAutoSlippage),
		UsesQuoteMinimizingSlippage: w.UsesQuoteMinimizingSlippage,
		PriceImpactPct:              w.PriceImpactPct.Value,
		RoutePlan:                   make([]RoutePlanStep, len(w.RoutePlan)),
		ContextSlot:                 w.ContextSlot,
		TimeTaken:                   w.TimeTaken,
	}
	if w.PlatformFee != nil {
		q.PlatformFee = &PlatformFee{
			Amount: uint64(w.PlatformFee.Amount.Value),
			FeeBps: *w.PlatformFee.FeeBps,
		}
	}
	for i, step := range w.RoutePlan {
		info := step.SwapInfo
		q.RoutePlan[i] = RoutePlanStep{
			SwapInfo: SwapInfo{
				AmmKey:     info.AmmKey.Value,
				Label:      *info.Label,
				InputMint:  info.InputMint.Value,
				OutputMint: info.OutputMint.Value,
				InAmount:   uint64(info.InAmount.Value),
				OutAmount:  uint64(info.OutAmount.Value),
				FeeAmount:  uint64(info.FeeAmount.Value),
				FeeMint:    info.FeeMint.Value,
			},
			Percent: *step.Percent,
		}
	}
	return q
}

func (q *QuoteResponse) wire() *quoteResponseWire {
	w := &quoteResponseWire{
		InputMint:                   textOf(q.InputMint),
		InAmount:                    amountOf(q.InAmount),
		OutputMint:                  textOf(q.OutputMint),
		OutAmount:                   amountOf(q.OutAmount),
		OtherAmountThreshold:        amountOf(q.OtherAmountThreshold),
		SwapMode:                    Ptr(q.SwapMode),
		SlippageBps:                 Ptr(q.SlippageBps),
		ComputedAutoSlippage:        optionalAmountOf(q.ComputedAutoSlippage),
		UsesQuoteMinimizingSlippage: q.UsesQuoteMinimizingSlippage,
		PriceImpactPct:              textOf(q.PriceImpactPct),
		RoutePlan:                   make([]routePlanStepWire, len(q.RoutePlan)),
		ContextSlot:                 q.ContextSlot,
		TimeTaken:                   q.TimeTaken,
	}
	if q.PlatformFee != nil {
		w.PlatformFee = &platformFeeWire{
			Amount: amountOf(q.PlatformFee.Amount),
			FeeBps: Ptr(q.PlatformFee.FeeBps),
		}
	}
	for i, step := range q.RoutePlan {
		info := step.SwapInfo
		w.RoutePlan[i] = routePlanStepWire{
			SwapInfo: &swapInfoWire{
				AmmKey:     textOf(info.AmmKey),
				Label:      Ptr(info.Label),
				InputMint:  textOf(info.InputMint),
				OutputMint: textOf(info.OutputMint),
				InAmount:   amountOf(info.InAmount),
				OutAmount:  amountOf(info.OutAmount),
				FeeAmount:  amountOf(info.FeeAmount),
				FeeMint:    textOf(info.FeeMint),
			},
			Percent: Ptr(step.Percent),
		}
	}
	return w
}

func (q QuoteResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.wire())
}

// UnmarshalJSON decodes a quote previously returned by the service, for example one read back from storage.
func (q *QuoteResponse) UnmarshalJSON(data []byte) error {
	var w quoteResponseWire
	if err := unmarshalWire(data, &w); err != nil {
		return err
	}
	*q = w.quoteResponse()
	return nil
}
