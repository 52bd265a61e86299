package jupiter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// TransactionConfig shapes the transaction the service builds. Every field is
// optional; unset fields are omitted so the service default applies. The fields
// sit at the top level of the swap request body, next to userPublicKey.
type TransactionConfig struct {
	WrapAndUnwrapSol                     *bool
	AllowOptimizedWrappedSolTokenAccount *bool
	FeeAccount                           *solana.PublicKey
	DestinationTokenAccount              *solana.PublicKey
	TrackingAccount                      *solana.PublicKey
	ComputeUnitPriceMicroLamports        *ComputeUnitPriceMicroLamports
	PrioritizationFeeLamports            *PrioritizationFeeLamports
	DynamicComputeUnitLimit              *bool
	AsLegacyTransaction                  *bool
	UseSharedAccounts                    *bool
	UseTokenLedger                       *bool
	SkipUserAccountsRpcCalls             *bool
	ProgramAuthorityID                   *uint8
	DynamicSlippage                      *DynamicSlippageSettings
	BlockhashSlotsToExpiry               *uint8
	CorrectLastValidBlockHeight          *bool
}

type transactionConfigWire struct {
	WrapAndUnwrapSol                     *bool                          `json:"wrapAndUnwrapSol,omitempty"`
	AllowOptimizedWrappedSolTokenAccount *bool                          `json:"allowOptimizedWrappedSolTokenAccount,omitempty"`
	FeeAccount                           optionalPubkey                 `json:"feeAccount,omitzero"`
	DestinationTokenAccount              optionalPubkey                 `json:"destinationTokenAccount,omitzero"`
	TrackingAccount                      optionalPubkey                 `json:"trackingAccount,omitzero"`
	ComputeUnitPriceMicroLamports        *ComputeUnitPriceMicroLamports `json:"computeUnitPriceMicroLamports,omitempty"`
	PrioritizationFeeLamports            *PrioritizationFeeLamports     `json:"prioritizationFeeLamports,omitempty"`
	DynamicComputeUnitLimit              *bool                          `json:"dynamicComputeUnitLimit,omitempty"`
	AsLegacyTransaction                  *bool                          `json:"asLegacyTransaction,omitempty"`
	UseSharedAccounts                    *bool                          `json:"useSharedAccounts,omitempty"`
	UseTokenLedger                       *bool                          `json:"useTokenLedger,omitempty"`
	SkipUserAccountsRpcCalls             *bool                          `json:"skipUserAccountsRpcCalls,omitempty"`
	ProgramAuthorityID                   *uint8                         `json:"programAuthorityId,omitempty"`
	DynamicSlippage                      *DynamicSlippageSettings       `json:"dynamicSlippage,omitempty"`
	BlockhashSlotsToExpiry               *uint8                         `json:"blockhashSlotsToExpiry,omitempty"`
	CorrectLastValidBlockHeight          *bool                          `json:"correctLastValidBlockHeight,omitempty"`
}

func (c *TransactionConfig) wire() transactionConfigWire {
	return transactionConfigWire{
		WrapAndUnwrapSol:                     c.WrapAndUnwrapSol,
		AllowOptimizedWrappedSolTokenAccount: c.AllowOptimizedWrappedSolTokenAccount,
		FeeAccount:                           optionalPubkeyOf(c.FeeAccount),
		DestinationTokenAccount:              optionalPubkeyOf(c.DestinationTokenAccount),
		TrackingAccount:                      optionalPubkeyOf(c.TrackingAccount),
		ComputeUnitPriceMicroLamports:        c.ComputeUnitPriceMicroLamports,
		PrioritizationFeeLamports:            c.PrioritizationFeeLamports,
		DynamicComputeUnitLimit:              c.DynamicComputeUnitLimit,
		AsLegacyTransaction:                  c.AsLegacyTransaction,
		UseSharedAccounts:                    c.UseSharedAccounts,
		UseTokenLedger:                       c.UseTokenLedger,
		SkipUserAccountsRpcCalls:             c.SkipUserAccountsRpcCalls,
		ProgramAuthorityID:                   c.ProgramAuthorityID,
		DynamicSlippage:                      c.DynamicSlippage,
		BlockhashSlotsToExpiry:               c.BlockhashSlotsToExpiry,
		CorrectLastValidBlockHeight:          c.CorrectLastValidBlockHeight,
	}
}

func optionalPubkeyOf(p *solana.PublicKey) optionalPubkey {
	if p == nil {
		return optionalPubkey{}
	}
	return optionalPubkey{Value: *p, Valid: true}
}

// ComputeUnitPriceMicroLamports is either a fixed price or "auto".
type ComputeUnitPriceMicroLamports struct {
	Auto          bool
	MicroLamports uint64
}

func (p ComputeUnitPriceMicroLamports) MarshalJSON() ([]byte, error) {
	if p.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(p.MicroLamports)
}

// PriorityLevel names a percentile of recent priority fees.
type PriorityLevel string

const (
	PriorityLevelMedium   PriorityLevel = "medium"
	PriorityLevelHigh     PriorityLevel = "high"
	PriorityLevelVeryHigh PriorityLevel = "veryHigh"
)

type PriorityLevelWithMaxLamports struct {
	PriorityLevel PriorityLevel `json:"priorityLevel"`
	MaxLamports   uint64        `json:"maxLamports"`
	Global        bool          `json:"global"`
}

// PrioritizationFeeLamports selects how the priority fee is chosen. Exactly one
// variant must be set.
type PrioritizationFeeLamports struct {
	Auto                         bool
	Lamports                     *uint64
	AutoMultiplier               *uint32
	JitoTipLamports              *uint64
	PriorityLevelWithMaxLamports *PriorityLevelWithMaxLamports
}

var errPrioritizationVariant = errors.New("prioritization fee: exactly one variant must be set")

func (p PrioritizationFeeLamports) MarshalJSON() ([]byte, error) {
	set := 0
	for _, ok := range []bool{
		p.Auto,
		p.Lamports != nil,
		p.AutoMultiplier != nil,
		p.JitoTipLamports != nil,
		p.PriorityLevelWithMaxLamports != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errPrioritizationVariant
	}
	switch {
	case p.Auto:
		return json.Marshal("auto")
	case p.Lamports != nil:
		return json.Marshal(*p.Lamports)
	case p.AutoMultiplier != nil:
		return json.Marshal(map[string]uint32{"autoMultiplier": *p.AutoMultiplier})
	case p.JitoTipLamports != nil:
		return json.Marshal(map[string]uint64{"jitoTipLamports": *p.JitoTipLamports})
	default:
		return json.Marshal(map[string]*PriorityLevelWithMaxLamports{
			"priorityLevelWithMaxLamports": p.PriorityLevelWithMaxLamports,
		})
	}
}

// DynamicSlippageSettings bounds the slippage the service may pick after simulation.
type DynamicSlippageSettings struct {
	MinBps *uint16 `json:"minBps,omitempty"`
	MaxBps *uint16 `json:"maxBps,omitempty"`
}

// PrioritizationType reports the prioritization the service applied. It is a
// tagged variant: {"jito":{...}} or {"computeBudget":{...}}.
type PrioritizationType struct {
	Jito          *JitoPrioritization          `json:"jito,omitempty"`
	ComputeBudget *ComputeBudgetPrioritization `json:"computeBudget,omitempty"`
}

type JitoPrioritization struct {
	Lamports uint64 `json:"lamports"`
}

type ComputeBudgetPrioritization struct {
	MicroLamports          uint64  `json:"microLamports"`
	EstimatedMicroLamports *uint64 `json:"estimatedMicroLamports"`
}

type jitoPrioritizationWire struct {
	Lamports *uint64 `json:"lamports" validate:"required"`
}

type computeBudgetPrioritizationWire struct {
	MicroLamports          *uint64 `json:"microLamports" validate:"required"`
	EstimatedMicroLamports *uint64 `json:"estimatedMicroLamports"`
}

func (p *PrioritizationType) UnmarshalJSON(data []byte) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	if len(variants) != 1 {
		return fmt.Errorf("prioritization type: expected exactly one variant, got %d", len(variants))
	}
	for tag, raw := range variants {
		switch tag {
		case "jito":
			var w jitoPrioritizationWire
			if err := unmarshalWire(raw, &w); err != nil {
				return fmt.Errorf("prioritization type jito: %w", err)
			}
			*p = PrioritizationType{Jito: &JitoPrioritization{Lamports: *w.Lamports}}
		case "computeBudget":
			var w computeBudgetPrioritizationWire
			if err := unmarshalWire(raw, &w); err != nil {
				return fmt.Errorf("prioritization type computeBudget: %w", err)
			}
			*p = PrioritizationType{ComputeBudget: &ComputeBudgetPrioritization{
				MicroLamports:          *w.MicroLamports,
				EstimatedMicroLamports: w.EstimatedMicroLamports,
			}}
		default:
			return fmt.Errorf("prioritization type: unknown variant %q", tag)
		}
	}
	return nil
}
