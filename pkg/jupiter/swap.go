package jupiter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter/codec"
)

// SwapRequest asks the service to build the transaction for a quote. Extra is
// merged into the top level of the JSON body. A key naming any typed field,
// set or not, is rejected with ArgCollisionError so typed values always pass
// through their codecs.
type SwapRequest struct {
	UserPublicKey solana.PublicKey
	QuoteResponse QuoteResponse
	Config        TransactionConfig
	Extra         map[string]any
}

type swapRequestWire struct {
	UserPublicKey *pubkeyText    `json:"userPublicKey"`
	QuoteResponse *QuoteResponse `json:"quoteResponse"`
	transactionConfigWire
}

// swapBodyKeys holds every top-level key swapRequestWire can emit.
var swapBodyKeys = jsonKeys(reflect.TypeOf(swapRequestWire{}))

func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for k := range jsonKeys(f.Type) {
				keys[k] = struct{}{}
			}
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

func (r SwapRequest) MarshalJSON() ([]byte, error) {
	fixed, err := json.Marshal(swapRequestWire{
		UserPublicKey:         textOf(r.UserPublicKey),
		QuoteResponse:         &r.QuoteResponse,
		transactionConfigWire: r.Config.wire(),
	})
	if err != nil || len(r.Extra) == 0 {
		return fixed, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(fixed, &merged); err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(r.Extra) {
		if _, ok := swapBodyKeys[k]; ok {
			return nil, &ArgCollisionError{Key: k}
		}
		raw, err := json.Marshal(r.Extra[k])
		if err != nil {
			return nil, fmt.Errorf("encode extra %q: %w", k, err)
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// DynamicSlippageReport describes the slippage chosen after simulation.
type DynamicSlippageReport struct {
	SlippageBps uint16
	OtherAmount *uint64
	// signed: slippage can be positive or negative
	SimulatedIncurredSlippageBps *int16
	AmplificationRatio           *decimal.Decimal
}

type dynamicSlippageReportWire struct {
	SlippageBps                  *uint16         `json:"slippageBps" validate:"required"`
	OtherAmount                  *uint64         `json:"otherAmount"`
	SimulatedIncurredSlippageBps *int16          `json:"simulatedIncurredSlippageBps"`
	AmplificationRatio           optionalDecimal `json:"amplificationRatio"`
}

func (w *dynamicSlippageReportWire) report() *DynamicSlippageReport {
	if w == nil {
		return nil
	}
	return &DynamicSlippageReport{
		SlippageBps:                  *w.SlippageBps,
		OtherAmount:                  w.OtherAmount,
		SimulatedIncurredSlippageBps: w.SimulatedIncurredSlippageBps,
		AmplificationRatio:           w.AmplificationRatio.Ptr(),
	}
}

func (r *DynamicSlippageReport) wire() *dynamicSlippageReportWire {
	if r == nil {
		return nil
	}
	return &dynamicSlippageReportWire{
		SlippageBps:                  Ptr(r.SlippageBps),
		OtherAmount:                  r.OtherAmount,
		SimulatedIncurredSlippageBps: r.SimulatedIncurredSlippageBps,
		AmplificationRatio:           codec.FromPtr(r.AmplificationRatio),
	}
}

// SimulationError is the service's report of a failed simulation of the built transaction.
type SimulationError struct {
	ErrorCode string
	Message   string
}

type simulationErrorWire struct {
	ErrorCode *string `json:"errorCode" validate:"required"`
	Error     *string `json:"error" validate:"required"`
}

func (w *simulationErrorWire) simulationError() *SimulationError {
	if w == nil {
		return nil
	}
	return &SimulationError{ErrorCode: *w.ErrorCode, Message: *w.Error}
}

func (e *SimulationError) wire() *simulationErrorWire {
	if e == nil {
		return nil
	}
	return &simulationErrorWire{ErrorCode: Ptr(e.ErrorCode), Error: Ptr(e.Message)}
}

// SwapResponse carries the serialized, unsigned swap transaction.
type SwapResponse struct {
	SwapTransaction           []byte
	LastValidBlockHeight      uint64
	PrioritizationFeeLamports uint64
	ComputeUnitLimit          uint32
	PrioritizationType        *PrioritizationType
	DynamicSlippageReport     *DynamicSlippageReport
	SimulationError           *SimulationError
}

type swapResponseWire struct {
	SwapTransaction           codec.Base64               `json:"swapTransaction" validate:"required"`
	LastValidBlockHeight      *uint64                    `json:"lastValidBlockHeight" validate:"required"`
	PrioritizationFeeLamports *uint64                    `json:"prioritizationFeeLamports" validate:"required"`
	ComputeUnitLimit          *uint32                    `json:"computeUnitLimit" validate:"required"`
	PrioritizationType        *PrioritizationType        `json:"prioritizationType"`
	DynamicSlippageReport     *dynamicSlippageReportWire `json:"dynamicSlippageReport"`
	SimulationError           *simulationErrorWire       `json:"simulationError"`
}

func (w *swapResponseWire) swapResponse() SwapResponse {
	return SwapResponse{
		SwapTransaction:           []byte(w.SwapTransaction),
		LastValidBlockHeight:      *w.LastValidBlockHeight,
		PrioritizationFeeLamports: *w.PrioritizationFeeLamports,
		ComputeUnitLimit:          *w.ComputeUnitLimit,
		PrioritizationType:        w.PrioritizationType,
		DynamicSlippageReport:     w.DynamicSlippageReport.report(),
		SimulationError:           w.SimulationError.simulationError(),
	}
}

func (r SwapResponse) MarshalJSON() ([]byte, error) {
	tx := codec.Base64(r.SwapTransaction)
	if tx == nil {
		tx = codec.Base64{}
	}
	return json.Marshal(swapResponseWire{
		SwapTransaction:           tx,
		LastValidBlockHeight:      Ptr(r.LastValidBlockHeight),
		PrioritizationFeeLamports: Ptr(r.PrioritizationFeeLamports),
		ComputeUnitLimit:          Ptr(r.ComputeUnitLimit),
		PrioritizationType:        r.PrioritizationType,
		DynamicSlippageReport:     r.DynamicSlippageReport.wire(),
		SimulationError:           r.SimulationError.wire(),
	})
}

func (r *SwapResponse) UnmarshalJSON(data []byte) error {
	var w swapResponseWire
	if err := unmarshalWire(data, &w); err != nil {
		return err
	}
	*r = w.swapResponse()
	return nil
}

// Transaction decodes SwapTransaction for inspection or hand-off to a signer.
func (r *SwapResponse) Transaction() (*solana.Transaction, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(r.SwapTransaction))
	if err != nil {
		return nil, fmt.Errorf("decode swap transaction: %w", err)
	}
	return tx, nil
}

// SwapInstructionsResponse is the swap split into instructions, for callers that
// assemble their own transaction. Only SwapInstruction and
// AddressLookupTableAddresses are always present.
type SwapInstructionsResponse struct {
	TokenLedgerInstruction      *solana.GenericInstruction
	ComputeBudgetInstructions   []solana.GenericInstruction
	SetupInstructions           []solana.GenericInstruction
	SwapInstruction             solana.GenericInstruction
	CleanupInstruction          *solana.GenericInstruction
	OtherInstructions           []solana.GenericInstruction
	AddressLookupTableAddresses []solana.PublicKey
	PrioritizationFeeLamports   *uint64
	ComputeUnitLimit            *uint32
	PrioritizationType          *PrioritizationType
	DynamicSlippageReport       *DynamicSlippageReport
	SimulationError             *SimulationError
}

type swapInstructionsResponseWire struct {
	TokenLedgerInstruction      *instructionWire           `json:"tokenLedgerInstruction,omitempty"`
	ComputeBudgetInstructions   []instructionWire          `json:"computeBudgetInstructions,omitempty" validate:"dive"`
	SetupInstructions           []instructionWire          `json:"setupInstructions,omitempty" validate:"dive"`
	SwapInstruction             *instructionWire           `json:"swapInstruction" validate:"required"`
	CleanupInstruction          *instructionWire           `json:"cleanupInstruction,omitempty"`
	OtherInstructions           []instructionWire          `json:"otherInstructions,omitempty" validate:"dive"`
	AddressLookupTableAddresses []pubkeyText               `json:"addressLookupTableAddresses" validate:"required"`
	PrioritizationFeeLamports   *uint64                    `json:"prioritizationFeeLamports,omitempty"`
	ComputeUnitLimit            *uint32                    `json:"computeUnitLimit,omitempty"`
	PrioritizationType          *PrioritizationType        `json:"prioritizationType,omitempty"`
	DynamicSlippageReport       *dynamicSlippageReportWire `json:"dynamicSlippageReport,omitempty"`
	SimulationError             *simulationErrorWire       `json:"simulationError,omitempty"`
}

func (w *swapInstructionsResponseWire) swapInstructionsResponse() SwapInstructionsResponse {
	return SwapInstructionsResponse{
		TokenLedgerInstruction:      optionalInstruction(w.TokenLedgerInstruction),
		ComputeBudgetInstructions:   instructions(w.ComputeBudgetInstructions),
		SetupInstructions:           instructions(w.SetupInstructions),
		SwapInstruction:             w.SwapInstruction.instruction(),
		CleanupInstruction:          optionalInstruction(w.CleanupInstruction),
		OtherInstructions:           instructions(w.OtherInstructions),
		AddressLookupTableAddresses: pubkeys(w.AddressLookupTableAddresses),
		PrioritizationFeeLamports:   w.PrioritizationFeeLamports,
		ComputeUnitLimit:            w.ComputeUnitLimit,
		PrioritizationType:          w.PrioritizationType,
		DynamicSlippageReport:       w.DynamicSlippageReport.report(),
		SimulationError:             w.SimulationError.simulationError(),
	}
}

func (r SwapInstructionsResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(swapInstructionsResponseWire{
		TokenLedgerInstruction:      optionalInstructionWire(r.TokenLedgerInstruction),
		ComputeBudgetInstructions:   instructionWires(r.ComputeBudgetInstructions),
		SetupInstructions:           instructionWires(r.SetupInstructions),
		SwapInstruction:             instructionWireOf(&r.SwapInstruction),
		CleanupInstruction:          optionalInstructionWire(r.CleanupInstruction),
		OtherInstructions:           instructionWires(r.OtherInstructions),
		AddressLookupTableAddresses: pubkeyWires(r.AddressLookupTableAddresses),
		PrioritizationFeeLamports:   r.PrioritizationFeeLamports,
		ComputeUnitLimit:            r.ComputeUnitLimit,
		PrioritizationType:          r.PrioritizationType,
		DynamicSlippageReport:       r.DynamicSlippageReport.wire(),
		SimulationError:             r.SimulationError.wire(),
	})
}

func (r *SwapInstructionsResponse) UnmarshalJSON(data []byte) error {
	var w swapInstructionsResponseWire
	if err := unmarshalWire(data, &w); err != nil {
		return err
	}
	*r = w.swapInstructionsResponse()
	return nil
}

// Instructions returns every instruction in execution order: compute budget,
// setup, token ledger, swap, cleanup, then any others.
func (r *SwapInstructionsResponse) Instructions() []solana.Instruction {
	var out []solana.Instruction
	for i := range r.ComputeBudgetInstructions {
		out = append(out, &r.ComputeBudgetInstructions[i])
	}
	for i := range r.SetupInstructions {
		out = append(out, &r.SetupInstructions[i])
	}
	if r.TokenLedgerInstruction != nil {
		out = append(out, r.TokenLedgerInstruction)
	}
	out = append(out, &r.SwapInstruction)
	if r.CleanupInstruction != nil {
		out = append(out, r.CleanupInstruction)
	}
	for i := range r.OtherInstructions {
		out = append(out, &r.OtherInstructions[i])
	}
	return out
}
