package jupiter

import (
	"github.com/gagliardetto/solana-go"

	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter/codec"
)

// instructionWire is the JSON shape of a solana.GenericInstruction.
type instructionWire struct {
	ProgramID *pubkeyText       `json:"programId" validate:"required"`
	Accounts  []accountMetaWire `json:"accounts" validate:"required,dive"`
	Data      codec.Base64      `json:"data" validate:"required"`
}

// accountMetaWire requires both flags; a missing flag is a parse error, not false.
type accountMetaWire struct {
	Pubkey     *pubkeyText `json:"pubkey" validate:"required"`
	IsSigner   *bool       `json:"isSigner" validate:"required"`
	IsWritable *bool       `json:"isWritable" validate:"required"`
}

func (w *accountMetaWire) accountMeta() *solana.AccountMeta {
	return &solana.AccountMeta{
		PublicKey:  w.Pubkey.Value,
		IsSigner:   *w.IsSigner,
		IsWritable: *w.IsWritable,
	}
}

func (w *instructionWire) instruction() solana.GenericInstruction {
	accounts := make(solana.AccountMetaSlice, len(w.Accounts))
	for i := range w.Accounts {
		accounts[i] = w.Accounts[i].accountMeta()
	}
	data := make([]byte, len(w.Data))
	copy(data, w.Data)
	return solana.GenericInstruction{
		ProgID:        w.ProgramID.Value,
		AccountValues: accounts,
		DataBytes:     data,
	}
}

func instructionWireOf(in *solana.GenericInstruction) *instructionWire {
	accounts := make([]accountMetaWire, len(in.AccountValues))
	for i, meta := range in.AccountValues {
		accounts[i] = accountMetaWire{
			Pubkey:     textOf(meta.PublicKey),
			IsSigner:   Ptr(meta.IsSigner),
			IsWritable: Ptr(meta.IsWritable),
		}
	}
	data := codec.Base64(in.DataBytes)
	if data == nil {
		data = codec.Base64{}
	}
	return &instructionWire{
		ProgramID: textOf(in.ProgID),
		Accounts:  accounts,
		Data:      data,
	}
}

func instructions(ws []instructionWire) []solana.GenericInstruction {
	if ws == nil {
		return nil
	}
	out := make([]solana.GenericInstruction, len(ws))
	for i := range ws {
		out[i] = ws[i].instruction()
	}
	return out
}

func instructionWires(ins []solana.GenericInstruction) []instructionWire {
	if ins == nil {
		return nil
	}
	out := make([]instructionWire, len(ins))
	for i := range ins {
		out[i] = *instructionWireOf(&ins[i])
	}
	return out
}

func optionalInstruction(w *instructionWire) *solana.GenericInstruction {
	if w == nil {
		return nil
	}
	in := w.instruction()
	return &in
}

func optionalInstructionWire(in *solana.GenericInstruction) *instructionWire {
	if in == nil {
		return nil
	}
	return instructionWireOf(in)
}
