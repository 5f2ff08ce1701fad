package swap

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/near/borsh-go"
)

// Instruction tags, the first byte of every encoded instruction.
const (
	tagInit byte = iota
	tagDeposit
	tagCompleteSwap
	tagCancel
)

// maxAssetLen limits the asset name length accepted by the decoder, so that
// a forged length prefix cannot make it allocate.
const maxAssetLen = 64

// Instruction is one of the commands understood by the escrow.
type Instruction interface {
	// Validate checks the shape of the instruction without accessing
	// any state.
	Validate() error

	tag() byte
}

// InitInstruction creates a new escrow.
type InitInstruction struct {
	AssetA  string `json:"asset_a"`
	AssetB  string `json:"asset_b"`
	AmountA uint64 `json:"amount_a"`
	AmountB uint64 `json:"amount_b"`
}

func (*InitInstruction) tag() byte { return tagInit }

// Validate requires both assets to be tickers and both amounts to be
// positive.
func (i *InitInstruction) Validate() error {
	if !coin.IsCC(i.AssetA) {
		return errors.Wrapf(ErrMalformedInstruction, "asset A %q", i.AssetA)
	}
	if !coin.IsCC(i.AssetB) {
		return errors.Wrapf(ErrMalformedInstruction, "asset B %q", i.AssetB)
	}
	if i.AmountA == 0 {
		return errors.Wrap(ErrInvalidAmount, "amount A must be positive")
	}
	if i.AmountB == 0 {
		return errors.Wrap(ErrInvalidAmount, "amount B must be positive")
	}
	return nil
}

// DepositInstruction funds one side of an escrow.
type DepositInstruction struct {
	Amount uint64 `json:"amount"`
}

func (*DepositInstruction) tag() byte { return tagDeposit }

// Validate always succeeds. The amount can only be checked against the
// escrow.
func (*DepositInstruction) Validate() error { return nil }

// CompleteSwapInstruction exchanges the deposits of a fully funded escrow.
type CompleteSwapInstruction struct{}

func (*CompleteSwapInstruction) tag() byte { return tagCompleteSwap }

func (*CompleteSwapInstruction) Validate() error { return nil }

// CancelInstruction refunds a not fully funded escrow.
type CancelInstruction struct{}

func (*CancelInstruction) tag() byte { return tagCancel }

func (*CancelInstruction) Validate() error { return nil }

// wireInstruction is the borsh enum of all instructions. The field following
// Kind at position Kind+1 holds the variant.
type wireInstruction struct {
	Kind         borsh.Enum `borsh_enum:"true"`
	Init         InitInstruction
	Deposit      DepositInstruction
	CompleteSwap CompleteSwapInstruction
	Cancel       CancelInstruction
}

// DecodeInstruction parses the borsh representation of an instruction.
//
// The first byte is the tag. Strings are prefixed with their length as
// uint32 and integers are uint64, all little endian. Any unknown tag,
// missing field or trailing byte results in ErrMalformedInstruction.
func DecodeInstruction(raw []byte) (Instruction, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrMalformedInstruction, "empty")
	}
	if raw[0] > tagCancel {
		return nil, errors.Wrapf(ErrMalformedInstruction, "unknown tag %d", raw[0])
	}
	if raw[0] == tagInit {
		if err := checkAssetLengths(raw[1:]); err != nil {
			return nil, err
		}
	}

	var w wireInstruction
	if err := borsh.Deserialize(&w, raw); err != nil {
		return nil, errors.Wrap(ErrMalformedInstruction, err.Error())
	}

	var ins Instruction
	switch byte(w.Kind) {
	case tagInit:
		ins = &w.Init
	case tagDeposit:
		ins = &w.Deposit
	case tagCompleteSwap:
		ins = &w.CompleteSwap
	case tagCancel:
		ins = &w.Cancel
	}

	// The encoding is canonical, so a longer input carries trailing bytes.
	canonical, err := EncodeInstruction(ins)
	if err != nil {
		return nil, err
	}
	if n := len(raw) - len(canonical); n != 0 {
		return nil, errors.Wrapf(ErrMalformedInstruction, "%d trailing bytes", n)
	}
	return ins, nil
}

// checkAssetLengths rejects asset length prefixes above maxAssetLen before
// the decoder allocates them. Truncation is left to the decoder.
func checkAssetLengths(fields []byte) error {
	for _, name := range []string{"asset A", "asset B"} {
		if len(fields) < 4 {
			return nil
		}
		n := binary.LittleEndian.Uint32(fields)
		if n > maxAssetLen {
			return errors.Wrapf(ErrMalformedInstruction, "%s of %d bytes", name, n)
		}
		if len(fields) < 4+int(n) {
			return nil
		}
		fields = fields[4+n:]
	}
	return nil
}

// EncodeInstruction returns the borsh representation of given instruction
// as understood by DecodeInstruction.
func EncodeInstruction(ins Instruction) ([]byte, error) {
	if ins == nil {
		return nil, errors.Wrap(ErrMalformedInstruction, "nil instruction")
	}
	w := wireInstruction{Kind: borsh.Enum(ins.tag())}
	switch ins := ins.(type) {
	case *InitInstruction:
		w.Init = *ins
	case *DepositInstruction:
		w.Deposit = *ins
	case *CompleteSwapInstruction, *CancelInstruction:
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T", ins)
	}
	raw, err := borsh.Serialize(w)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedInstruction, err.Error())
	}
	return raw, nil
}
