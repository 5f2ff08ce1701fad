package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const (
	pathInitMsg         = "swap/init"
	pathDepositMsg      = "swap/deposit"
	pathCompleteSwapMsg = "swap/complete"
	pathCancelMsg       = "swap/cancel"

	maxEscrowIDLen = 32
)

var (
	_ tokenswap.Msg = (*InitMsg)(nil)
	_ tokenswap.Msg = (*DepositMsg)(nil)
	_ tokenswap.Msg = (*CompleteSwapMsg)(nil)
	_ tokenswap.Msg = (*CancelMsg)(nil)
)

// InitMsg creates a new escrow.
type InitMsg struct {
	// EscrowID is optional. When empty, a new id is allocated.
	EscrowID []byte `json:"escrow_id,omitempty"`
	// PartyA defaults to the main signer.
	PartyA  tokenswap.Address `json:"party_a,omitempty"`
	AssetA  string            `json:"asset_a"`
	AssetB  string            `json:"asset_b"`
	AmountA uint64            `json:"amount_a"`
	AmountB uint64            `json:"amount_b"`
}

func (InitMsg) Path() string {
	return pathInitMsg
}

func (m *InitMsg) Validate() error {
	if len(m.EscrowID) > maxEscrowIDLen {
		return errors.Wrap(ErrMalformedInstruction, "escrow id too long")
	}
	if m.PartyA != nil {
		if err := m.PartyA.Validate(); err != nil {
			return errors.Wrapf(ErrMalformedInstruction, "party A: %s", err)
		}
	}
	ins := InitInstruction{
		AssetA:  m.AssetA,
		AssetB:  m.AssetB,
		AmountA: m.AmountA,
		AmountB: m.AmountB,
	}
	return ins.Validate()
}

// DepositMsg funds one side of an escrow.
type DepositMsg struct {
	EscrowID []byte `json:"escrow_id"`
	// Depositor defaults to the main signer.
	Depositor tokenswap.Address `json:"depositor,omitempty"`
	Amount    uint64            `json:"amount"`
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if m.Depositor != nil {
		if err := m.Depositor.Validate(); err != nil {
			return errors.Wrapf(ErrMalformedInstruction, "depositor: %s", err)
		}
	}
	return nil
}

// CompleteSwapMsg releases the deposits of a funded escrow to the
// counterparties.
type CompleteSwapMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

func (CompleteSwapMsg) Path() string {
	return pathCompleteSwapMsg
}

func (m *CompleteSwapMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

// CancelMsg refunds deposits and closes the escrow.
type CancelMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func validateEscrowID(id []byte) error {
	switch n := len(id); {
	case n == 0:
		return errors.Wrap(ErrMalformedInstruction, "missing escrow id")
	case n > maxEscrowIDLen:
		return errors.Wrap(ErrMalformedInstruction, "escrow id too long")
	}
	return nil
}

// NewMsg binds a decoded instruction to the escrow it operates on.
func NewMsg(escrowID []byte, ins Instruction) (tokenswap.Msg, error) {
	var msg tokenswap.Msg
	switch ins := ins.(type) {
	case *InitInstruction:
		msg = &InitMsg{
			EscrowID: escrowID,
			AssetA:   ins.AssetA,
			AssetB:   ins.AssetB,
			AmountA:  ins.AmountA,
			AmountB:  ins.AmountB,
		}
	case *DepositInstruction:
		msg = &DepositMsg{EscrowID: escrowID, Amount: ins.Amount}
	case *CompleteSwapInstruction:
		msg = &CompleteSwapMsg{EscrowID: escrowID}
	case *CancelInstruction:
		msg = &CancelMsg{EscrowID: escrowID}
	default:
		return nil, errors.Wrapf(ErrMalformedInstruction, "unsupported instruction %T", ins)
	}
	return msg, nil
}
