package swapd

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/swap"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format understood by swapd. It carries one escrow
// instruction, the escrow it applies to and the signatures of the callers.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures"`
	// EscrowID may be empty for an Init instruction, in which case a new id
	// is allocated.
	EscrowID    []byte `json:"escrow_id"`
	Instruction []byte `json:"instruction"`
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (tokenswap.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ tokenswap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx encodes the instruction into a transaction without signatures.
func NewTx(escrowID []byte, ins swap.Instruction) (*Tx, error) {
	raw, err := swap.EncodeInstruction(ins)
	if err != nil {
		return nil, err
	}
	return &Tx{EscrowID: escrowID, Instruction: raw}, nil
}

// GetMsg decodes the instruction into the message routed to the swap
// handlers.
func (tx *Tx) GetMsg() (tokenswap.Msg, error) {
	ins, err := swap.DecodeInstruction(tx.Instruction)
	if err != nil {
		return nil, err
	}
	return swap.NewMsg(tx.EscrowID, ins)
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes must come from the data only, never from signatures
	cp := *tx
	cp.Signatures = nil
	return cp.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	if err := amino.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "transaction: %s", err)
	}
	return nil
}
