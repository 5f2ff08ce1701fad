package sigs

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// ErrInvalidSequence is returned when a signature does not use the next
// sequence of its key. Codes 120 to 129 belong to this package.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

// UserData is the signature state of a single public key. The sequence
// protects against replaying signed transactions.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	if u.Pubkey == nil || len(u.Pubkey.Ed25519) == 0 {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	}
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (u *UserData) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, u)
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// The greatest nonce value supported by the javascript clients is
	// Number.MAX_SAFE_INTEGER = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket creates the proper bucket for this extension. Users are stored
// under the address of their public key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr tokenswap.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
// In practice you always want to acquire a nonce for the signer. You can get
// the signers address by calling
//
//	address := <crypto.Signer>.PublicKey().Address()
func NextNonce(db tokenswap.ReadOnlyKVStore, signer tokenswap.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, signer, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		// If not yet present, nonce counting starts with zero.
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
