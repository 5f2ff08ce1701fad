package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the content of a wallet, the coins held by a single address.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical order, unique and
// positive.
func (s *Set) Validate() error {
	return errors.Field("Coins", s.Coins.Validate(), "invalid coins")
}

// Marshal serializes the wallet with go-amino.
func (s *Set) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(s)
}

// Unmarshal loads a wallet serialized with Marshal.
func (s *Set) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*s = Set{}
		return nil
	}
	return amino.UnmarshalBinaryBare(raw, s)
}

// NewBucket returns a bucket keeping wallets under their owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}

// RegisterQuery will register the wallets bucket as "/wallets"
func RegisterQuery(qr tokenswap.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
