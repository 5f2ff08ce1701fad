package swap

import (
	"encoding/json"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where escrows are stored.
const BucketName = "swap"

// Status is the lifecycle state of an escrow.
type Status int32

const (
	StatusActive Status = iota + 1
	StatusCompleted
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusActive:    "active",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal returns true if no further change of the escrow is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, "status must be a string")
	}
	for st, n := range statusNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInput, "unknown status %q", name)
}

// Escrow is the record of a single swap between two parties.
type Escrow struct {
	PartyA tokenswap.Address `json:"party_a"`
	// PartyB is empty until the first deposit made by someone other than
	// PartyA.
	PartyB     tokenswap.Address `json:"party_b,omitempty"`
	AssetA     string            `json:"asset_a"`
	AssetB     string            `json:"asset_b"`
	AmountA    uint64            `json:"amount_a"`
	AmountB    uint64            `json:"amount_b"`
	DepositedA bool              `json:"deposited_a"`
	DepositedB bool              `json:"deposited_b"`
	// VaultAuthority is the address holding the deposits. It is always
	// VaultCondition(id).Address().
	VaultAuthority tokenswap.Address `json:"vault_authority"`
	Status         Status            `json:"status,omitempty"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate checks the escrow shape. Whether the vault authority matches the
// escrow id can only be checked by someone who knows the key.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PartyA", e.PartyA.Validate())
	if len(e.PartyB) != 0 {
		errs = errors.AppendField(errs, "PartyB", e.PartyB.Validate())
		if e.PartyB.Equals(e.PartyA) {
			errs = errors.AppendField(errs, "PartyB", errors.Wrap(errors.ErrInput, "same as party A"))
		}
	} else if e.DepositedB {
		errs = errors.AppendField(errs, "DepositedB", errors.Wrap(errors.ErrState, "party B not assigned"))
	}
	if !coin.IsCC(e.AssetA) {
		errs = errors.AppendField(errs, "AssetA", errors.ErrCurrency)
	}
	if !coin.IsCC(e.AssetB) {
		errs = errors.AppendField(errs, "AssetB", errors.ErrCurrency)
	}
	if e.AmountA == 0 {
		errs = errors.AppendField(errs, "AmountA", ErrInvalidAmount)
	}
	if e.AmountB == 0 {
		errs = errors.AppendField(errs, "AmountB", ErrInvalidAmount)
	}
	errs = errors.AppendField(errs, "VaultAuthority", e.VaultAuthority.Validate())
	switch e.Status {
	case StatusActive:
	case StatusCompleted:
		if !e.DepositedA || !e.DepositedB {
			errs = errors.AppendField(errs, "Status", errors.Wrap(errors.ErrState, "completed without both deposits"))
		}
	case StatusCancelled:
		// Cancel refunds every deposit.
		if e.DepositedA {
			errs = errors.AppendField(errs, "DepositedA", errors.Wrap(errors.ErrState, "escrow cancelled"))
		}
		if e.DepositedB {
			errs = errors.AppendField(errs, "DepositedB", errors.Wrap(errors.ErrState, "escrow cancelled"))
		}
	default:
		errs = errors.AppendField(errs, "Status", errors.Wrapf(errors.ErrState, "unknown status %d", e.Status))
	}
	return errs
}

func (e *Escrow) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*e = Escrow{}
		return nil
	}
	return amino.UnmarshalBinaryBare(raw, e)
}

// Role is the side of the swap a party acts as.
type Role int

const (
	RoleA Role = iota + 1
	RoleB
)

func (r Role) String() string {
	switch r {
	case RoleA:
		return "A"
	case RoleB:
		return "B"
	default:
		return "unknown"
	}
}

// Deposited returns true if given side has already funded the escrow.
func (e *Escrow) Deposited(r Role) bool {
	if r == RoleA {
		return e.DepositedA
	}
	return e.DepositedB
}

func (e *Escrow) setDeposited(r Role, v bool) {
	if r == RoleA {
		e.DepositedA = v
	} else {
		e.DepositedB = v
	}
}

// Expected returns what given side has to deposit.
func (e *Escrow) Expected(r Role) coin.Coin {
	if r == RoleA {
		return coin.NewCoin(e.AmountA, e.AssetA)
	}
	return coin.NewCoin(e.AmountB, e.AssetB)
}

// Owner returns the party acting as given side. It is empty for an
// unassigned party B.
func (e *Escrow) Owner(r Role) tokenswap.Address {
	if r == RoleA {
		return e.PartyA
	}
	return e.PartyB
}

// NewBucket returns a bucket storing escrows, indexed by both parties.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIDSequence(escrowSeq),
		orm.WithIndex("party_a", idxPartyA, false),
		orm.WithIndex("party_b", idxPartyB, false),
	)
}

var escrowSeq = orm.NewSequence(BucketName, "id")

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr tokenswap.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func toEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Escrow, got %T", obj.Value())
	}
	return esc, nil
}

func idxPartyA(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	return esc.PartyA, nil
}

// idxPartyB does not index escrows without party B.
func idxPartyB(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	if len(esc.PartyB) == 0 {
		return nil, nil
	}
	return esc.PartyB, nil
}
