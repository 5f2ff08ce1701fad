package swap

import (
	"encoding/hex"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

// TagEscrow is the tag key under which the escrow id is indexed.
const TagEscrow = "swap.escrow"

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	guard := NewGuard(auth)
	r.Handle(pathInitMsg, InitHandler{auth: auth, guard: guard, bucket: bucket})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, guard: guard, bucket: bucket, bank: bank})
	r.Handle(pathCompleteSwapMsg, CompleteSwapHandler{guard: guard, bucket: bucket, bank: bank})
	r.Handle(pathCancelMsg, CancelHandler{guard: guard, bucket: bucket, bank: bank})
}

// InitHandler creates escrows.
type InitHandler struct {
	auth   x.Authenticator
	guard  Guard
	bucket orm.ModelBucket
}

var _ tokenswap.Handler = InitHandler{}

func (h InitHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: conf.InitCost}, nil
}

// Deliver stores a new active escrow. No funds are moved.
func (h InitHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, partyA, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id := msg.EscrowID
	if len(id) == 0 {
		if id, err = h.nextID(db); err != nil {
			return nil, err
		}
	}

	escrow := &Escrow{
		PartyA:         partyA,
		AssetA:         msg.AssetA,
		AssetB:         msg.AssetB,
		AmountA:        msg.AmountA,
		AmountB:        msg.AmountB,
		VaultAuthority: VaultCondition(id).Address(),
		Status:         StatusActive,
	}
	if _, err := h.bucket.Put(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	tokenswap.GetLogger(ctx).Info("escrow created",
		"escrow", hex.EncodeToString(id),
		"party_a", partyA.String(),
		"vault", escrow.VaultAuthority.String())
	return escrowResult(id, escrow), nil
}

// nextID allocates a key from the sequence, skipping any key that is
// already taken by an escrow created with an explicit id.
func (h InitHandler) nextID(db tokenswap.KVStore) ([]byte, error) {
	for {
		id, err := escrowSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "cannot acquire key")
		}
		switch err := h.bucket.Has(db, id); {
		case errors.ErrNotFound.Is(err):
			return id, nil
		case err != nil:
			return nil, err
		}
	}
}

func (h InitHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*InitMsg, tokenswap.Address, error) {
	var msg InitMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	if len(msg.EscrowID) != 0 {
		switch err := h.bucket.Has(db, msg.EscrowID); {
		case err == nil:
			return nil, nil, errors.Wrap(errors.ErrDuplicate, "escrow already exists")
		case !errors.ErrNotFound.Is(err):
			return nil, nil, err
		}
	}

	partyA := msg.PartyA
	if partyA == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(ErrUnauthorized, "no signer")
		}
		partyA = signer.Address()
	}
	if err := h.guard.AuthorizeInit(ctx, partyA); err != nil {
		return nil, nil, err
	}
	return &msg, partyA, nil
}

// DepositHandler funds one side of an escrow.
type DepositHandler struct {
	auth   x.Authenticator
	guard  Guard
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ tokenswap.Handler = DepositHandler{}

// Check also rejects deposits that the depositor cannot fund, so that they
// never reach a block.
func (h DepositHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	funds, err := h.bank.Balance(db, d.depositor)
	if err != nil {
		return nil, err
	}
	if amount := d.escrow.Expected(d.role); !funds.Contains(amount) {
		return nil, errors.Append(
			errors.Wrapf(ErrTransferFailed, "cannot receive %s from %s", amount, d.depositor),
			errors.ErrInsufficientAmount)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: conf.DepositCost}, nil
}

// Deliver moves the expected amount from the depositor into the vault and
// marks the side as funded.
func (h DepositHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	amount := d.escrow.Expected(d.role)
	if err := newCustodian(h.bank, d.id).Receive(db, d.depositor, amount); err != nil {
		return nil, err
	}

	if d.assignB {
		d.escrow.PartyB = d.depositor
	}
	d.escrow.setDeposited(d.role, true)
	if _, err := h.bucket.Put(db, d.id, d.escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	tokenswap.GetLogger(ctx).Info("escrow funded",
		"escrow", hex.EncodeToString(d.id),
		"role", d.role.String(),
		"amount", amount.String())
	return escrowResult(d.id, d.escrow), nil
}

type deposit struct {
	id        []byte
	escrow    *Escrow
	depositor tokenswap.Address
	role      Role
	assignB   bool
}

func (h DepositHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*deposit, error) {
	var msg DepositMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	escrow, err := loadActive(db, h.bucket, msg.EscrowID)
	if err != nil {
		return nil, err
	}

	depositor := msg.Depositor
	if depositor == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(ErrUnauthorized, "no signer")
		}
		depositor = signer.Address()
	}
	role, assignB, err := h.guard.ResolveDepositRole(ctx, escrow, depositor)
	if err != nil {
		return nil, err
	}

	if escrow.Deposited(role) {
		return nil, errors.Wrapf(ErrAlreadyDeposited, "side %s", role)
	}
	if want := escrow.Expected(role); msg.Amount != want.Amount {
		return nil, errors.Wrapf(ErrInvalidAmount, "side %s must deposit %s, got %d", role, want, msg.Amount)
	}

	return &deposit{
		id:        msg.EscrowID,
		escrow:    escrow,
		depositor: depositor,
		role:      role,
		assignB:   assignB,
	}, nil
}

// CompleteSwapHandler exchanges the deposits of a fully funded escrow.
type CompleteSwapHandler struct {
	guard  Guard
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ tokenswap.Handler = CompleteSwapHandler{}

func (h CompleteSwapHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: conf.CompleteCost}, nil
}

// Deliver sends the deposit of A to party B and the deposit of B to
// party A.
func (h CompleteSwapHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vault := newCustodian(h.bank, id)
	if err := vault.Release(db, escrow.PartyB, escrow.Expected(RoleA)); err != nil {
		return nil, err
	}
	if err := vault.Release(db, escrow.PartyA, escrow.Expected(RoleB)); err != nil {
		return nil, err
	}

	escrow.Status = StatusCompleted
	if _, err := h.bucket.Put(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	tokenswap.GetLogger(ctx).Info("escrow completed", "escrow", hex.EncodeToString(id))
	return escrowResult(id, escrow), nil
}

func (h CompleteSwapHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) ([]byte, *Escrow, error) {
	var msg CompleteSwapMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadActive(db, h.bucket, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.guard.AuthorizeParticipant(ctx, escrow); err != nil {
		return nil, nil, err
	}
	if !escrow.DepositedA || !escrow.DepositedB {
		return nil, nil, errors.Wrap(ErrEscrowNotReady, "both sides must deposit")
	}
	return msg.EscrowID, escrow, nil
}

// CancelHandler closes an escrow that is not fully funded.
type CancelHandler struct {
	guard  Guard
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ tokenswap.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: conf.CancelCost}, nil
}

// Deliver refunds each funded side to its owner.
func (h CancelHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vault := newCustodian(h.bank, id)
	for _, role := range []Role{RoleA, RoleB} {
		if !escrow.Deposited(role) {
			continue
		}
		if err := vault.Release(db, escrow.Owner(role), escrow.Expected(role)); err != nil {
			return nil, err
		}
		escrow.setDeposited(role, false)
	}

	escrow.Status = StatusCancelled
	if _, err := h.bucket.Put(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	tokenswap.GetLogger(ctx).Info("escrow cancelled", "escrow", hex.EncodeToString(id))
	return escrowResult(id, escrow), nil
}

func (h CancelHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) ([]byte, *Escrow, error) {
	var msg CancelMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadActive(db, h.bucket, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.guard.AuthorizeParticipant(ctx, escrow); err != nil {
		return nil, nil, err
	}
	if escrow.DepositedA && escrow.DepositedB {
		return nil, nil, errors.Wrap(ErrUnauthorizedCancel, "fully funded escrow can only be completed")
	}
	return msg.EscrowID, escrow, nil
}

// loadActive returns the escrow with given id, failing if it was already
// completed or cancelled.
func loadActive(db tokenswap.ReadOnlyKVStore, bucket orm.ModelBucket, id []byte) (*Escrow, error) {
	var escrow Escrow
	if err := bucket.One(db, id, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot load escrow")
	}
	if escrow.Status.Terminal() {
		return nil, errors.Wrapf(ErrEscrowNotReady, "escrow is %s", escrow.Status)
	}
	return &escrow, nil
}

func escrowResult(id []byte, e *Escrow) *tokenswap.DeliverResult {
	return &tokenswap.DeliverResult{
		Data: id,
		Log:  "escrow " + e.Status.String(),
		Tags: []common.KVPair{
			{Key: []byte(TagEscrow), Value: []byte(hex.EncodeToString(id))},
		},
	}
}
