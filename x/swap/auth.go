package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
)

// Guard decides whether the signers of the current transaction can act on
// an escrow. It never changes any state.
type Guard struct {
	auth x.Authenticator
}

// NewGuard returns a guard trusting the signers provided by given
// authenticator.
func NewGuard(auth x.Authenticator) Guard {
	return Guard{auth: auth}
}

// AuthorizeInit requires the declared party A to have signed.
func (g Guard) AuthorizeInit(ctx tokenswap.Context, partyA tokenswap.Address) error {
	if len(partyA) == 0 || !g.auth.HasAddress(ctx, partyA) {
		return errors.Wrap(ErrUnauthorized, "party A must sign")
	}
	return nil
}

// ResolveDepositRole returns the side depositor acts as. The depositor must
// have signed. assignB is true when the depositor becomes party B with this
// deposit.
func (g Guard) ResolveDepositRole(ctx tokenswap.Context, e *Escrow, depositor tokenswap.Address) (role Role, assignB bool, err error) {
	if len(depositor) == 0 || !g.auth.HasAddress(ctx, depositor) {
		return 0, false, errors.Wrap(ErrUnauthorized, "depositor must sign")
	}
	switch {
	case depositor.Equals(e.PartyA):
		return RoleA, false, nil
	case len(e.PartyB) == 0:
		return RoleB, true, nil
	case depositor.Equals(e.PartyB):
		return RoleB, false, nil
	default:
		return 0, false, errors.Wrap(ErrUnauthorized, "not a party")
	}
}

// AuthorizeParticipant requires party A or party B to have signed and
// returns the address of the one who did, preferring party A.
func (g Guard) AuthorizeParticipant(ctx tokenswap.Context, e *Escrow) (tokenswap.Address, error) {
	for _, p := range []tokenswap.Address{e.PartyA, e.PartyB} {
		if len(p) != 0 && g.auth.HasAddress(ctx, p) {
			return p, nil
		}
	}
	return nil, errors.Wrap(ErrUnauthorized, "not a party")
}
