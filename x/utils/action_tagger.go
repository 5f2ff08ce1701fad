package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which the message path is indexed.
const ActionKey = "action"

// ActionTagger tags every successfully delivered transaction with
// "action=<msg path>", so that clients can search or subscribe to escrow
// operations, for example action='swap/complete'.
//
// Place it next to the router so that failures never get tagged.
type ActionTagger struct{}

var _ tokenswap.Decorator = ActionTagger{}

// NewActionTagger returns an ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	// An undecodable message fails before the handler is called.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
