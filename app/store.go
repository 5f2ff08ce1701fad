package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the storage related part of abci.Application: info,
// genesis, block context, queries and commits. BaseApp extends it with
// transaction processing.
//
// Info, InitChain and Commit do not process user input. A failure there
// means the node state is broken and StoreApp panics.
type StoreApp struct {
	name   string
	logger log.Logger
	store  *CommitStore

	initializer tokenswap.Initializer
	queryRouter tokenswap.QueryRouter

	// chainID is empty until InitChain runs for the first time.
	chainID string

	// baseContext lives as long as the application, blockContext is
	// replaced on every BeginBlock.
	baseContext  tokenswap.Context
	blockContext tokenswap.Context
}

// NewStoreApp loads the latest committed state of store. When the chain was
// initialized before, the chain id is restored from the state.
func NewStoreApp(name string, store tokenswap.CommitKVStore, queryRouter tokenswap.QueryRouter, baseContext tokenswap.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		s.setChainID(chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	s.blockContext = tokenswap.WithHeight(s.baseContext, info.Version)
	return s, nil
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.baseContext = tokenswap.WithChainID(s.baseContext, chainID)
	// The chain id is set once, so neither context carries it yet. CheckTx
	// may run with the current block context before the first BeginBlock.
	if s.blockContext != nil {
		s.blockContext = tokenswap.WithChainID(s.blockContext, chainID)
	}
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer called with the genesis app state.
func (s *StoreApp) WithInit(init tokenswap.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the application logger. Handlers find it in the context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = tokenswap.WithLogger(s.baseContext, logger)
	s.blockContext = tokenswap.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() tokenswap.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() tokenswap.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() tokenswap.CacheableKVStore {
	return s.store.CheckStore()
}

// Info returns the application name and version together with the last
// committed height and hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          tokenswap.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and loads the genesis app state. It is
// called once in the lifetime of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.initChain(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) initChain(chainID string, rawState []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(rawState) == 0 {
		return errors.Wrap(errors.ErrState, "app_state not set in genesis.json, run init before launching the chain")
	}
	var state tokenswap.Options
	if err := json.Unmarshal(rawState, &state); err != nil {
		return errors.Wrapf(errors.ErrInput, "app state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(state, s.DeliverStore())
}

// BeginBlock builds the context for all transactions of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := tokenswap.WithHeader(s.baseContext, req.Header)
	ctx = tokenswap.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = tokenswap.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never updates the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the delivered state and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
