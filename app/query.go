package app

import (
	"strings"

	"github.com/iov-one/tokenswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query reads the last committed state.
//
// The request path selects a handler registered on the query router, for
// example "/escrows" or "/escrows/party_a". A "?prefix" suffix turns a key
// lookup into a prefix scan. Only the latest height can be queried.
//
// Key and Value of the response are serialized ResultSets of the same
// length, so a query always returns zero or more key value pairs.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	if req.Height != 0 && req.Height != info.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "height %d not available, latest is %d", req.Height, info.Version))
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: info.Version, Key: keys, Value: values}
}

// splitPath separates the query modifier following "?" from the path.
func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
