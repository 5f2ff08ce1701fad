package orm

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// ConsumeIterator will read all remaining data into an
// array and release the iterator
func ConsumeIterator(itr tokenswap.Iterator) ([]tokenswap.Model, error) {
	defer itr.Release()

	var res []tokenswap.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, tokenswap.Pair(key, value))
	}
}

func queryPrefix(db tokenswap.ReadOnlyKVStore, prefix []byte) ([]tokenswap.Model, error) {
	itr, err := db.Iterator(tokenswap.PrefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}
