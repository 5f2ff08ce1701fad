package store

import (
	"bytes"

	"github.com/iov-one/tokenswap/errors"
)

// cacheIterator merges a snapshot of cached items with the iterator of the
// parent store. Cached values shadow the parent and cached deletions hide
// the parent entries.
type cacheIterator struct {
	local     []keyer
	parent    Iterator
	ascending bool

	// Last read, not yet consumed parent entry.
	pkey, pvalue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(local []keyer, parent Iterator, ascending bool) *cacheIterator {
	return &cacheIterator{
		local:     local,
		parent:    parent,
		ascending: ascending,
	}
}

func (it *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := it.loadParent(); err != nil {
			return nil, nil, err
		}
		if len(it.local) == 0 && it.pDone {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		takeLocal := true
		switch {
		case len(it.local) == 0:
			takeLocal = false
		case it.pDone:
			takeLocal = true
		default:
			cmp := bytes.Compare(it.local[0].Key(), it.pkey)
			if !it.ascending {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				takeLocal = false
			case cmp == 0:
				// Cached entry shadows the parent one.
				it.pLoaded = false
			}
		}

		if !takeLocal {
			it.pLoaded = false
			return it.pkey, it.pvalue, nil
		}

		item := it.local[0]
		it.local = it.local[1:]
		if s, ok := item.(setItem); ok {
			return s.key, s.value, nil
		}
		// Deleted item, skip it.
	}
}

func (it *cacheIterator) loadParent() error {
	if it.pLoaded || it.pDone {
		return nil
	}
	k, v, err := it.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		it.pDone = true
		return nil
	}
	if err != nil {
		return err
	}
	it.pkey, it.pvalue, it.pLoaded = k, v, true
	return nil
}

func (it *cacheIterator) Release() {
	it.parent.Release()
}
