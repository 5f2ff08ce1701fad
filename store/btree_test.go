package store

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache.
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGetHas(t, c3, k, nil, false)
	require.NoError(t, c3.Write())

	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
	assertGetHas(t, base, k3, nil, false)
}

func TestCacheIteratorMergesLayers(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range ascending": {
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("c"), []byte("cache-c")),
				Pair([]byte("g"), []byte("base-g")),
			},
		},
		"full range descending": {
			reverse: true,
			want: []Model{
				Pair([]byte("g"), []byte("base-g")),
				Pair([]byte("c"), []byte("cache-c")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("a"), []byte("base-a")),
			},
		},
		"bounded range excludes end": {
			start: []byte("b"),
			end:   []byte("g"),
			want: []Model{
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("c"), []byte("cache-c")),
			},
		},
		"open start": {
			end: []byte("c"),
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("cache-b")),
			},
		},
		"open end": {
			start: []byte("d"),
			want: []Model{
				Pair([]byte("g"), []byte("base-g")),
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, readAll(t, it))
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	b := NewNonAtomicBatch(kv)
	require.NoError(t, b.Set([]byte("foo"), []byte("bar")))
	require.NoError(t, b.Delete([]byte("baz")))
	assert.Len(t, b.ShowOps(), 2)

	assertGetHas(t, kv, []byte("foo"), nil, false)
	require.NoError(t, b.Write())
	assertGetHas(t, kv, []byte("foo"), []byte("bar"), true)
	assert.Len(t, b.ShowOps(), 0)
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func readAll(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Release()

	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Pair(k, v))
	}
}
