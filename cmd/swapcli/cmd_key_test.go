package main

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestKeygenDerivation(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	a, err := keygen(seed, "m/44'/234'/0'")
	assert.Nil(t, err)
	again, err := keygen(seed, "m/44'/234'/0'")
	assert.Nil(t, err)
	assert.Equal(t, a.Ed25519, again.Ed25519)

	b, err := keygen(seed, "m/44'/234'/1'")
	assert.Nil(t, err)
	if bytes.Equal(a.Ed25519, b.Ed25519) {
		t.Fatal("different paths must derive different keys")
	}

	if _, err := keygen(seed, "not a path"); err == nil {
		t.Fatal("invalid path must fail")
	}

	r1, err := keygen(nil, "")
	assert.Nil(t, err)
	r2, err := keygen(nil, "")
	assert.Nil(t, err)
	if bytes.Equal(r1.Ed25519, r2.Ed25519) {
		t.Fatal("random keys must differ")
	}
}

func TestKeygenDoesNotOverwrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "swapcli")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "key")

	args := []string{"-key", path, "-seed", strings.Repeat("ab", 32)}
	if err := cmdKeygen(nil, ioutil.Discard, args); err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	first, err := ioutil.ReadFile(path)
	assert.Nil(t, err)

	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", path}); err == nil {
		t.Fatal("existing key must not be overwritten")
	}
	second, err := ioutil.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestKeyaddr(t *testing.T) {
	key, path, cleanup := writeKey(t, 1)
	defer cleanup()

	var out bytes.Buffer
	if err := cmdKeyaddr(nil, &out, []string{"-key", path}); err != nil {
		t.Fatalf("cannot print address: %s", err)
	}
	want := hex.EncodeToString(key.PublicKey().Address())
	assert.Equal(t, want+"\n", out.String())

	out.Reset()
	if err := cmdKeyaddr(nil, &out, []string{"-key", path, "-hrp", "swap"}); err != nil {
		t.Fatalf("cannot print bech32 address: %s", err)
	}
	if !strings.HasPrefix(out.String(), "swap1") {
		t.Fatalf("unexpected bech32 address: %q", out.String())
	}
}
