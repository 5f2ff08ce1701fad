package main

import (
	"encoding/binary"
	"io"

	swapd "github.com/iov-one/tokenswap/cmd/swapd/app"
	"github.com/iov-one/tokenswap/errors"
)

// writeTx serializes the transaction. First bytes written contain the
// information how much space the transaction takes, so that transactions
// can be streamed through a pipe.
func writeTx(w io.Writer, tx *swapd.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*swapd.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		if err == io.EOF {
			return nil, n, errors.Wrap(errors.ErrEmpty, "no input data")
		}
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	if msgSize > maxTxSize {
		return nil, txHeaderSize, errors.Wrapf(errors.ErrInput, "transaction of %d bytes", msgSize)
	}
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx swapd.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const (
	txHeaderSize = 4
	maxTxSize    = 1 << 20
)
