/*
Package bech32 encodes full byte payloads, such as addresses, in the bech32
format. The underlying implementation works on 5 bit groups and this package
converts from and to 8 bit bytes.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/tokenswap/errors"
)

// Encode returns the bech32 representation of payload with the given human
// readable part.
func Encode(hrp string, payload []byte) ([]byte, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	enc, err := bech32.Encode(hrp, groups)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return []byte(enc), nil
}

// Decode returns the human readable part and the payload of a bech32 string.
// The checksum is verified.
func Decode(enc string) (hrp string, payload []byte, err error) {
	hrp, groups, err := bech32.Decode(enc)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	if payload, err = bech32.ConvertBits(groups, 5, 8, false); err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}
