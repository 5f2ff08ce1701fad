package crypto

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	amino "github.com/tendermint/go-amino"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is an ed25519 private key. It must never leave the client.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a signature condition.
func (p *PublicKey) Condition() tokenswap.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return tokenswap.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the signature condition.
func (p *PublicKey) Address() tokenswap.Address {
	return p.Condition().Address()
}

// Marshal serializes the key.
func (p *PublicKey) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(p)
}

// Unmarshal deserializes the key.
func (p *PublicKey) Unmarshal(raw []byte) error {
	if err := amino.UnmarshalBinaryBare(raw, p); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Marshal serializes the signature.
func (s *Signature) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(s)
}

// Unmarshal deserializes the signature.
func (s *Signature) Unmarshal(raw []byte) error {
	if err := amino.UnmarshalBinaryBare(raw, s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key length")
	}
	sig := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: sig}, nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// DeriveEd25519 derives a private key from a master seed following SLIP-0010
// for the given path, for example "m/44'/234'/0'".
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
