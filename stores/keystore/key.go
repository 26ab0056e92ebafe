package keystore

import (
	stdecdsa "crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/torrejonv/movecall/errors"
)

// Scheme is the signature scheme flag prefixed to keys, signatures and addresses.
type Scheme byte

const (
	SchemeEd25519   Scheme = 0x00
	SchemeSecp256k1 Scheme = 0x01
	SchemeSecp256r1 Scheme = 0x02
)

// PrivateKeyLength is the raw private key length for every supported scheme.
const PrivateKeyLength = 32

func (s Scheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ed25519"
	case SchemeSecp256k1:
		return "secp256k1"
	case SchemeSecp256r1:
		return "secp256r1"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(s))
	}
}

// ParseScheme maps a scheme name to its flag.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "ed25519":
		return SchemeEd25519, nil
	case "secp256k1":
		return SchemeSecp256k1, nil
	case "secp256r1":
		return SchemeSecp256r1, nil
	default:
		return 0, errors.NewInvalidArgumentError("unsupported key scheme %q", name)
	}
}

// Key is a private key usable for Sui signatures.
type Key interface {
	Scheme() Scheme
	// PublicKey returns the encoded public key (32 bytes ed25519, 33 bytes compressed secp256k1 or secp256r1).
	PublicKey() []byte
	Address() string
	// Sign signs an intent digest and returns the raw scheme signature.
	Sign(digest []byte) ([]byte, error)
	// Export returns flag || private key, the keystore entry encoding.
	Export() []byte
}

// ParseKey decodes flag || 32 byte private key.
func ParseKey(b []byte) (Key, error) {
	if len(b) != 1+PrivateKeyLength {
		return nil, errors.NewInvalidArgumentError("key must be %d bytes, got %d", 1+PrivateKeyLength, len(b))
	}

	scheme := Scheme(b[0])
	seed := b[1:]

	switch scheme {
	case SchemeEd25519:
		return NewEd25519Key(seed)
	case SchemeSecp256k1:
		return NewSecp256k1Key(seed)
	case SchemeSecp256r1:
		return NewSecp256r1Key(seed)
	default:
		return nil, errors.NewInvalidArgumentError("unsupported key scheme %s", scheme)
	}
}

// Supported reports whether keys of scheme can be loaded and used for signing.
func (s Scheme) Supported() bool {
	switch s {
	case SchemeEd25519, SchemeSecp256k1, SchemeSecp256r1:
		return true
	default:
		return false
	}
}

// Generate creates a new random key for scheme.
func Generate(scheme Scheme) (Key, error) {
	switch scheme {
	case SchemeEd25519:
		priv, _, err := crypto.GenerateEd25519Key(rand.Reader)
		if err != nil {
			return nil, errors.NewProcessingError("generating ed25519 key", err)
		}

		return newEd25519FromLibp2p(priv)
	case SchemeSecp256k1:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, errors.NewProcessingError("generating secp256k1 key", err)
		}

		return &secp256k1Key{priv: priv}, nil
	case SchemeSecp256r1:
		priv, err := stdecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, errors.NewProcessingError("generating secp256r1 key", err)
		}

		return &secp256r1Key{priv: priv}, nil
	default:
		return nil, errors.NewInvalidArgumentError("unsupported key scheme %s", scheme)
	}
}

type ed25519Key struct {
	priv crypto.PrivKey
	seed []byte
	pub  []byte
}

// NewEd25519Key builds an ed25519 key from its 32 byte seed.
func NewEd25519Key(seed []byte) (Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.NewInvalidArgumentError("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	priv, err := crypto.UnmarshalEd25519PrivateKey(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid ed25519 key", err)
	}

	return newEd25519FromLibp2p(priv)
}

func newEd25519FromLibp2p(priv crypto.PrivKey) (Key, error) {
	raw, err := priv.Raw()
	if err != nil {
		return nil, errors.NewProcessingError("reading ed25519 key", err)
	}

	pub, err := priv.GetPublic().Raw()
	if err != nil {
		return nil, errors.NewProcessingError("reading ed25519 public key", err)
	}

	return &ed25519Key{
		priv: priv,
		seed: append([]byte(nil), raw[:ed25519.SeedSize]...),
		pub:  pub,
	}, nil
}

func (k *ed25519Key) Scheme() Scheme {
	return SchemeEd25519
}

func (k *ed25519Key) PublicKey() []byte {
	return append([]byte(nil), k.pub...)
}

func (k *ed25519Key) Address() string {
	return DeriveAddress(SchemeEd25519, k.pub)
}

// Sign signs the digest directly.
func (k *ed25519Key) Sign(digest []byte) ([]byte, error) {
	return k.priv.Sign(digest)
}

func (k *ed25519Key) Export() []byte {
	return append([]byte{byte(SchemeEd25519)}, k.seed...)
}

type secp256k1Key struct {
	priv *secp256k1.PrivateKey
}

// NewSecp256k1Key builds a secp256k1 key from its 32 byte scalar.
func NewSecp256k1Key(b []byte) (Key, error) {
	if len(b) != PrivateKeyLength {
		return nil, errors.NewInvalidArgumentError("secp256k1 key must be %d bytes, got %d", PrivateKeyLength, len(b))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, errors.NewInvalidArgumentError("secp256k1 key is out of range")
	}

	return &secp256k1Key{priv: secp256k1.PrivKeyFromBytes(b)}, nil
}

func (k *secp256k1Key) Scheme() Scheme {
	return SchemeSecp256k1
}

func (k *secp256k1Key) PublicKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

func (k *secp256k1Key) Address() string {
	return DeriveAddress(SchemeSecp256k1, k.PublicKey())
}

// Sign hashes the digest with sha256 and returns the 64 byte r || s signature with low S.
func (k *secp256k1Key) Sign(digest []byte) ([]byte, error) {
	hash := sha256.Sum256(digest)

	compact := ecdsa.SignCompact(k.priv, hash[:], true)
	if len(compact) != 65 {
		return nil, errors.NewSigningError("unexpected compact signature length %d", len(compact))
	}

	return compact[1:], nil
}

func (k *secp256k1Key) Export() []byte {
	return append([]byte{byte(SchemeSecp256k1)}, k.priv.Serialize()...)
}

type secp256r1Key struct {
	priv *stdecdsa.PrivateKey
}

// NewSecp256r1Key builds a secp256r1 (P-256) key from its 32 byte scalar.
func NewSecp256r1Key(b []byte) (Key, error) {
	if len(b) != PrivateKeyLength {
		return nil, errors.NewInvalidArgumentError("secp256r1 key must be %d bytes, got %d", PrivateKeyLength, len(b))
	}

	curve := elliptic.P256()

	d := new(big.Int).SetBytes(b)
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, errors.NewInvalidArgumentError("secp256r1 key is out of range")
	}

	priv := &stdecdsa.PrivateKey{D: d}
	priv.Curve = curve
	priv.X, priv.Y = curve.ScalarBaseMult(b)

	return &secp256r1Key{priv: priv}, nil
}

func (k *secp256r1Key) Scheme() Scheme {
	return SchemeSecp256r1
}

func (k *secp256r1Key) PublicKey() []byte {
	return elliptic.MarshalCompressed(k.priv.Curve, k.priv.X, k.priv.Y)
}

func (k *secp256r1Key) Address() string {
	return DeriveAddress(SchemeSecp256r1, k.PublicKey())
}

// Sign hashes the digest with sha256 and returns the 64 byte r || s signature with low S.
func (k *secp256r1Key) Sign(digest []byte) ([]byte, error) {
	hash := sha256.Sum256(digest)

	r, sigS, err := stdecdsa.Sign(rand.Reader, k.priv, hash[:])
	if err != nil {
		return nil, errors.NewSigningError("secp256r1 signing failed", err)
	}

	n := k.priv.Curve.Params().N
	if sigS.Cmp(new(big.Int).Rsh(n, 1)) > 0 {
		sigS.Sub(n, sigS)
	}

	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	sigS.FillBytes(sig[32:])

	return sig, nil
}

func (k *secp256r1Key) Export() []byte {
	out := make([]byte, 1+PrivateKeyLength)
	out[0] = byte(SchemeSecp256r1)
	k.priv.D.FillBytes(out[1:])

	return out
}
