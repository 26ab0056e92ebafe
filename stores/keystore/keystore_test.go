package keystore

import (
	"bytes"
	stdecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/pattonkan/sui-go/sui"
	"github.com/pattonkan/sui-go/suisigner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torrejonv/movecall/errors"
	"golang.org/x/crypto/blake2b"
)

func encodedEntry(scheme Scheme, fill byte) string {
	b := append([]byte{byte(scheme)}, bytes.Repeat([]byte{fill}, PrivateKeyLength)...)
	return base64.StdEncoding.EncodeToString(b)
}

func keystoreJSON(entries ...string) []byte {
	var buf bytes.Buffer

	buf.WriteString("[")

	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}

		buf.WriteString(`"` + e + `"`)
	}

	buf.WriteString("]")

	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeEd25519, 0x11), encodedEntry(SchemeSecp256k1, 0x22)))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())

	addrs := s.Addresses()
	require.Len(t, addrs, 2)

	for _, addr := range addrs {
		assert.Len(t, addr, 66)
		assert.Equal(t, "0x", addr[:2])

		key, err := s.Key(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, key.Address())
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"not json", []byte("not json")},
		{"not an array of strings", []byte(`{"a":1}`)},
		{"not base64", keystoreJSON("***")},
		{"short key", keystoreJSON(base64.StdEncoding.EncodeToString([]byte{0, 1, 2}))},
		{"short secp256r1 key", keystoreJSON(base64.StdEncoding.EncodeToString([]byte{byte(SchemeSecp256r1), 1, 2}))},
		{"secp256r1 scalar above order", keystoreJSON(encodedEntry(SchemeSecp256r1, 0xff))},
		{"zero secp256k1 scalar", keystoreJSON(encodedEntry(SchemeSecp256k1, 0x00))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("mem", tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultFileName))

	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestKeyNotFound(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeEd25519, 0x11)))
	require.NoError(t, err)

	_, err = s.SignSecure("0x1", []byte("tx"), suisigner.DefaultIntent())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrKeyNotFound))
}

func TestDeterministicAddress(t *testing.T) {
	a, err := Decode("a", keystoreJSON(encodedEntry(SchemeEd25519, 0x33)))
	require.NoError(t, err)

	b, err := Decode("b", keystoreJSON(encodedEntry(SchemeEd25519, 0x33)))
	require.NoError(t, err)

	c, err := Decode("c", keystoreJSON(encodedEntry(SchemeSecp256k1, 0x33)))
	require.NoError(t, err)

	assert.Equal(t, a.Addresses(), b.Addresses())
	assert.NotEqual(t, a.Addresses(), c.Addresses())
}

func TestSignSecureEd25519(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeEd25519, 0x44)))
	require.NoError(t, err)

	addr := s.Addresses()[0]
	msg := []byte("transaction bytes")

	serialized, err := s.SignSecure(addr, msg, suisigner.DefaultIntent())
	require.NoError(t, err)
	require.Len(t, serialized, 1+64+32)
	assert.Equal(t, byte(SchemeEd25519), serialized[0])

	sig := serialized[1:65]
	pubBytes := serialized[65:]

	assert.Equal(t, addr, DeriveAddress(SchemeEd25519, pubBytes))

	pub, err := crypto.UnmarshalEd25519PublicKey(pubBytes)
	require.NoError(t, err)

	digest := IntentDigest(suisigner.DefaultIntent(), msg)

	ok, err := pub.Verify(digest[:], sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pub.Verify(msg, sig)
	require.NoError(t, err)
	assert.False(t, ok, "signature must cover the intent digest, not the raw message")

	other, err := s.SignSecure(addr, []byte("other bytes"), suisigner.DefaultIntent())
	require.NoError(t, err)
	assert.NotEqual(t, serialized, other)
}

func TestSignSecureSecp256k1(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeSecp256k1, 0x55)))
	require.NoError(t, err)

	addr := s.Addresses()[0]
	msg := []byte("transaction bytes")

	serialized, err := s.SignSecure(addr, msg, suisigner.DefaultIntent())
	require.NoError(t, err)
	require.Len(t, serialized, 1+64+33)
	assert.Equal(t, byte(SchemeSecp256k1), serialized[0])

	pubBytes := serialized[65:]
	assert.Equal(t, addr, DeriveAddress(SchemeSecp256k1, pubBytes))

	var r, sScalar secp256k1.ModNScalar

	require.False(t, r.SetByteSlice(serialized[1:33]))
	require.False(t, sScalar.SetByteSlice(serialized[33:65]))
	assert.False(t, sScalar.IsOverHalfOrder(), "S must be normalized to the lower half")

	pub, err := secp256k1.ParsePubKey(pubBytes)
	require.NoError(t, err)

	digest := IntentDigest(suisigner.DefaultIntent(), msg)
	hash := sha256.Sum256(digest[:])

	assert.True(t, ecdsa.NewSignature(&r, &sScalar).Verify(hash[:], pub))
}

var personalMessage = suisigner.Intent{
	Scope:   suisigner.IntentScope{PersonalMessage: &sui.EmptyEnum{}},
	Version: suisigner.IntentVersion{V0: &sui.EmptyEnum{}},
	AppId:   suisigner.AppId{Sui: &sui.EmptyEnum{}},
}

func TestIntentDigestDependsOnIntent(t *testing.T) {
	msg := []byte("payload")

	assert.NotEqual(t,
		IntentDigest(suisigner.DefaultIntent(), msg),
		IntentDigest(personalMessage, msg),
	)

	intent := suisigner.DefaultIntent()
	assert.Equal(t, []byte{0, 0, 0}, intent.Bytes())

	payload := append([]byte{0, 0, 0}, msg...)
	assert.Equal(t, blake2b.Sum256(payload), IntentDigest(suisigner.DefaultIntent(), msg))
}

func TestGenerateAddSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	s := New(path)

	for _, scheme := range []Scheme{SchemeEd25519, SchemeSecp256k1, SchemeSecp256r1} {
		key, err := Generate(scheme)
		require.NoError(t, err)
		assert.Equal(t, scheme, key.Scheme())
		assert.Equal(t, key.Address(), s.Add(key))
	}

	require.NoError(t, s.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Addresses(), loaded.Addresses())

	for _, addr := range s.Addresses() {
		orig, err := s.Key(addr)
		require.NoError(t, err)

		again, err := loaded.Key(addr)
		require.NoError(t, err)

		assert.Equal(t, orig.Export(), again.Export())
	}
}

func TestParseScheme(t *testing.T) {
	scheme, err := ParseScheme("secp256k1")
	require.NoError(t, err)
	assert.Equal(t, SchemeSecp256k1, scheme)
	assert.Equal(t, "secp256k1", scheme.String())

	scheme, err = ParseScheme("secp256r1")
	require.NoError(t, err)
	assert.Equal(t, SchemeSecp256r1, scheme)

	_, err = ParseScheme("rsa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestDecodeMixedSchemes(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeEd25519, 0x11), encodedEntry(SchemeSecp256r1, 0x22)))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.Unsupported())

	ed, err := NewEd25519Key(bytes.Repeat([]byte{0x11}, PrivateKeyLength))
	require.NoError(t, err)

	serialized, err := s.SignSecure(ed.Address(), []byte("tx"), suisigner.DefaultIntent())
	require.NoError(t, err)
	assert.Equal(t, byte(SchemeEd25519), serialized[0])
}

func TestSignSecureSecp256r1(t *testing.T) {
	s, err := Decode("mem", keystoreJSON(encodedEntry(SchemeSecp256r1, 0x66)))
	require.NoError(t, err)

	addr := s.Addresses()[0]
	msg := []byte("transaction bytes")

	serialized, err := s.SignSecure(addr, msg, suisigner.DefaultIntent())
	require.NoError(t, err)
	require.Len(t, serialized, 1+64+33)
	assert.Equal(t, byte(SchemeSecp256r1), serialized[0])

	pubBytes := serialized[65:]
	assert.Equal(t, addr, DeriveAddress(SchemeSecp256r1, pubBytes))

	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, pubBytes)
	require.NotNil(t, x)

	r := new(big.Int).SetBytes(serialized[1:33])
	sigS := new(big.Int).SetBytes(serialized[33:65])
	assert.True(t, sigS.Cmp(new(big.Int).Rsh(curve.Params().N, 1)) <= 0, "S must be normalized to the lower half")

	digest := IntentDigest(suisigner.DefaultIntent(), msg)
	hash := sha256.Sum256(digest[:])

	assert.True(t, stdecdsa.Verify(&stdecdsa.PublicKey{Curve: curve, X: x, Y: y}, hash[:], r, sigS))
}

func TestUnknownSchemeEntriesArePreserved(t *testing.T) {
	unknown := append([]byte{0x05}, bytes.Repeat([]byte{0x77}, 40)...)
	raw := keystoreJSON(
		encodedEntry(SchemeEd25519, 0x11),
		base64.StdEncoding.EncodeToString(unknown),
		encodedEntry(SchemeSecp256k1, 0x22),
	)

	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Unsupported())

	for _, addr := range s.Addresses() {
		_, err = s.SignSecure(addr, []byte("tx"), suisigner.DefaultIntent())
		require.NoError(t, err)
	}

	require.NoError(t, s.Save())

	var saved []string

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Len(t, saved, 3)
	assert.Equal(t, encodedEntry(SchemeEd25519, 0x11), saved[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString(unknown), saved[1])
	assert.Equal(t, encodedEntry(SchemeSecp256k1, 0x22), saved[2])
}
