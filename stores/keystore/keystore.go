// Package keystore holds Sui private keys loaded from a sui.keystore file and
// produces serialized signatures over intent messages.
//
// A keystore file is a JSON array of base64 strings, each encoding a scheme
// flag byte followed by a 32 byte private key. Entries of schemes that cannot
// sign here are kept as is and written back by Save.
package keystore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pattonkan/sui-go/sui"
	"github.com/pattonkan/sui-go/suisigner"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
	"golang.org/x/crypto/blake2b"
)

// DefaultFileName is the keystore file name used by the Sui CLI.
const DefaultFileName = "sui.keystore"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is an in-memory keystore indexed by normalized address.
type Store struct {
	mu   sync.RWMutex
	path string
	keys map[string]Key
	// order preserves file order for Save
	order []entry
}

// entry is one keystore slot: a loaded key by address, or the raw bytes of an unsupported one.
type entry struct {
	addr string
	raw  []byte
}

// New returns an empty keystore bound to path.
func New(path string) *Store {
	return &Store{
		path: path,
		keys: make(map[string]Key),
	}
}

// Load reads and decodes the keystore at path.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigurationError("keystore %s not found", path, err)
		}

		return nil, errors.NewStorageError("cannot read keystore %s", path, err)
	}

	return Decode(path, raw)
}

// Decode parses keystore contents. path is only kept for Save and messages.
func Decode(path string, raw []byte) (*Store, error) {
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.NewConfigurationError("malformed keystore %s", path, err)
	}

	s := New(path)

	for i, encoded := range entries {
		b, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.NewConfigurationError("keystore %s entry %d is not base64", path, i, err)
		}

		if len(b) > 0 && !Scheme(b[0]).Supported() {
			s.order = append(s.order, entry{raw: b})
			continue
		}

		key, err := ParseKey(b)
		if err != nil {
			return nil, errors.NewConfigurationError("keystore %s entry %d", path, i, err)
		}

		s.add(key)
	}

	return s, nil
}

// Path returns the file backing the keystore.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of keys held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.keys)
}

// Unsupported returns the number of entries kept without being loaded.
func (s *Store) Unsupported() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order) - len(s.keys)
}

// Addresses returns the addresses of all keys, sorted.
func (s *Store) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addrs := make([]string, 0, len(s.keys))
	for addr := range s.keys {
		addrs = append(addrs, addr)
	}

	sort.Strings(addrs)

	return addrs
}

// Key returns the key for address.
func (s *Store) Key(address string) (Key, error) {
	addr, err := model.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	key, ok := s.keys[addr]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.NewKeyNotFoundError("no key for address %s in keystore %s", addr, s.path)
	}

	return key, nil
}

// Add inserts key, replacing any key with the same address. It returns the key's address.
func (s *Store) Add(key Key) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(key)
}

func (s *Store) add(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(key)
}

func (s *Store) addLocked(key Key) string {
	addr := key.Address()
	if _, exists := s.keys[addr]; !exists {
		s.order = append(s.order, entry{addr: addr})
	}

	s.keys[addr] = key

	return addr
}

// Save writes the keystore back to its file with owner-only permissions.
func (s *Store) Save() error {
	s.mu.RLock()
	entries := make([]string, 0, len(s.order))

	for _, e := range s.order {
		raw := e.raw
		if e.addr != "" {
			raw = s.keys[e.addr].Export()
		}

		entries = append(entries, base64.StdEncoding.EncodeToString(raw))
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.NewProcessingError("encoding keystore", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.NewStorageError("creating keystore directory for %s", s.path, err)
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.NewStorageError("writing keystore %s", s.path, err)
	}

	return nil
}

// SignSecure signs msg wrapped in intent with the key for address and returns
// the serialized signature flag || signature || public key.
func (s *Store) SignSecure(address string, msg []byte, intent suisigner.Intent) ([]byte, error) {
	key, err := s.Key(address)
	if err != nil {
		return nil, err
	}

	digest := IntentDigest(intent, msg)

	sig, err := key.Sign(digest[:])
	if err != nil {
		return nil, errors.NewSigningError("signing for %s", key.Address(), err)
	}

	return SerializeSignature(key, sig), nil
}

// IntentDigest returns blake2b-256(intent || msg).
func IntentDigest(intent suisigner.Intent, msg []byte) [32]byte {
	return blake2b.Sum256(suisigner.MessageWithIntent(intent, msg))
}

// SerializeSignature concatenates the scheme flag, the raw signature and the public key.
func SerializeSignature(key Key, sig []byte) []byte {
	pub := key.PublicKey()

	out := make([]byte, 0, 1+len(sig)+len(pub))
	out = append(out, byte(key.Scheme()))
	out = append(out, sig...)
	out = append(out, pub...)

	return out
}

// DeriveAddress returns blake2b-256(flag || pubkey) as a normalized address.
func DeriveAddress(scheme Scheme, pub []byte) string {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, byte(scheme))
	buf = append(buf, pub...)

	return sui.Address(blake2b.Sum256(buf)).String()
}
