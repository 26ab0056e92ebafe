// Package keygen generates a new Sui key and appends it to a keystore file.
//
// Ed25519 keys come from libp2p's crypto package, secp256k1 keys from the
// decred implementation. The keystore is created when it does not exist yet.
package keygen

import (
	"fmt"
	"io"
	"os"

	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/stores/keystore"
)

// Result describes a generated key.
type Result struct {
	Address  string
	Scheme   keystore.Scheme
	Keystore string
}

// Generate creates a key for scheme and appends it to the keystore at path.
// An existing keystore that cannot be parsed is left untouched.
func Generate(path string, scheme keystore.Scheme) (*Result, error) {
	ks, err := openOrCreate(path)
	if err != nil {
		return nil, err
	}

	key, err := keystore.Generate(scheme)
	if err != nil {
		return nil, err
	}

	addr := ks.Add(key)

	if err = ks.Save(); err != nil {
		return nil, err
	}

	return &Result{
		Address:  addr,
		Scheme:   scheme,
		Keystore: path,
	}, nil
}

// Print writes the result in the progress format used by the other commands.
func (r *Result) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "- New %s address:\n- %s\n", r.Scheme, r.Address)
	_, _ = fmt.Fprintf(w, "- Keystore:\n- %s\n", r.Keystore)
}

func openOrCreate(path string) (*keystore.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return keystore.New(path), nil
		}

		return nil, errors.NewStorageError("cannot access keystore %s", path, err)
	}

	return keystore.Load(path)
}
