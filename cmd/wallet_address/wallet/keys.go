// Package wallet prints the addresses known to the local Sui wallet.
package wallet

import (
	"context"
	"fmt"
	"io"

	"github.com/torrejonv/movecall/settings"
	"github.com/torrejonv/movecall/stores/keystore"
	walletstore "github.com/torrejonv/movecall/stores/wallet"
)

// Addresses describes the active address and the keys available to sign for it.
type Addresses struct {
	Active       string
	ActiveEnv    string
	RPC          string
	ClientConfig string
	// ConfigYAML is client.yaml as it was loaded.
	ConfigYAML  string
	Keystore    string
	Known       []string
	Unsupported int
	CanSign     bool
}

// ListAddresses reads client.yaml and the keystore from the configured Sui directory.
func ListAddresses(ctx context.Context, tSettings *settings.Settings) (*Addresses, error) {
	active, err := walletstore.LoadActive(ctx, tSettings.Sui.ConfigDir, tSettings.Sui.ClientConfig, tSettings.Sui.WalletTimeout)
	if err != nil {
		return nil, err
	}

	result := &Addresses{
		Active:       active.Address,
		ActiveEnv:    active.Config.ActiveEnvName,
		ClientConfig: active.Config.Path(),
		ConfigYAML:   active.Config.StringYAML(),
		Keystore:     walletstore.ResolvePath(active.Dir, tSettings.Sui.Keystore),
	}

	if env, ok := active.Config.ActiveEnv(); ok {
		result.RPC = env.RPC
	}

	ks, err := keystore.Load(result.Keystore)
	if err != nil {
		return nil, err
	}

	result.Known = ks.Addresses()
	result.Unsupported = ks.Unsupported()

	for _, addr := range result.Known {
		if addr == result.Active {
			result.CanSign = true
		}
	}

	return result, nil
}

// Print writes the addresses in the progress format.
func (a *Addresses) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "- Sui active address:\n- %s\n", a.Active)

	if a.ActiveEnv != "" {
		_, _ = fmt.Fprintf(w, "- Active env:\n- %s %s\n", a.ActiveEnv, a.RPC)
	}

	_, _ = fmt.Fprintf(w, "- Keystore %s:\n", a.Keystore)

	for _, addr := range a.Known {
		marker := " "
		if addr == a.Active {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %s\n", marker, addr)
	}

	if a.Unsupported > 0 {
		_, _ = fmt.Fprintf(w, "- %d keystore entries with an unsupported scheme\n", a.Unsupported)
	}

	if !a.CanSign {
		_, _ = fmt.Fprintf(w, "- No key for the active address\n")
	}
}

// PrintConfig writes the loaded client.yaml.
func (a *Addresses) PrintConfig(w io.Writer) {
	_, _ = fmt.Fprintf(w, "- Client config %s:\n%s", a.ClientConfig, a.ConfigYAML)
}
