// Package settings prints the effective configuration.
package settings

import (
	"fmt"
	"io"

	"github.com/ordishs/gocore"
	"github.com/torrejonv/movecall/settings"
)

// CmdSettings writes the gocore stats, the version and the resolved movecall settings.
func CmdSettings(w io.Writer, tSettings *settings.Settings, version string, commit string) {
	stats := gocore.Config().Stats()
	_, _ = fmt.Fprintf(w, "STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", stats, version, commit)

	_, _ = fmt.Fprintf(w, "SETTINGS\n--------\n")
	_, _ = fmt.Fprintf(w, "sui_rpc_url=%s\n", tSettings.Sui.RPCURL)
	_, _ = fmt.Fprintf(w, "sui_config_dir=%s\n", tSettings.Sui.ConfigDir)
	_, _ = fmt.Fprintf(w, "sui_client_config=%s\n", tSettings.Sui.ClientConfig)
	_, _ = fmt.Fprintf(w, "sui_keystore=%s\n", tSettings.Sui.Keystore)
	_, _ = fmt.Fprintf(w, "wallet_timeout=%s\n", tSettings.Sui.WalletTimeout)
	_, _ = fmt.Fprintf(w, "gas_budget=%d\n", tSettings.Transaction.GasBudget)
	_, _ = fmt.Fprintf(w, "gas_coin_selection=%s\n", tSettings.Transaction.CoinSelection)
	_, _ = fmt.Fprintf(w, "move_call_target=%s\n", tSettings.Transaction.MoveCallTarget)
	_, _ = fmt.Fprintf(w, "http_timeout=%s\n", tSettings.HTTP.Timeout)
	_, _ = fmt.Fprintf(w, "tracing_enabled=%t\n", tSettings.Tracing.Enabled)
	_, _ = fmt.Fprintf(w, "metrics_textfile=%s\n", tSettings.Metrics.Textfile)
}
