package settings

import (
	"strings"
	"time"

	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
)

const (
	DefaultRPCURL         = "https://fullnode.testnet.sui.io:443"
	DefaultGasBudget      = uint64(500_000_000)
	DefaultMoveCallTarget = "0x1::address::length"
)

func NewSettings() *Settings {
	p := &parser{}

	s := &Settings{
		ClientName: getString("clientName", "movecall"),
		LogLevel:   getString("logLevel", "INFO"),
		PrettyLogs: getBool("PRETTY_LOGS", true),
		Sui: SuiSettings{
			RPCURL:        getString("sui_rpc_url", DefaultRPCURL),
			ConfigDir:     getString("sui_config_dir", ""),
			ClientConfig:  getString("sui_client_config", "client.yaml"),
			Keystore:      getString("sui_keystore", "sui.keystore"),
			WalletTimeout: p.getDuration("wallet_timeout", 30*time.Second),
		},
		Transaction: TransactionSettings{
			GasBudget:      p.getUint64("gas_budget", DefaultGasBudget),
			CoinSelection:  getString("gas_coin_selection", CoinSelectionFirst),
			MoveCallTarget: getString("move_call_target", DefaultMoveCallTarget),
		},
		HTTP: HTTPSettings{
			Timeout: p.getDuration("http_timeout", 60*time.Second),
		},
		Tracing: TracingSettings{
			Enabled:      getBool("tracing_enabled", false),
			CollectorURL: getString("tracing_collector_url", "localhost:4318"),
			SampleRate:   p.getFloat64("tracing_sample_rate", 1.0),
			ServiceName:  getString("tracing_service_name", "movecall"),
		},
		Metrics: MetricsSettings{
			Textfile: getString("metrics_textfile", ""),
		},
	}

	s.invalidKeys = p.invalid

	return s
}

// Validate checks the values the transaction flow depends on.
func (s *Settings) Validate() error {
	if len(s.invalidKeys) > 0 {
		return errors.NewConfigurationError("malformed values for settings: %s", strings.Join(s.invalidKeys, ", "))
	}

	if strings.TrimSpace(s.Sui.RPCURL) == "" {
		return errors.NewConfigurationError("sui_rpc_url must not be empty")
	}

	if s.Transaction.GasBudget == 0 {
		return errors.NewConfigurationError("gas_budget must be greater than zero")
	}

	switch s.Transaction.CoinSelection {
	case CoinSelectionFirst, CoinSelectionSufficient:
	default:
		return errors.NewConfigurationError("unknown gas_coin_selection %q, expected %q or %q",
			s.Transaction.CoinSelection, CoinSelectionFirst, CoinSelectionSufficient)
	}

	if _, err := model.ParseCallTarget(s.Transaction.MoveCallTarget); err != nil {
		return errors.NewConfigurationError("invalid move_call_target", err)
	}

	if s.Sui.WalletTimeout <= 0 {
		return errors.NewConfigurationError("wallet_timeout must be positive")
	}

	if s.Tracing.SampleRate < 0 || s.Tracing.SampleRate > 1 {
		return errors.NewConfigurationError("tracing_sample_rate must be between 0 and 1")
	}

	return nil
}
