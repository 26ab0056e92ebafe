package settings

import (
	"time"
)

const (
	// CoinSelectionFirst pays gas with the first coin the node returns.
	CoinSelectionFirst = "first"
	// CoinSelectionSufficient pays gas with the first coin whose balance covers the gas budget.
	CoinSelectionSufficient = "sufficient"
)

type SuiSettings struct {
	RPCURL        string
	ConfigDir     string
	ClientConfig  string
	Keystore      string
	WalletTimeout time.Duration
}

type TransactionSettings struct {
	GasBudget      uint64
	CoinSelection  string
	MoveCallTarget string
}

type HTTPSettings struct {
	Timeout time.Duration
}

type TracingSettings struct {
	Enabled      bool
	CollectorURL string
	SampleRate   float64
	ServiceName  string
}

type MetricsSettings struct {
	Textfile string
}

type Settings struct {
	ClientName  string
	Version     string
	Commit      string
	LogLevel    string
	PrettyLogs  bool
	Sui         SuiSettings
	Transaction TransactionSettings
	HTTP        HTTPSettings
	Tracing     TracingSettings
	Metrics     MetricsSettings

	invalidKeys []string
}
