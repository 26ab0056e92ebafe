// Package movecallcli is the movecall command line: it runs the Move call flow
// against a Sui full node and offers a few wallet helpers.
package movecallcli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/torrejonv/movecall/cmd/keygen"
	cmdSettings "github.com/torrejonv/movecall/cmd/settings"
	"github.com/torrejonv/movecall/cmd/wallet_address/wallet"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/services/executor"
	"github.com/torrejonv/movecall/settings"
	"github.com/torrejonv/movecall/stores/keystore"
	walletstore "github.com/torrejonv/movecall/stores/wallet"
	"github.com/torrejonv/movecall/ulogger"
	"github.com/torrejonv/movecall/util"
	"github.com/torrejonv/movecall/util/tracing"
	"github.com/urfave/cli/v2"
)

const progname = "movecall"

const (
	flagEnvFile       = "env-file"
	flagRPCURL        = "rpc-url"
	flagConfigDir     = "config-dir"
	flagGasBudget     = "gas-budget"
	flagTarget        = "target"
	flagCoinSelection = "coin-selection"
	flagLogLevel      = "log-level"
	flagScheme        = "scheme"
	flagShowConfig    = "show-config"
)

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	version string
	commit  string
}

// Start runs the command line with args and returns the process exit status.
func Start(args []string, stdout, stderr io.Writer, version, commit string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: stdout, stderr: stderr, version: version, commit: commit}

	if err := a.cliApp().RunContext(ctx, args); err != nil {
		_, _ = fmt.Fprintln(stderr, describe(err))
		return 1
	}

	return 0
}

func (a *app) cliApp() *cli.App {
	return &cli.App{
		Name:      progname,
		Usage:     "Call a Move function on a Sui network with the local wallet",
		Version:   fmt.Sprintf("%s (%s)", a.version, a.commit),
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  flagEnvFile,
				Usage: "load environment variables from this file before reading settings",
			},
			&cli.StringFlag{
				Name:  flagRPCURL,
				Usage: "Sui full node JSON-RPC URL (sui_rpc_url)",
			},
			&cli.PathFlag{
				Name:  flagConfigDir,
				Usage: "Sui configuration directory holding client.yaml and sui.keystore (sui_config_dir)",
			},
			&cli.Uint64Flag{
				Name:  flagGasBudget,
				Usage: "gas budget in MIST (gas_budget)",
			},
			&cli.StringFlag{
				Name:  flagTarget,
				Usage: "Move function to call as package::module::function (move_call_target)",
			},
			&cli.StringFlag{
				Name:  flagCoinSelection,
				Usage: "gas coin selection policy, first or sufficient (gas_coin_selection)",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "log level: DEBUG, INFO, WARN, ERROR (logLevel)",
			},
		},
		Before: func(c *cli.Context) error {
			if path := c.Path(flagEnvFile); path != "" {
				if err := godotenv.Load(path); err != nil {
					return errors.NewConfigurationError("cannot load env file %s", path, err)
				}
			}

			return nil
		},
		Action: a.run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Build, sign and execute the Move call transaction (default)",
				Action: a.run,
			},
			{
				Name:   "keygen",
				Usage:  "Generate a new key and append it to the keystore",
				Action: a.keygen,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagScheme,
						Usage: "key scheme, ed25519, secp256k1 or secp256r1",
						Value: "ed25519",
					},
				},
			},
			{
				Name:   "address",
				Usage:  "Print the active address and the keystore addresses",
				Action: a.address,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagShowConfig,
						Usage: "also print client.yaml as loaded",
					},
				},
			},
			{
				Name:   "settings",
				Usage:  "Print the effective settings",
				Action: a.printSettings,
			},
		},
	}
}

// loadSettings reads gocore settings and applies the command line overrides.
func (a *app) loadSettings(c *cli.Context) (*settings.Settings, error) {
	tSettings := settings.NewSettings()
	tSettings.Version = a.version
	tSettings.Commit = a.commit

	if c.IsSet(flagRPCURL) {
		tSettings.Sui.RPCURL = c.String(flagRPCURL)
	}

	if c.IsSet(flagConfigDir) {
		tSettings.Sui.ConfigDir = c.Path(flagConfigDir)
	}

	if c.IsSet(flagGasBudget) {
		tSettings.Transaction.GasBudget = c.Uint64(flagGasBudget)
	}

	if c.IsSet(flagTarget) {
		tSettings.Transaction.MoveCallTarget = c.String(flagTarget)
	}

	if c.IsSet(flagCoinSelection) {
		tSettings.Transaction.CoinSelection = c.String(flagCoinSelection)
	}

	if c.IsSet(flagLogLevel) {
		tSettings.LogLevel = c.String(flagLogLevel)
	}

	if err := tSettings.Validate(); err != nil {
		return nil, err
	}

	util.SetDefaultHTTPTimeout(tSettings.HTTP.Timeout)

	return tSettings, nil
}

func (a *app) logger(tSettings *settings.Settings) ulogger.Logger {
	return ulogger.New(progname,
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithPrettyLogs(tSettings.PrettyLogs),
		ulogger.WithWriter(a.stderr),
	)
}

func (a *app) run(c *cli.Context) error {
	tSettings, err := a.loadSettings(c)
	if err != nil {
		return err
	}

	logger := a.logger(tSettings)

	if err = tracing.InitTracer(tSettings); err != nil {
		logger.Warnf("tracing disabled: %v", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if shutdownErr := tracing.ShutdownTracer(shutdownCtx); shutdownErr != nil {
			logger.Warnf("tracer shutdown: %v", shutdownErr)
		}
	}()

	_, err = executor.New(logger, tSettings, executor.WithOutput(a.stdout)).Run(c.Context)

	if path := tSettings.Metrics.Textfile; path != "" {
		if metricsErr := executor.WriteMetrics(path); metricsErr != nil {
			logger.Warnf("cannot write metrics to %s: %v", path, metricsErr)
		}
	}

	return err
}

func (a *app) keygen(c *cli.Context) error {
	tSettings, err := a.loadSettings(c)
	if err != nil {
		return err
	}

	scheme, err := keystore.ParseScheme(c.String(flagScheme))
	if err != nil {
		return err
	}

	dir, err := walletstore.ConfigDir(tSettings.Sui.ConfigDir)
	if err != nil {
		return err
	}

	path := walletstore.ResolvePath(dir, tSettings.Sui.Keystore)

	result, err := keygen.Generate(path, scheme)
	if err != nil {
		return err
	}

	a.logger(tSettings).Debugf("[keygen] added %s key %s to %s", scheme, result.Address, path)
	result.Print(a.stdout)

	return nil
}

func (a *app) address(c *cli.Context) error {
	tSettings, err := a.loadSettings(c)
	if err != nil {
		return err
	}

	addrs, err := wallet.ListAddresses(c.Context, tSettings)
	if err != nil {
		return err
	}

	addrs.Print(a.stdout)

	if c.Bool(flagShowConfig) {
		addrs.PrintConfig(a.stdout)
	}

	return nil
}

func (a *app) printSettings(c *cli.Context) error {
	tSettings, err := a.loadSettings(c)
	if err != nil {
		return err
	}

	cmdSettings.CmdSettings(a.stdout, tSettings, a.version, a.commit)

	return nil
}

// describe renders err as a single "Error: ..." line.
func describe(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "Error:") {
		return msg
	}

	return "Error: " + msg
}
