// Package executor runs the move call flow: connect to a full node, resolve
// the active wallet address, pick a gas coin, read the gas price, build a
// single Move call transaction, sign it with the local keystore and submit it.
//
// Every step runs once and in order. The first error aborts the run and no
// later step is attempted.
package executor

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pattonkan/sui-go/suisigner"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
	"github.com/torrejonv/movecall/services/node"
	"github.com/torrejonv/movecall/settings"
	"github.com/torrejonv/movecall/stores/keystore"
	"github.com/torrejonv/movecall/stores/wallet"
	"github.com/torrejonv/movecall/ulogger"
	"github.com/torrejonv/movecall/util/tracing"
)

// Dialer connects to the full node at url.
type Dialer func(ctx context.Context, logger ulogger.Logger, url string) (node.ClientI, error)

// DialNode is the default Dialer.
func DialNode(ctx context.Context, logger ulogger.Logger, url string) (node.ClientI, error) {
	client, err := node.Dial(ctx, logger, url)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Result describes a completed run.
type Result struct {
	RunID       string
	APIVersion  string
	Digest      string
	Sender      string
	GasCoin     *model.Coin
	GasPrice    uint64
	GasBudget   uint64
	Transaction *model.Transaction
	Signature   []byte
}

type Executor struct {
	logger   ulogger.Logger
	settings *settings.Settings
	out      io.Writer
	dial     Dialer
	tracer   *tracing.UTracer
	progress *progress
}

type Option func(e *Executor)

// WithOutput sets where progress is printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Executor) {
		e.out = w
	}
}

// WithDialer replaces the node dialer.
func WithDialer(dial Dialer) Option {
	return func(e *Executor) {
		e.dial = dial
	}
}

func New(logger ulogger.Logger, tSettings *settings.Settings, opts ...Option) *Executor {
	initPrometheusMetrics()

	e := &Executor{
		logger:   logger,
		settings: tSettings,
		out:      os.Stdout,
		dial:     DialNode,
		tracer:   tracing.Tracer("executor"),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.progress = &progress{w: e.out}

	return e
}

const (
	stepBuildClient   = "build_client"
	stepActiveAddress = "active_address"
	stepGasCoin       = "gas_coin"
	stepGasPrice      = "gas_price"
	stepCreatePTB     = "create_ptb"
	stepBuildTxData   = "build_tx_data"
	stepSign          = "sign"
	stepExecute       = "execute"
)

// Run performs the whole flow once. Nothing is carried over between runs.
func (e *Executor) Run(ctx context.Context) (result *Result, err error) {
	runID := uuid.New().String()

	ctx, _, endSpan := e.tracer.Start(ctx, "Executor:Run",
		tracing.WithTag("run_id", runID),
		tracing.WithTag("rpc_url", e.settings.Sui.RPCURL),
		tracing.WithLogMessage(e.logger, "[Run] %s calling %s on %s", runID, e.settings.Transaction.MoveCallTarget, e.settings.Sui.RPCURL),
	)

	defer func() {
		endSpan(err)

		outcome := "success"
		if err != nil {
			outcome = errors.GetErrorCategory(err)
		}

		prometheusRuns.WithLabelValues(outcome).Inc()
	}()

	result = &Result{RunID: runID, GasBudget: e.settings.Transaction.GasBudget}
	p := e.progress

	p.start()

	var client node.ClientI

	if err = e.step(ctx, stepBuildClient, "Building Sui client", func(ctx context.Context) error {
		var dialErr error

		client, dialErr = e.dial(ctx, e.logger, e.settings.Sui.RPCURL)

		return dialErr
	}); err != nil {
		return nil, err
	}

	result.APIVersion = client.APIVersion()
	p.value("Sui API version", "%s", result.APIVersion)
	p.end(false)

	var walletDir string

	if err = e.step(ctx, stepActiveAddress, "Getting active Sui address", func(ctx context.Context) error {
		var stepErr error

		walletDir, result.Sender, stepErr = e.activeAddress(ctx)

		return stepErr
	}); err != nil {
		return nil, err
	}

	p.value("Sui active address", "%s", result.Sender)
	p.end(false)

	if err = e.step(ctx, stepGasCoin, "Finding gas coin", func(ctx context.Context) error {
		coins, stepErr := client.Coins(ctx, result.Sender)
		if stepErr != nil {
			return stepErr
		}

		result.GasCoin, stepErr = SelectGasCoin(coins, e.settings.Transaction.CoinSelection, result.GasBudget, result.Sender)

		return stepErr
	}); err != nil {
		return nil, err
	}

	p.value("Gas coin object ID", "%s", result.GasCoin.ObjectID)
	p.end(false)

	if err = e.step(ctx, stepGasPrice, "Getting gas price", func(ctx context.Context) error {
		var stepErr error

		result.GasPrice, stepErr = client.ReferenceGasPrice(ctx)

		return stepErr
	}); err != nil {
		return nil, err
	}

	p.value("Gas price", "%d MIST", result.GasPrice)
	p.end(false)

	plan := &model.TransactionPlan{
		Sender:     result.Sender,
		GasPayment: []*model.Coin{result.GasCoin},
		GasBudget:  result.GasBudget,
		GasPrice:   result.GasPrice,
	}

	if err = e.step(ctx, stepCreatePTB, "Creating PTB", func(_ context.Context) error {
		target, stepErr := model.ParseCallTarget(e.settings.Transaction.MoveCallTarget)
		if stepErr != nil {
			return stepErr
		}

		pt, stepErr := model.BuildProgrammable(target)
		if stepErr != nil {
			return stepErr
		}

		plan.Target = target
		plan.Programmable = &pt

		return nil
	}); err != nil {
		return nil, err
	}

	p.value("Programmable TX", "%s", strings.TrimSuffix(structDump.Sdump(*plan.Programmable), "\n"))
	p.end(false)

	if err = e.quietStep(ctx, stepBuildTxData, func(_ context.Context) error {
		var stepErr error

		result.Transaction, stepErr = plan.Build()

		return stepErr
	}); err != nil {
		return nil, err
	}

	e.logger.Debugf("[Run] transaction data (%d bytes):\n%s", len(result.Transaction.Bytes), structDump.Sdump(result.Transaction.Data))

	if err = e.step(ctx, stepSign, "Signing TX", func(_ context.Context) error {
		var stepErr error

		result.Signature, stepErr = e.sign(walletDir, result.Sender, result.Transaction.Bytes)

		return stepErr
	}); err != nil {
		return nil, err
	}

	p.end(false)

	if err = e.step(ctx, stepExecute, "Executing TX", func(ctx context.Context) error {
		executed, stepErr := client.Execute(ctx, result.Transaction.Bytes, [][]byte{result.Signature})
		if stepErr != nil {
			return stepErr
		}

		result.Digest = executed.Digest

		return nil
	}); err != nil {
		e.reportFailedDigest(err)
		return nil, err
	}

	p.value("TX digest", "%s", result.Digest)
	p.end(true)

	return result, nil
}

// reportFailedDigest prints the digest of a transaction that was executed but failed.
func (e *Executor) reportFailedDigest(err error) {
	var data *errors.ErrData
	if !errors.AsData(err, &data) {
		return
	}

	if digest, ok := data.GetData("digest").(string); ok && digest != "" {
		e.progress.value("Failed TX digest", "%s", digest)
		e.logger.Warnf("[Run] transaction %s executed with failure", digest)
	}
}

// step runs fn inside a span named after the step and frames it with a progress banner.
func (e *Executor) step(ctx context.Context, name, banner string, fn func(context.Context) error) error {
	e.progress.begin(banner)

	if err := e.quietStep(ctx, name, fn); err != nil {
		e.progress.failed()
		return err
	}

	e.progress.done()

	return nil
}

func (e *Executor) quietStep(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, _, endSpan := e.tracer.Start(ctx, "Executor:"+name,
		tracing.WithHistogram(prometheusStepSeconds.WithLabelValues(name)),
	)

	err := fn(ctx)

	endSpan(err)

	if err != nil {
		e.logger.Debugf("[Run] step %s failed: %v", name, err)
	}

	return err
}

// activeAddress loads client.yaml under the wallet timeout and returns the
// configuration directory and the active address.
func (e *Executor) activeAddress(ctx context.Context) (string, string, error) {
	active, err := wallet.LoadActive(ctx, e.settings.Sui.ConfigDir, e.settings.Sui.ClientConfig, e.settings.Sui.WalletTimeout)
	if err != nil {
		return "", "", err
	}

	return active.Dir, active.Address, nil
}

func (e *Executor) sign(dir, sender string, txBytes []byte) ([]byte, error) {
	ks, err := keystore.Load(wallet.ResolvePath(dir, e.settings.Sui.Keystore))
	if err != nil {
		return nil, err
	}

	return ks.SignSecure(sender, txBytes, suisigner.DefaultIntent())
}
