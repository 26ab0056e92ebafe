package node

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/pattonkan/sui-go/sui"
	"github.com/pattonkan/sui-go/suiclient"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
	"github.com/torrejonv/movecall/ulogger"
)

const (
	MethodDiscover          = "rpc.discover"
	MethodExecuteTxBlock    = "sui_executeTransactionBlock"
	RequestTypeLocalExecute = "WaitForLocalExecution"
)

// Client is a full node connection. Coin and gas price queries go through the
// sui-go client, discovery and submission through the JSON-RPC envelope.
type Client struct {
	logger     ulogger.Logger
	url        string
	sui        *suiclient.ClientImpl
	apiVersion string
}

type discoverResult struct {
	OpenRPC string `json:"openrpc"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
}

// Dial connects to the node at url and calls rpc.discover. An unreachable
// endpoint or a reply that is not JSON-RPC is reported as a network error.
func Dial(ctx context.Context, logger ulogger.Logger, url string) (*Client, error) {
	if url == "" {
		return nil, errors.NewConfigurationError("no rpc url configured")
	}

	var discover discoverResult
	if err := call(ctx, url, MethodDiscover, nil, &discover); err != nil {
		if errors.IsNetworkError(err) || errors.IsContextError(err) {
			return nil, err
		}

		return nil, errors.NewNetworkError("probing %s", url, err)
	}

	if discover.Info.Version == "" {
		return nil, errors.NewNetworkInvalidResponseError("%s reply from %s carries no API version", MethodDiscover, url)
	}

	logger.Debugf("[Dial] %s answered %s version %s", url, discover.Info.Title, discover.Info.Version)

	return &Client{
		logger:     logger,
		url:        url,
		sui:        suiclient.NewClient(url),
		apiVersion: discover.Info.Version,
	}, nil
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) APIVersion() string {
	return c.apiVersion
}

func (c *Client) Coins(ctx context.Context, owner string) ([]*model.Coin, error) {
	addr, err := sui.AddressFromHex(owner)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid owner address %q", owner, err)
	}

	page, err := c.sui.GetCoins(ctx, &suiclient.GetCoinsRequest{Owner: addr})
	if err != nil {
		return nil, c.queryError(ctx, "suix_getCoins", err)
	}

	coins := make([]*model.Coin, 0, len(page.Data))

	for _, coin := range suiclient.Coins(page.Data) {
		ref := coin.Ref()

		coins = append(coins, &model.Coin{
			ObjectID: fmt.Sprint(ref.ObjectId),
			Version:  uint64(ref.Version),
			Digest:   fmt.Sprint(ref.Digest),
			Balance:  coin.Balance.Uint64(),
			CoinType: fmt.Sprint(coin.CoinType),
		})
	}

	c.logger.Debugf("[Coins] %s owns %d coins", owner, len(coins))

	return coins, nil
}

func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	price, err := c.sui.GetReferenceGasPrice(ctx)
	if err != nil {
		return 0, c.queryError(ctx, "suix_getReferenceGasPrice", err)
	}

	if price == nil {
		return 0, errors.NewNetworkInvalidResponseError("suix_getReferenceGasPrice returned no price")
	}

	return price.Uint64(), nil
}

type executeOptions struct {
	ShowInput          bool `json:"showInput"`
	ShowRawInput       bool `json:"showRawInput"`
	ShowEffects        bool `json:"showEffects"`
	ShowEvents         bool `json:"showEvents"`
	ShowObjectChanges  bool `json:"showObjectChanges"`
	ShowBalanceChanges bool `json:"showBalanceChanges"`
	ShowRawEffects     bool `json:"showRawEffects"`
}

func fullContentOptions() executeOptions {
	return executeOptions{
		ShowInput:          true,
		ShowRawInput:       true,
		ShowEffects:        true,
		ShowEvents:         true,
		ShowObjectChanges:  true,
		ShowBalanceChanges: true,
		ShowRawEffects:     true,
	}
}

type executeResponse struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
	} `json:"effects"`
	ConfirmedLocalExecution *bool `json:"confirmedLocalExecution"`
}

// Execute submits the transaction with full content options and
// WaitForLocalExecution. Effects reporting failure map to ERR_TX_REJECTED.
func (c *Client) Execute(ctx context.Context, txBytes []byte, signatures [][]byte) (*ExecutionResult, error) {
	if len(txBytes) == 0 {
		return nil, errors.NewTxInvalidError("no transaction bytes to submit")
	}

	if len(signatures) == 0 {
		return nil, errors.NewTxInvalidError("no signatures to submit")
	}

	encodedSigs := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		encodedSigs = append(encodedSigs, base64.StdEncoding.EncodeToString(sig))
	}

	params := []interface{}{
		base64.StdEncoding.EncodeToString(txBytes),
		encodedSigs,
		fullContentOptions(),
		RequestTypeLocalExecute,
	}

	var resp executeResponse
	if err := call(ctx, c.url, MethodExecuteTxBlock, params, &resp); err != nil {
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) {
			return nil, errors.NewTxRejectedError("node rejected transaction", rpcErr)
		}

		return nil, err
	}

	if resp.Digest == "" {
		return nil, errors.NewNetworkInvalidResponseError("%s returned no digest", MethodExecuteTxBlock)
	}

	result := &ExecutionResult{Digest: resp.Digest}

	if resp.ConfirmedLocalExecution != nil {
		result.ConfirmedLocalExecution = *resp.ConfirmedLocalExecution
	}

	if resp.Effects == nil {
		return nil, errors.NewNetworkInvalidResponseError("%s returned no effects for %s", MethodExecuteTxBlock, resp.Digest)
	}

	result.Status = resp.Effects.Status.Status
	result.Error = resp.Effects.Status.Error

	if !result.Succeeded() {
		txErr := errors.New(errors.ERR_TX_REJECTED, "transaction %s failed: %s", resp.Digest, result.Error)
		txErr.SetData("digest", resp.Digest)

		return result, txErr
	}

	c.logger.Debugf("[Execute] %s executed, confirmed local execution %t", result.Digest, result.ConfirmedLocalExecution)

	return result, nil
}

func (c *Client) queryError(ctx context.Context, method string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.NewContextError("%s interrupted", method, ctxErr)
	}

	if errors.IsNetworkError(err) {
		return errors.NewNetworkError("%s failed", method, err)
	}

	return errors.NewServiceError("%s failed", method, err)
}
