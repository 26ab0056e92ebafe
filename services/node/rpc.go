package node

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/util"
	"go.uber.org/atomic"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      uint64              `json:"id"`
	Result  jsoniter.RawMessage `json:"result"`
	Error   *rpcError           `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}

var requestID = atomic.NewUint64(0)

// call performs a single JSON-RPC 2.0 request and decodes its result into out.
// A JSON-RPC error object is returned as *rpcError wrapped in a service error.
func call(ctx context.Context, url, method string, params []interface{}, out interface{}) error {
	if params == nil {
		params = []interface{}{}
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      requestID.Inc(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.NewProcessingError("encoding %s request", method, err)
	}

	raw, err := util.DoHTTPRequest(ctx, url, body)
	if err != nil {
		return err
	}

	var resp rpcResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return errors.NewNetworkInvalidResponseError("%s: reply from %s is not JSON-RPC", method, url, err)
	}

	if resp.Error != nil {
		return errors.NewServiceError("%s failed", method, resp.Error)
	}

	if resp.JSONRPC != "2.0" || len(resp.Result) == 0 {
		return errors.NewNetworkInvalidResponseError("%s: reply from %s has no JSON-RPC result", method, url)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(resp.Result, out); err != nil {
		return errors.NewNetworkInvalidResponseError("%s: cannot decode result", method, err)
	}

	return nil
}
