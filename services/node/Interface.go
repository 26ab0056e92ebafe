// Package node talks to a Sui full node over JSON-RPC: it checks the API,
// lists gas coins, reads the reference gas price and submits signed
// transactions.
package node

import (
	"context"

	"github.com/torrejonv/movecall/model"
)

// ClientI is the node surface used by the executor.
type ClientI interface {
	// APIVersion returns the version reported by rpc.discover when the client was dialed.
	APIVersion() string

	// Coins returns the SUI coins owned by owner, in the order the node returns them.
	Coins(ctx context.Context, owner string) ([]*model.Coin, error)

	// ReferenceGasPrice returns the current epoch's reference gas price in MIST.
	ReferenceGasPrice(ctx context.Context) (uint64, error)

	// Execute submits BCS transaction bytes with their serialized signatures and
	// waits for local execution.
	Execute(ctx context.Context, txBytes []byte, signatures [][]byte) (*ExecutionResult, error)
}

// ExecutionResult is the part of sui_executeTransactionBlock's response the flow reports.
type ExecutionResult struct {
	Digest                  string
	Status                  string
	Error                   string
	ConfirmedLocalExecution bool
}

// Succeeded reports whether the effects status is success.
func (r *ExecutionResult) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
