package model

import (
	"github.com/fardream/go-bcs/bcs"
	"github.com/pattonkan/sui-go/sui"
	"github.com/pattonkan/sui-go/sui/suiptb"
	"github.com/torrejonv/movecall/errors"
)

// TransactionPlan holds everything needed to assemble TransactionData for a single Move call.
type TransactionPlan struct {
	Sender     string
	GasPayment []*Coin
	Target     CallTarget
	GasBudget  uint64
	GasPrice   uint64
	// Programmable is built from Target when nil.
	Programmable *suiptb.ProgrammableTransaction
}

// Transaction is the assembled TransactionData and its BCS encoding, the bytes that get signed and submitted.
type Transaction struct {
	Plan  *TransactionPlan
	Data  suiptb.TransactionData
	Bytes []byte
}

// Validate checks the invariants of a plan: one gas coin, a non zero budget and price, a well formed sender.
func (p *TransactionPlan) Validate() error {
	if _, err := NormalizeAddress(p.Sender); err != nil {
		return errors.NewInvalidArgumentError("invalid sender", err)
	}

	if len(p.GasPayment) != 1 || p.GasPayment[0] == nil {
		return errors.NewInvalidArgumentError("transaction requires exactly one gas payment object, got %d", len(p.GasPayment))
	}

	if p.GasBudget == 0 {
		return errors.NewInvalidArgumentError("gas budget must be greater than zero")
	}

	if p.GasPrice == 0 {
		return errors.NewInvalidArgumentError("gas price must be greater than zero")
	}

	if p.Target.Package == nil || p.Target.Module == "" || p.Target.Function == "" {
		return errors.NewInvalidArgumentError("call target is not set")
	}

	return nil
}

// BuildProgrammable returns a programmable transaction with a single Move call
// to target, without type arguments and without call arguments.
func BuildProgrammable(target CallTarget) (suiptb.ProgrammableTransaction, error) {
	if target.Package == nil {
		return suiptb.ProgrammableTransaction{}, errors.NewInvalidArgumentError("call target %s has no package", target)
	}

	ptb := suiptb.NewTransactionDataTransactionBuilder()
	ptb.Command(suiptb.Command{
		MoveCall: &suiptb.ProgrammableMoveCall{
			Package:       target.Package,
			Module:        sui.Identifier(target.Module),
			Function:      sui.Identifier(target.Function),
			TypeArguments: []sui.TypeTag{},
			Arguments:     []suiptb.Argument{},
		},
	})

	return ptb.Finish(), nil
}

// Build assembles TransactionData from the plan and BCS encodes it.
func (p *TransactionPlan) Build() (*Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sender, err := ParseAddress(p.Sender)
	if err != nil {
		return nil, err
	}

	gasRef, err := p.GasPayment[0].Ref()
	if err != nil {
		return nil, err
	}

	if p.Programmable == nil {
		pt, ptErr := BuildProgrammable(p.Target)
		if ptErr != nil {
			return nil, ptErr
		}

		p.Programmable = &pt
	}

	data := suiptb.NewTransactionData(sender, *p.Programmable, []*sui.ObjectRef{gasRef}, p.GasBudget, p.GasPrice)

	txBytes, err := bcs.Marshal(data)
	if err != nil {
		return nil, errors.NewProcessingError("failed to BCS encode transaction data", err)
	}

	return &Transaction{
		Plan:  p,
		Data:  data,
		Bytes: txBytes,
	}, nil
}
