package executor

import (
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
	"github.com/torrejonv/movecall/settings"
)

// SelectGasCoin picks the single gas payment coin. With the first policy the
// first coin is taken regardless of balance; with sufficient the first coin
// whose balance covers budget is taken.
func SelectGasCoin(coins []*model.Coin, policy string, budget uint64, owner string) (*model.Coin, error) {
	if len(coins) == 0 {
		return nil, errors.NewNoFundedCoinError("no coins found for address %s", owner)
	}

	switch policy {
	case settings.CoinSelectionFirst, "":
		if coins[0] == nil {
			return nil, errors.NewNoFundedCoinError("first coin for address %s is empty", owner)
		}

		return coins[0], nil
	case settings.CoinSelectionSufficient:
		for _, coin := range coins {
			if coin != nil && coin.Balance >= budget {
				return coin, nil
			}
		}

		return nil, errors.NewNoFundedCoinError("none of the %d coins of %s has a balance of at least %d MIST", len(coins), owner, budget)
	default:
		return nil, errors.NewConfigurationError("unknown gas coin selection policy %q", policy)
	}
}
