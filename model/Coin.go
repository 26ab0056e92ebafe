package model

import (
	"github.com/pattonkan/sui-go/sui"
	"github.com/torrejonv/movecall/errors"
)

// Coin is an owned gas coin: the object reference triple plus its balance in MIST.
type Coin struct {
	ObjectID string
	Version  uint64
	Digest   string
	Balance  uint64
	CoinType string
}

// Ref converts the coin into the object reference used as gas payment.
func (c *Coin) Ref() (*sui.ObjectRef, error) {
	id, err := sui.ObjectIdFromHex(c.ObjectID)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid coin object id %q", c.ObjectID, err)
	}

	digest, err := sui.NewDigest(c.Digest)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid coin digest %q", c.Digest, err)
	}

	return &sui.ObjectRef{
		ObjectId: id,
		Version:  sui.SequenceNumber(c.Version),
		Digest:   digest,
	}, nil
}
