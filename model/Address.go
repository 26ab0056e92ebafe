package model

import (
	"strings"

	"github.com/pattonkan/sui-go/sui"
	"github.com/torrejonv/movecall/errors"
)

// ParseAddress parses a Sui address in full or short form (0x1).
func ParseAddress(addr string) (*sui.Address, error) {
	s := strings.TrimSpace(addr)

	if strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X") == "" {
		return nil, errors.NewInvalidArgumentError("empty address")
	}

	a, err := sui.AddressFromHex(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid address %q", addr, err)
	}

	return a, nil
}

// NormalizeAddress returns addr as 0x followed by 64 lowercase hex digits.
func NormalizeAddress(addr string) (string, error) {
	a, err := ParseAddress(addr)
	if err != nil {
		return "", err
	}

	return a.String(), nil
}
