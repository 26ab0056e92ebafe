package model

import (
	"regexp"
	"strings"

	"github.com/pattonkan/sui-go/sui"
	"github.com/torrejonv/movecall/errors"
)

var moveIdentifier = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*|_[A-Za-z0-9_]+)$`)

// CallTarget names a Move function as package::module::function.
type CallTarget struct {
	Package  *sui.PackageId
	Module   string
	Function string
}

// ParseCallTarget parses "0x1::address::length" style targets.
func ParseCallTarget(s string) (CallTarget, error) {
	parts := strings.Split(strings.TrimSpace(s), "::")
	if len(parts) != 3 {
		return CallTarget{}, errors.NewInvalidArgumentError("call target %q must have the form package::module::function", s)
	}

	pkg, err := ParseAddress(parts[0])
	if err != nil {
		return CallTarget{}, errors.NewInvalidArgumentError("call target %q has an invalid package", s, err)
	}

	if !moveIdentifier.MatchString(parts[1]) {
		return CallTarget{}, errors.NewInvalidArgumentError("call target %q has an invalid module name %q", s, parts[1])
	}

	if !moveIdentifier.MatchString(parts[2]) {
		return CallTarget{}, errors.NewInvalidArgumentError("call target %q has an invalid function name %q", s, parts[2])
	}

	return CallTarget{Package: pkg, Module: parts[1], Function: parts[2]}, nil
}

// String returns the target with the package in short form, e.g. 0x1::address::length.
func (c CallTarget) String() string {
	pkg := "0x0"
	if c.Package != nil {
		if short := c.Package.ShortString(); short != "0x" {
			pkg = short
		}
	}

	return pkg + "::" + c.Module + "::" + c.Function
}
