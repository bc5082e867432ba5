package message

import "errors"

var (
	// ErrSyntax is returned for a ${...} expression that cannot be parsed.
	ErrSyntax = errors.New("message: invalid expression")
	// ErrUnknownVariable is returned for a reference to an unbound name.
	ErrUnknownVariable = errors.New("message: unknown variable")
	// ErrUnsupportedCall is returned for a method call other than print on a printer.
	ErrUnsupportedCall = errors.New("message: unsupported method call")
)
