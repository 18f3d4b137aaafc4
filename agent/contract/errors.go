package contract

import "errors"

var (
	ErrInvalidMessage  = errors.New("message is empty")
	ErrInvalidArgument = errors.New("invalid tool argument")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrValidation      = errors.New("validation failed")
	ErrTransport       = errors.New("tool transport failed")
)
