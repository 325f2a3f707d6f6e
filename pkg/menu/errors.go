package menu

import "errors"

var (
	ErrSlotOutOfRange  = errors.New("slot out of range")
	ErrInvalidSize     = errors.New("invalid menu size")
	ErrInvalidOptions  = errors.New("invalid menu options")
	ErrOpenWindow      = errors.New("could not open window")
	ErrUnknownWindow   = errors.New("unknown window")
	ErrAlreadyAttached = errors.New("router already attached")
)
