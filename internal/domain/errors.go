package domain

import "errors"

// Domain errors.
var (
	ErrOutOfRange    = errors.New("value out of range")
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownFont   = errors.New("unknown font family")
	ErrAlarmSource   = errors.New("invalid alarm source")
	ErrEventNotFound = errors.New("cycle event not found")
)
