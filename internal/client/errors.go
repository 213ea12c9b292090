package client

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUsage           = errors.New("wrong arguments")
	ErrSessionRequest  = errors.New("session request failed")
	ErrSessionRejected = errors.New("session request rejected")
)
