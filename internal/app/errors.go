package app

import "errors"

var (
	ErrOutputLocked    = errors.New("output file is locked by another run")
	ErrUnknownEncoder  = errors.New("unknown png encoder")
	ErrEmbeddedPayload = errors.New("embedded image failed verification")
)
