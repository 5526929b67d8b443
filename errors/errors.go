package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrNameTaken          = fmt.Errorf("participant name already registered")
	ErrNotRegistered      = fmt.Errorf("participant is not registered")
	ErrIncompleteMessage  = fmt.Errorf("message is missing required fields")
	ErrUnknownMessageType = fmt.Errorf("unknown message type")
	ErrInvalidLimit       = fmt.Errorf("limit must be a positive integer")
)
