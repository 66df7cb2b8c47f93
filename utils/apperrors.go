package utils

import "errors"

// Machine-readable error codes surfaced in the response message field.
var (
	ErrOutOfHours         = errors.New("out_of_hours")
	ErrSlotTaken          = errors.New("slot_taken")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidOrExpired   = errors.New("invalid_or_expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNoPermission       = errors.New("you do not have permission")
)
