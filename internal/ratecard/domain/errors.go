package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidRoleName   = errors.New("invalid_role_name")
	ErrInvalidHourlyRate = errors.New("invalid_hourly_rate")
	ErrDuplicateRole     = errors.New("duplicate_role")
	ErrNotFound          = errors.New("not_found")
)
