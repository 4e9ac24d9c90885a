package domain

import "errors"

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrDuplicateSlug    = errors.New("duplicate_slug")
	ErrNotFound         = errors.New("not_found")
	ErrWorkspaceInUse   = errors.New("workspace_in_use")
)
