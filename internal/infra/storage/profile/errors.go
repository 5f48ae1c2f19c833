package profile

import "errors"

var (
	// ErrProfileNotFound aucun profil ne correspond
	ErrProfileNotFound = errors.New("profile.repository: profile not found")

	ErrBuildQuery = errors.New("profile.repository: failed to build query")
	ErrExecQuery  = errors.New("profile.repository: failed to execute query")
	ErrScanRow    = errors.New("profile.repository: failed to scan row")
)
