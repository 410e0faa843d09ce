package domain

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrSuggestionNotFound = errors.New("match suggestion not found")

	// ErrStoreUnavailable marks failures to reach or query the profile or
	// match store while loading data for a regeneration.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPairWriteConflict is returned when a write on a single pair loses
	// against a concurrent writer or against a status change.
	ErrPairWriteConflict = errors.New("pair write conflict")

	// ErrInvalidProfileData marks a courses/interests value that could not
	// be read as a string collection.
	ErrInvalidProfileData = errors.New("invalid profile data")

	ErrInvalidToken = errors.New("invalid token")
)
