package store

import "errors"

// Sentinel errors returned by store operations. Handlers match these with
// errors.Is and translate them into user-facing outcomes; anything else is
// treated as an internal error.
var (
	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotOwner is returned by ownership-scoped mutations when the item
	// does not exist or belongs to another user. The two cases are
	// deliberately indistinguishable so callers can only present a generic
	// "unauthorized" outcome.
	ErrNotOwner = errors.New("item not found or not owned by user")

	// ErrInvalidStatus is returned when creating an item with a status
	// other than Lost or Found.
	ErrInvalidStatus = errors.New("status must be Lost or Found")

	// ErrInvalidTransition is returned when resolving an item that is
	// already in a terminal status.
	ErrInvalidTransition = errors.New("item is already resolved")
)
