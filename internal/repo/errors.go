package repo

import "errors"

var (
	// ErrMalformedIndex indicates an index stanza that cannot be parsed.
	ErrMalformedIndex = errors.New("malformed repository index")

	// ErrNoIndex indicates that no index file was configured.
	ErrNoIndex = errors.New("no repository index configured")
)
