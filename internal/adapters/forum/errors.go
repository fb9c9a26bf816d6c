package forum

import "errors"

// Sentinel kinds for forum client errors.
var (
	ErrNoCredential     = errors.New("forum api credential not set")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)
