package priv

import "errors"

var (
	// ErrMalformedSpec means a privilege specification string violates the
	// "scope:priv,priv/scope:priv" grammar. The parse returns no partial
	// result.
	ErrMalformedSpec = errors.New("malformed privilege specification")

	// ErrUnparsableGrant means a SHOW GRANTS row did not match the expected
	// shape. The whole parse aborts: proceeding with incomplete live state
	// risks under-revoking.
	ErrUnparsableGrant = errors.New("unparsable grant line")
)
