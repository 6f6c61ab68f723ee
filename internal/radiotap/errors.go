package radiotap

import "errors"

var (
	// ErrTruncatedHeader reports a buffer that ends inside the fixed
	// header or the present-word chain.
	ErrTruncatedHeader = errors.New("buffer ends inside the radiotap header")

	// ErrTruncatedBody reports a buffer that ends while a field or
	// vendor block declared present is being read.
	ErrTruncatedBody = errors.New("buffer ends inside a declared-present field")

	// ErrMalformedHeader reports a structurally impossible header:
	// a declared length below the 8-byte minimum, a present bit with no
	// resolvable width, or a present-word chain past the safety limit.
	ErrMalformedHeader = errors.New("malformed radiotap header")

	// ErrUnsupportedVersion reports a header version other than 0.
	ErrUnsupportedVersion = errors.New("unsupported radiotap version")

	// ErrUnknownField reports a field identity outside the registry,
	// raised when building a Selector, never during a parse.
	ErrUnknownField = errors.New("unknown radiotap field")
)
