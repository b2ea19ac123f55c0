package rules

import "errors"

var (
	// ErrConfiguration is returned by New for parameters no game can be built from.
	ErrConfiguration = errors.New("invalid game configuration")

	// ErrIllegalPiece marks caller misuse: an unanchored piece, or a shape the
	// current player has already played. Rule rejections are not errors.
	ErrIllegalPiece = errors.New("illegal piece")
)
