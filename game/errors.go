package game

import "errors"

var (
	ErrUnanchored   = errors.New("piece has no anchor")
	ErrInvalidShape = errors.New("invalid shape definition")
)
