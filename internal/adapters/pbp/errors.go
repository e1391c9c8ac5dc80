package pbp

import "errors"

// Sentinel kinds for play-by-play loading errors.
var (
	ErrLoadPlays = errors.New("load play-by-play failed")
	ErrNotLoaded = errors.New("play-by-play not loaded")
)
