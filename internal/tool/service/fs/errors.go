package fs

import (
	"errors"
)

// -- Sentinels --

var (
	ErrInvalidLimit = errors.New("limit must be > 0")
)
