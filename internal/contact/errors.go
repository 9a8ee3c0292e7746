package contact

import (
	"errors"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Failure kinds reported by value types and Record operations.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	ErrInvalidFormat   = errors.New(config.ErrInvalidFormat)
	ErrDuplicatePhone  = errors.New(config.ErrDuplicatePhone)
	ErrIndexOutOfRange = errors.New(config.ErrIndexOutOfRange)
)
