package orm

import (
	"github.com/iov-one/tokenswap/errors"
)

// Codes 100 to 109 belong to this package.
var (
	ErrInvalidIndex     = errors.Register(100, "invalid index")
	ErrUniqueConstraint = errors.Register(101, "unique constraint violated")
)
