package directory

import "errors"

var ErrInvalidFile = errors.New("invalid directory file")
