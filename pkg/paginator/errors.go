package paginator

import "errors"

var ErrInvalidQuery = errors.New("invalid pagination query")
