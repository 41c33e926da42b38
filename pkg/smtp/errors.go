package smtp

import "errors"

var (
	ErrHostRequired      = errors.New("smtp: host is required")
	ErrInvalidPort       = errors.New("smtp: invalid port")
	ErrFromRequired      = errors.New("smtp: from address is required")
	ErrRecipientRequired = errors.New("smtp: at least one recipient is required")
)
