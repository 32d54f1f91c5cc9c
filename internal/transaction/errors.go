package transaction

import "errors"

var ErrInvalidURL = errors.New("invalid transaction URL")
