package timeline

import "errors"

var ErrNotFound = errors.New("studio not found")
