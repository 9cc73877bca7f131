package storage

import "errors"

var ErrPunchNotFound = errors.New("punch not found")
