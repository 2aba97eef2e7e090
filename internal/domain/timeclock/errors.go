package timeclock

import "errors"

var ErrNotFound = errors.New("time clock record not found")
