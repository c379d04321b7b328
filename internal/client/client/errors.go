package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrRateLimited = errors.New("too many attempts, retry later")
)
