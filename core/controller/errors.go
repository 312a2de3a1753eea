package controller

import "errors"

var (
	ErrUnknownAction = errors.New("unknown action")
)
