package urls

import "errors"

var (
	ErrArgumentMissing = errors.New("required path argument missing")
	ErrNoVersioner     = errors.New("asset versioning is not configured")
)
