package service

import (
	"errors"
	"fmt"
)

// Controllers map these with errors.Is, see controller.handleServiceError
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("invalid admin key")
	ErrConflict   = errors.New("item already has a file")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage error")
)

var ErrNoFiles = fmt.Errorf("%w: no files to download", ErrNotFound)
