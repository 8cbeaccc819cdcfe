package dataset

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid generator configuration")
	ErrInvalidCatalog     = errors.New("invalid product catalog")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrIntegrity          = errors.New("dataset integrity violation")
)
