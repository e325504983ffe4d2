package pricing

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrPackageNotFound = errors.New("customer package not found")
	ErrPackageUnusable = errors.New("customer package is not active or has expired")
	ErrPackageMismatch = errors.New("customer package does not cover this service")
	ErrInvalidHours    = errors.New("planned hours must be positive")
)
