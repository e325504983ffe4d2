package booking

import "errors"

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of hours")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPackageRequired = errors.New("use_package needs customer_package_id or package_hours")
)
