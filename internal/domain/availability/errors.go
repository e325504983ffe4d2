package availability

import "errors"

var (
	ErrInvalidGrid       = errors.New("invalid day grid")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidStartTime  = errors.New("invalid start time, expected HH:MM")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrSlotsUnavailable  = errors.New("slot data could not be retrieved")
	ErrUnknownSlotSource = errors.New("unknown slot source")
)
