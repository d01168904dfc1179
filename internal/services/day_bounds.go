package services

import "time"

// DateAtLocation truncates value to midnight of its calendar day in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// EndOfDay is the last representable instant of value's calendar day in location.
func EndOfDay(value time.Time, location *time.Location) time.Time {
	return DateAtLocation(value, location).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
