package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrLogFromDateInvalid = errors.New("log filter invalid from date")
	ErrLogToDateInvalid   = errors.New("log filter invalid to date")
	ErrLogRangeInvalid    = errors.New("log filter invalid range")
)

// ParseLogWindow turns optional from/to inputs into an inclusive window. Plain
// dates cover the whole day; RFC 3339 timestamps are taken as-is.
func ParseLogWindow(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	if location == nil {
		location = time.UTC
	}

	from, err := parseWindowBound(rawFrom, location, false)
	if err != nil {
		return nil, nil, ErrLogFromDateInvalid
	}
	to, err := parseWindowBound(rawTo, location, true)
	if err != nil {
		return nil, nil, ErrLogToDateInvalid
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrLogRangeInvalid
	}
	return from, to, nil
}

func parseWindowBound(raw string, location *time.Location, upper bool) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", value, location)
	if err != nil {
		return nil, err
	}
	bound := DateAtLocation(parsed, location)
	if upper {
		bound = EndOfDay(parsed, location)
	}
	return &bound, nil
}
