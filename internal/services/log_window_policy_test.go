package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseLogWindow(t *testing.T) {
	location := time.UTC

	t.Run("empty window", func(t *testing.T) {
		from, to, err := ParseLogWindow("", "", location)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if from != nil || to != nil {
			t.Fatalf("expected nil from/to, got from=%v to=%v", from, to)
		}
	})

	t.Run("plain dates cover whole days", func(t *testing.T) {
		from, to, err := ParseLogWindow("2026-02-10", "2026-02-20", location)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if from == nil || to == nil {
			t.Fatalf("expected non-nil window bounds")
		}
		if !from.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, location)) {
			t.Fatalf("unexpected from: %s", from.Format(time.RFC3339Nano))
		}
		if to.Format("2006-01-02") != "2026-02-20" || to.Hour() != 23 || to.Minute() != 59 {
			t.Fatalf("expected end of day to, got %s", to.Format(time.RFC3339Nano))
		}
	})

	t.Run("timestamps taken as-is", func(t *testing.T) {
		from, _, err := ParseLogWindow("2026-02-10T12:30:00Z", "", location)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if from.Hour() != 12 || from.Minute() != 30 {
			t.Fatalf("unexpected from: %s", from.Format(time.RFC3339))
		}
	})

	t.Run("same day window", func(t *testing.T) {
		if _, _, err := ParseLogWindow("2026-02-10", "2026-02-10", location); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("invalid from", func(t *testing.T) {
		_, _, err := ParseLogWindow("not-a-date", "2026-02-20", location)
		if !errors.Is(err, ErrLogFromDateInvalid) {
			t.Fatalf("expected ErrLogFromDateInvalid, got %v", err)
		}
	})

	t.Run("invalid to", func(t *testing.T) {
		_, _, err := ParseLogWindow("2026-02-10", "not-a-date", location)
		if !errors.Is(err, ErrLogToDateInvalid) {
			t.Fatalf("expected ErrLogToDateInvalid, got %v", err)
		}
	})

	t.Run("invalid window order", func(t *testing.T) {
		_, _, err := ParseLogWindow("2026-02-20", "2026-02-10", location)
		if !errors.Is(err, ErrLogRangeInvalid) {
			t.Fatalf("expected ErrLogRangeInvalid, got %v", err)
		}
	})
}

func TestEndOfDayStaysOnSameCalendarDay(t *testing.T) {
	location := time.FixedZone("UTC+3", 3*60*60)
	value := time.Date(2026, 3, 29, 1, 30, 0, 0, location)

	start := DateAtLocation(value, location)
	end := EndOfDay(value, location)
	if !start.Equal(time.Date(2026, 3, 29, 0, 0, 0, 0, location)) {
		t.Fatalf("unexpected start of day %s", start)
	}
	if end.Format("2006-01-02") != "2026-03-29" || !end.Add(time.Nanosecond).Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected end of day %s", end)
	}
}
