package services

import (
	"slices"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/models"
)

const DefaultLogFetchCap = 1000

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

func ParseSortDirection(raw string) SortDirection {
	if SortDirection(strings.ToLower(strings.TrimSpace(raw))) == SortAscending {
		return SortAscending
	}
	return SortDescending
}

func (direction SortDirection) Toggle() SortDirection {
	if direction == SortAscending {
		return SortDescending
	}
	return SortAscending
}

type LogFilter struct {
	Actor string     `json:"actor,omitempty"`
	Type  string     `json:"type,omitempty"`
	From  *time.Time `json:"from,omitempty"`
	To    *time.Time `json:"to,omitempty"`
}

func (filter LogFilter) IsEmpty() bool {
	return strings.TrimSpace(filter.Actor) == "" &&
		strings.TrimSpace(filter.Type) == "" &&
		filter.From == nil &&
		filter.To == nil
}

// Matches applies actor equality, case-insensitive type substring and an inclusive window.
func (filter LogFilter) Matches(record models.LogRecord) bool {
	actor := strings.TrimSpace(filter.Actor)
	if actor != "" && record.UserID != actor {
		return false
	}
	eventType := strings.ToLower(strings.TrimSpace(filter.Type))
	if eventType != "" && !strings.Contains(strings.ToLower(record.EventType), eventType) {
		return false
	}
	if filter.From != nil && record.Timestamp.Before(*filter.From) {
		return false
	}
	if filter.To != nil && record.Timestamp.After(*filter.To) {
		return false
	}
	return true
}

func FilterLogs(records []models.LogRecord, filter LogFilter) []models.LogRecord {
	if filter.IsEmpty() {
		return slices.Clone(records)
	}
	filtered := make([]models.LogRecord, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// SortLogsByTimestamp is stable: records with equal timestamps keep their relative order.
func SortLogsByTimestamp(records []models.LogRecord, direction SortDirection) []models.LogRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(left models.LogRecord, right models.LogRecord) int {
		if direction == SortAscending {
			return left.Timestamp.Compare(right.Timestamp)
		}
		return right.Timestamp.Compare(left.Timestamp)
	})
	return sorted
}

type LogTable struct {
	Filter        LogFilter              `json:"filter"`
	Direction     SortDirection          `json:"direction"`
	NextDirection SortDirection          `json:"next_direction"`
	Page          Page[models.LogRecord] `json:"page"`
}

// BuildLogTable recomputes filter, sort and page from the full fetched set.
func BuildLogTable(records []models.LogRecord, filter LogFilter, direction SortDirection, page int, pageSize int) LogTable {
	if direction != SortAscending {
		direction = SortDescending
	}
	sorted := SortLogsByTimestamp(FilterLogs(records, filter), direction)
	return LogTable{
		Filter:        filter,
		Direction:     direction,
		NextDirection: direction.Toggle(),
		Page:          Paginate(sorted, page, pageSize),
	}
}

// DistinctEventTypes lists event types present in records, sorted, for filter dropdowns.
func DistinctEventTypes(records []models.LogRecord) []string {
	seen := make(map[string]struct{})
	types := make([]string, 0)
	for _, record := range records {
		if _, ok := seen[record.EventType]; ok {
			continue
		}
		seen[record.EventType] = struct{}{}
		types = append(types, record.EventType)
	}
	slices.Sort(types)
	return types
}
