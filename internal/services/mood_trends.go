package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/models"
)

const MaxMoodScore = 5

var moodScores = map[string]int{
	models.MoodExcellent: 5,
	models.MoodGood:      4,
	models.MoodNeutral:   3,
	models.MoodStressed:  2,
	models.MoodBurnedOut: 1,
	models.MoodDepressed: 0,
}

type MoodGranularity string

const (
	GranularityWeek  MoodGranularity = "week"
	GranularityMonth MoodGranularity = "month"
)

type MoodPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type MoodBucket struct {
	Key     string  `json:"key"`
	Scores  []int   `json:"scores"`
	Average float64 `json:"average"`
}

type MoodTrends struct {
	Granularity     MoodGranularity `json:"granularity"`
	Series          []MoodPoint     `json:"series"`
	Average         float64         `json:"average"`
	MostCommonMood  string          `json:"most_common_mood"`
	MostCommonCount int             `json:"most_common_count"`
	Buckets         []MoodBucket    `json:"buckets"`
	Best            *MoodBucket     `json:"best,omitempty"`
	Worst           *MoodBucket     `json:"worst,omitempty"`
	HasData         bool            `json:"has_data"`
}

// MoodScore maps a mood label to 0..5; unknown labels score 0.
func MoodScore(mood string) int {
	return moodScores[mood]
}

func ParseMoodGranularity(raw string) MoodGranularity {
	switch MoodGranularity(strings.ToLower(strings.TrimSpace(raw))) {
	case GranularityMonth:
		return GranularityMonth
	default:
		return GranularityWeek
	}
}

// SortMoodRecords returns a chronologically ordered copy; equal dates keep input order.
func SortMoodRecords(records []models.MoodRecord) []models.MoodRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(left models.MoodRecord, right models.MoodRecord) int {
		leftTime, leftOK := models.ParseISODate(left.Date)
		rightTime, rightOK := models.ParseISODate(right.Date)
		if leftOK && rightOK {
			return leftTime.Compare(rightTime)
		}
		return cmp.Compare(models.DateOnly(left.Date), models.DateOnly(right.Date))
	})
	return sorted
}

func MoodChartSeries(records []models.MoodRecord) []MoodPoint {
	points := make([]MoodPoint, 0, len(records))
	for _, record := range SortMoodRecords(records) {
		points = append(points, MoodPoint{
			Date:  models.DateOnly(record.Date),
			Score: MoodScore(record.Mood),
		})
	}
	return points
}

func AverageMoodScore(records []models.MoodRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, record := range records {
		total += MoodScore(record.Mood)
	}
	return float64(total) / float64(len(records))
}

// MostCommonMood counts raw mood labels. Ties go to the label seen first in
// chronological order.
func MostCommonMood(records []models.MoodRecord) (string, int) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, record := range SortMoodRecords(records) {
		if _, seen := counts[record.Mood]; !seen {
			order = append(order, record.Mood)
		}
		counts[record.Mood]++
	}

	winner := ""
	best := 0
	for _, mood := range order {
		if counts[mood] > best {
			winner = mood
			best = counts[mood]
		}
	}
	return winner, best
}

func MoodBucketKey(date string, granularity MoodGranularity) string {
	parsed, ok := models.ParseISODate(date)
	if !ok {
		trimmed := strings.TrimSpace(date)
		if len(trimmed) >= 7 {
			return trimmed[:7]
		}
		return trimmed
	}
	if granularity == GranularityMonth {
		return parsed.Format("2006-01")
	}
	year, week := parsed.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// BucketMoods groups every record into exactly one bucket, ordered by key.
func BucketMoods(records []models.MoodRecord, granularity MoodGranularity) []MoodBucket {
	byKey := make(map[string]*MoodBucket)
	for _, record := range records {
		key := MoodBucketKey(record.Date, granularity)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &MoodBucket{Key: key, Scores: make([]int, 0, 1)}
			byKey[key] = bucket
		}
		bucket.Scores = append(bucket.Scores, MoodScore(record.Mood))
	}

	buckets := make([]MoodBucket, 0, len(byKey))
	for _, bucket := range byKey {
		bucket.Average = averageScores(bucket.Scores)
		buckets = append(buckets, *bucket)
	}
	slices.SortFunc(buckets, func(left MoodBucket, right MoodBucket) int {
		return cmp.Compare(left.Key, right.Key)
	})
	return buckets
}

// BestAndWorstBuckets picks the highest and lowest mean; ties keep the earlier bucket.
func BestAndWorstBuckets(buckets []MoodBucket) (MoodBucket, MoodBucket, bool) {
	if len(buckets) == 0 {
		return MoodBucket{}, MoodBucket{}, false
	}
	best := buckets[0]
	worst := buckets[0]
	for _, bucket := range buckets[1:] {
		if bucket.Average > best.Average {
			best = bucket
		}
		if bucket.Average < worst.Average {
			worst = bucket
		}
	}
	return best, worst, true
}

func BuildMoodTrends(records []models.MoodRecord, granularity MoodGranularity) MoodTrends {
	if granularity == "" {
		granularity = GranularityWeek
	}
	mostCommon, count := MostCommonMood(records)
	buckets := BucketMoods(records, granularity)

	trends := MoodTrends{
		Granularity:     granularity,
		Series:          MoodChartSeries(records),
		Average:         AverageMoodScore(records),
		MostCommonMood:  mostCommon,
		MostCommonCount: count,
		Buckets:         buckets,
		HasData:         len(records) > 0,
	}
	if best, worst, ok := BestAndWorstBuckets(buckets); ok {
		trends.Best = &best
		trends.Worst = &worst
	}
	return trends
}

// MoodStreak counts consecutive calendar days, ending at today, that have a mood logged.
func MoodStreak(records []models.MoodRecord, today time.Time) int {
	logged := make(map[string]struct{}, len(records))
	for _, record := range records {
		logged[models.DateOnly(record.Date)] = struct{}{}
	}

	streak := 0
	for cursor := today; ; cursor = cursor.AddDate(0, 0, -1) {
		if _, ok := logged[cursor.Format(models.DateLayout)]; !ok {
			return streak
		}
		streak++
	}
}

func averageScores(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, score := range scores {
		total += score
	}
	return float64(total) / float64(len(scores))
}
