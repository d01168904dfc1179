package api

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
)

const dashboardRecentCheckIns = 3

type dashboardData struct {
	Trends         services.MoodTrends `json:"trends"`
	Streak         int                 `json:"streak"`
	ActiveGoals    int                 `json:"active_goals"`
	GoalCompletion float64             `json:"goal_completion"`
	RecentCheckIns []models.CheckIn    `json:"recent_check_ins"`
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := sessionToken(c)

	moods, err := handler.services.Moods.History(ctx, token)
	if err != nil {
		return handler.pageError(c, "dashboard", "Dashboard", err)
	}
	goals, err := handler.services.Goals.List(ctx, token)
	if err != nil {
		return handler.pageError(c, "dashboard", "Dashboard", err)
	}
	checkIns, err := handler.services.CheckIns.List(ctx, token)
	if err != nil {
		return handler.pageError(c, "dashboard", "Dashboard", err)
	}

	data := dashboardData{
		Trends:         services.BuildMoodTrends(moods, services.GranularityWeek),
		Streak:         services.MoodStreak(moods, handler.today()),
		GoalCompletion: services.GoalCompletionRate(goals),
		RecentCheckIns: latestCheckIns(checkIns, dashboardRecentCheckIns),
	}
	for _, goal := range goals {
		if goal.Status == models.GoalStatusActive {
			data.ActiveGoals++
		}
	}

	state := ViewReady
	if len(moods) == 0 && len(goals) == 0 && len(checkIns) == 0 {
		state = ViewEmpty
	}
	return handler.respond(c, fiber.StatusOK, "dashboard", View{Title: "Dashboard", State: state, Data: data})
}

func latestCheckIns(checkIns []models.CheckIn, limit int) []models.CheckIn {
	sorted := slices.Clone(checkIns)
	slices.SortStableFunc(sorted, func(left models.CheckIn, right models.CheckIn) int {
		return strings.Compare(models.DateOnly(right.Date), models.DateOnly(left.Date))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func sessionToken(c *fiber.Ctx) string {
	current, _ := currentSession(c)
	return current.Token
}
