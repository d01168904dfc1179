package api

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
)

type moodsPageData struct {
	Records []models.MoodRecord `json:"records"`
	Moods   []string            `json:"moods"`
	Today   string              `json:"today"`
}

func (handler *Handler) ShowMoods(c *fiber.Ctx) error {
	records, err := handler.services.Moods.History(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "moods", "Mood history", err)
	}

	newestFirst := services.SortMoodRecords(records)
	slices.Reverse(newestFirst)
	return handler.respond(c, fiber.StatusOK, "moods", View{
		Title: "Mood history",
		State: readyOrEmpty(len(records)),
		Data: moodsPageData{
			Records: newestFirst,
			Moods:   models.KnownMoods(),
			Today:   handler.today().Format(models.DateLayout),
		},
	})
}

func (handler *Handler) LogMood(c *fiber.Ctx) error {
	record, err := handler.services.Moods.Log(c.UserContext(), sessionToken(c), services.MoodInput{
		Date: c.FormValue("date"),
		Mood: c.FormValue("mood"),
		Note: c.FormValue("note"),
	})
	if err != nil {
		return handler.actionError(c, "/moods", err)
	}
	return handler.actionDone(c, "/moods", "Mood saved.", record)
}

func (handler *Handler) ShowMoodTrends(c *fiber.Ctx) error {
	records, err := handler.services.Moods.History(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "mood_trends", "Mood trends", err)
	}

	trends := services.BuildMoodTrends(records, services.ParseMoodGranularity(c.Query("granularity")))
	return handler.respond(c, fiber.StatusOK, "mood_trends", View{
		Title: "Mood trends",
		State: readyOrEmpty(len(records)),
		Data:  trends,
	})
}
