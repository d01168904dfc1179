package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
	"go.uber.org/zap"
)

type journalView struct {
	Entry    models.JournalEntry `json:"entry"`
	Markdown string              `json:"markdown"`
}

type goalsPageData struct {
	Goals          []models.Goal `json:"goals"`
	CompletionRate float64       `json:"completion_rate"`
}

type checkInsPageData struct {
	CheckIns []models.CheckIn `json:"check_ins"`
	Today    string           `json:"today"`
}

func (handler *Handler) ShowJournals(c *fiber.Ctx) error {
	entries, err := handler.services.Journals.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "journals", "Journal", err)
	}

	views := make([]journalView, 0, len(entries))
	for _, entry := range entries {
		rendered, err := services.JournalMarkdown(entry)
		if err != nil {
			logging.L().Warn("render journal markdown", zap.String("entry", entry.ID), zap.Error(err))
			rendered = entry.Body
		}
		views = append(views, journalView{Entry: entry, Markdown: rendered})
	}
	return handler.respond(c, fiber.StatusOK, "journals", View{
		Title: "Journal",
		State: readyOrEmpty(len(entries)),
		Data:  views,
	})
}

func (handler *Handler) CreateJournal(c *fiber.Ctx) error {
	entry, err := handler.services.Journals.Create(c.UserContext(), sessionToken(c), services.JournalInput{
		Title: c.FormValue("title"),
		Body:  c.FormValue("body"),
		Mood:  c.FormValue("mood"),
	})
	if err != nil {
		return handler.actionError(c, "/journals", err)
	}
	return handler.actionDone(c, "/journals", "Journal entry saved.", entry)
}

func (handler *Handler) ShowGoals(c *fiber.Ctx) error {
	goals, err := handler.services.Goals.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "goals", "Goals", err)
	}
	return handler.respond(c, fiber.StatusOK, "goals", View{
		Title: "Goals",
		State: readyOrEmpty(len(goals)),
		Data:  goalsPageData{Goals: goals, CompletionRate: services.GoalCompletionRate(goals)},
	})
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	goal, err := handler.services.Goals.Create(c.UserContext(), sessionToken(c), services.GoalInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		DueDate:     c.FormValue("due_date"),
	})
	if err != nil {
		return handler.actionError(c, "/goals", err)
	}
	return handler.actionDone(c, "/goals", "Goal created.", goal)
}

func (handler *Handler) UpdateGoalProgress(c *fiber.Ctx) error {
	progress, err := strconv.Atoi(strings.TrimSpace(c.FormValue("progress")))
	if err != nil {
		return handler.actionError(c, "/goals", services.ErrGoalProgressInvalid)
	}
	goal, err := handler.services.Goals.UpdateProgress(c.UserContext(), sessionToken(c), c.Params("id"), progress)
	if err != nil {
		return handler.actionError(c, "/goals", err)
	}
	return handler.actionDone(c, "/goals", "Goal progress updated.", goal)
}

func (handler *Handler) ShowCheckIns(c *fiber.Ctx) error {
	checkIns, err := handler.services.CheckIns.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "check_ins", "Check-ins", err)
	}
	return handler.respond(c, fiber.StatusOK, "check_ins", View{
		Title: "Check-ins",
		State: readyOrEmpty(len(checkIns)),
		Data: checkInsPageData{
			CheckIns: latestCheckIns(checkIns, len(checkIns)),
			Today:    handler.today().Format(models.DateLayout),
		},
	})
}

func (handler *Handler) CreateCheckIn(c *fiber.Ctx) error {
	energy, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("energy")))
	focus, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("focus")))
	checkIn, err := handler.services.CheckIns.Create(c.UserContext(), sessionToken(c), services.CheckInInput{
		Date:   c.FormValue("date"),
		Energy: energy,
		Focus:  focus,
		Notes:  c.FormValue("notes"),
	})
	if err != nil {
		return handler.actionError(c, "/check-ins", err)
	}
	return handler.actionDone(c, "/check-ins", "Check-in saved.", checkIn)
}

func (handler *Handler) ShowBilling(c *fiber.Ctx) error {
	subscription, err := handler.services.Billing.Subscription(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "billing", "Billing", err)
	}
	return handler.respond(c, fiber.StatusOK, "billing", View{Title: "Billing", Data: subscription})
}
