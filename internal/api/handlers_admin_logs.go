package api

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
)

type logQuery struct {
	Actor string `json:"actor,omitempty"`
	Type  string `json:"type,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Sort  string `json:"sort"`
	Page  int    `json:"page"`
}

type logRow struct {
	Record  models.LogRecord    `json:"record"`
	Details services.LogDetails `json:"details"`
}

type logTablePageData struct {
	Kind       services.LogKind  `json:"kind"`
	Path       string            `json:"path"`
	Query      logQuery          `json:"query"`
	Table      services.LogTable `json:"table"`
	Rows       []logRow          `json:"rows"`
	EventTypes []string          `json:"event_types"`
	PrevURL    string            `json:"prev_url,omitempty"`
	NextURL    string            `json:"next_url,omitempty"`
	SortURL    string            `json:"sort_url"`
}

func (handler *Handler) ShowAuditLogs(c *fiber.Ctx) error {
	return handler.showLogTable(c, services.LogKindAudit, "/admin/audit-logs", "Audit log")
}

func (handler *Handler) ShowOrchestrationLogs(c *fiber.Ctx) error {
	return handler.showLogTable(c, services.LogKindOrchestration, "/admin/orchestration-logs", "Agent orchestration log")
}

// showLogTable fetches the capped set once and rebuilds filter, sort and page
// from it on every request.
func (handler *Handler) showLogTable(c *fiber.Ctx, kind services.LogKind, path string, title string) error {
	query := parseLogQuery(c)
	from, to, err := services.ParseLogWindow(query.From, query.To, handler.location)
	if err != nil {
		return handler.respond(c, fiber.StatusBadRequest, "log_table", View{
			Title: title,
			State: ViewError,
			Error: logWindowMessage(err),
			Data:  logTablePageData{Kind: kind, Path: path, Query: query},
		})
	}

	records, err := handler.services.Logs.List(c.UserContext(), sessionToken(c), kind, handler.logFetchCap)
	if err != nil {
		return handler.pageError(c, "log_table", title, err)
	}

	filter := services.LogFilter{Actor: query.Actor, Type: query.Type, From: from, To: to}
	direction := services.ParseSortDirection(query.Sort)
	table := services.BuildLogTable(records, filter, direction, query.Page, handler.pageSize)
	query.Sort = string(table.Direction)
	query.Page = table.Page.Page

	rows := make([]logRow, 0, len(table.Page.Items))
	for _, record := range table.Page.Items {
		rows = append(rows, logRow{Record: record, Details: services.ParseLogDetails(record.Details)})
	}

	data := logTablePageData{
		Kind:       kind,
		Path:       path,
		Query:      query,
		Table:      table,
		Rows:       rows,
		EventTypes: services.DistinctEventTypes(records),
		SortURL:    withQuery(path, query.values(string(table.NextDirection), 1)),
	}
	if table.Page.HasPrev {
		data.PrevURL = withQuery(path, query.values(query.Sort, query.Page-1))
	}
	if table.Page.HasNext {
		data.NextURL = withQuery(path, query.values(query.Sort, query.Page+1))
	}

	return handler.respond(c, fiber.StatusOK, "log_table", View{
		Title: title,
		State: readyOrEmpty(table.Page.Total),
		Data:  data,
	})
}

func parseLogQuery(c *fiber.Ctx) logQuery {
	page, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil || page < 1 {
		page = 1
	}
	return logQuery{
		Actor: strings.TrimSpace(c.Query("actor")),
		Type:  strings.TrimSpace(c.Query("type")),
		From:  strings.TrimSpace(c.Query("from")),
		To:    strings.TrimSpace(c.Query("to")),
		Sort:  c.Query("sort"),
		Page:  page,
	}
}

func (query logQuery) values(sort string, page int) url.Values {
	values := url.Values{}
	for key, value := range map[string]string{"actor": query.Actor, "type": query.Type, "from": query.From, "to": query.To} {
		if value != "" {
			values.Set(key, value)
		}
	}
	values.Set("sort", sort)
	values.Set("page", strconv.Itoa(page))
	return values
}

func logWindowMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrLogFromDateInvalid):
		return "The from date is not a valid date."
	case errors.Is(err, services.ErrLogToDateInvalid):
		return "The to date is not a valid date."
	default:
		return "The from date must not be after the to date."
	}
}
