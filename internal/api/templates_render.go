package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/services"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplates = []string{
	"login",
	"dashboard",
	"moods",
	"mood_trends",
	"journals",
	"goals",
	"check_ins",
	"billing",
	"log_table",
	"feature_flags",
	"agent_overrides",
	"support_tickets",
	"churn_risk",
	"refunds",
	"impersonation",
	"error",
}

func parsePageTemplates(funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(
			templateFiles,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":     formatTemplateDate,
		"formatDateTime": formatTemplateDateTime,
		"formatFloat":    formatTemplateFloat,
		"percent":        formatTemplatePercent,
		"money":          formatTemplateMoney,
		"moodScore":      services.MoodScore,
		"toJSON":         templateToJSON,
		"isActiveRoute":  isActiveTemplateRoute,
	}
}

func formatTemplateDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}

func formatTemplateDateTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02 15:04:05")
}

func formatTemplateFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatTemplatePercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

func formatTemplateMoney(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}

func templateToJSON(value any) template.JS {
	serialized, err := json.Marshal(value)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(serialized)
}

func isActiveTemplateRoute(current string, route string) bool {
	return current == route || strings.HasPrefix(current, route+"/")
}
