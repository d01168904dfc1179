package api

import (
	"errors"
	"html/template"
	"time"

	"github.com/terraincognita07/coachdesk/internal/services"
)

type Options struct {
	Services     *services.Services
	SecretKey    string
	CookieSecure bool
	Location     *time.Location
	PageSize     int
	LogFetchCap  int
}

type Handler struct {
	services     *services.Services
	cookies      *secureCookieCodec
	templates    map[string]*template.Template
	cookieSecure bool
	location     *time.Location
	pageSize     int
	logFetchCap  int
	now          func() time.Time
}

func NewHandler(options Options) (*Handler, error) {
	if options.Services == nil {
		return nil, errors.New("services are required")
	}

	codec, err := newSecureCookieCodec([]byte(options.SecretKey))
	if err != nil {
		return nil, err
	}
	templates, err := parsePageTemplates(newTemplateFuncMap(), pageTemplates)
	if err != nil {
		return nil, err
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = services.DefaultPageSize
	}
	fetchCap := options.LogFetchCap
	if fetchCap <= 0 {
		fetchCap = services.DefaultLogFetchCap
	}

	return &Handler{
		services:     options.Services,
		cookies:      codec,
		templates:    templates,
		cookieSecure: options.CookieSecure,
		location:     location,
		pageSize:     pageSize,
		logFetchCap:  fetchCap,
		now:          time.Now,
	}, nil
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
