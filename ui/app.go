package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sheetlens/internal"
	"sheetlens/internal/errors"
	"sheetlens/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the server-rendered UI over a workspace
type App struct {
	router    *chi.Mux
	workspace *session.Workspace
	options   Options
	templates *template.Template
	logger    *internal.Logger
}

// NewApp creates a new UI application
func NewApp(workspace *session.Workspace, options Options) (*App, error) {
	if options.PreviewRows <= 0 {
		options.PreviewRows = DefaultOptions().PreviewRows
	}

	funcMap := template.FuncMap{
		"percent": func(v, top float64) float64 {
			if top <= 0 {
				return 0
			}
			return v / top * 100
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		workspace: workspace,
		options:   options,
		templates: templates,
		logger:    internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	static, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		panic(err)
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/datasets", a.handleUpload)
	a.router.Get("/datasets/{id}", a.handleDatasetDetail)
	a.router.Post("/datasets/{id}/remove", a.handleRemove)

	a.router.Get("/relationships", a.handleRelationships)
	a.router.Post("/relationships", a.handleAddRelationship)
}

// Handler exposes the router for an http.Server
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.logger.Info("[App] listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate writes a full page with the given status
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("[App] template %s failed: %v", templateName, err)
	}
}

// errorStatus maps err to the message shown on the page and its HTTP status
func errorStatus(err error) (string, int) {
	appErr := errors.FromDomain(err)
	return appErr.Message, errors.HTTPStatus(appErr.Code)
}
