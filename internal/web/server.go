// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web serves the server-rendered CreatorVerse pages.

Every page load and form submission goes through the creator service inside a
[viewscope.Scope], so a browser that navigates away before the store answers
gets nothing written back and produces no error log.
*/
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/creatorverse/internal/core/creator"
	"github.com/taibuivan/creatorverse/internal/platform/ctxutil"
	"github.com/taibuivan/creatorverse/internal/platform/middleware"
)

// Server renders the HTML pages.
type Server struct {
	service   *creator.Service
	templates fs.FS
	static    fs.FS
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

// NewServer builds the page server. assets must hold base.html, pages/,
// partials/ and static/ at its root.
func NewServer(service *creator.Service, assets fs.FS, logger *slog.Logger) (*Server, error) {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("web: static assets: %w", err)
	}

	return &Server{
		service:   service,
		templates: assets,
		static:    static,
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"creatorPath": creatorPath,
		},
	}, nil
}

// Routes returns the page router, to be mounted at "/".
func (server *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.SecurityHeaders)

	router.Get("/", server.handleHome)
	router.Get("/creators", server.handleListCreators)
	router.Get("/creators/{id}", server.handleViewCreator)
	router.Get("/creators/{id}/edit", server.handleEditForm)
	router.Post("/creators/{id}/edit", server.handleUpdateCreator)
	router.Post("/creators/{id}/delete", server.handleDeleteCreator)
	router.Get("/add-creator", server.handleAddForm)
	router.Post("/add-creator", server.handleCreateCreator)

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(server.static)))
	router.NotFound(server.handleNotFound)

	return router
}

// pageData is the view model shared by every page template.
type pageData struct {
	Title     string
	ActiveNav string

	Creators []*creator.Creator
	Creator  *creator.Creator

	Form         creator.Input
	Editing      bool
	Action       string
	DeleteAction string
	CancelPath   string

	Error      string
	ErrorTitle string
}

// renderPage parses a full-page template set and writes it with status.
//
// The page is rendered into a buffer first so a template failure never leaves
// a half-written response.
func (server *Server) renderPage(writer http.ResponseWriter, request *http.Request, status int, data pageData, page string) {
	files := []string{"base.html", "partials/card.html", "partials/error.html", "pages/" + page}

	tmpl, err := template.New("").Funcs(server.tmplFuncs).ParseFS(server.templates, files...)
	if err == nil {
		var buffer bytes.Buffer
		if err = tmpl.ExecuteTemplate(&buffer, "base", data); err == nil {
			writer.Header().Set("Content-Type", "text/html; charset=utf-8")
			writer.WriteHeader(status)
			_, _ = buffer.WriteTo(writer)
			return
		}
	}

	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "render_page_failed",
		slog.String("page", page),
		slog.Any("error", err),
	)
	http.Error(writer, "template error", http.StatusInternalServerError)
}

func (server *Server) handleNotFound(writer http.ResponseWriter, request *http.Request) {
	server.renderPage(writer, request, http.StatusNotFound, pageData{Title: "Not found"}, "not_found.html")
}

// creatorPath returns the detail page path of the creator with id.
func creatorPath(id string) string {
	return "/creators/" + url.PathEscape(id)
}
