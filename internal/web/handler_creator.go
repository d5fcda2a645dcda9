// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"net/http"

	"github.com/taibuivan/creatorverse/internal/core/creator"
	"github.com/taibuivan/creatorverse/internal/platform/apperr"
	requestutil "github.com/taibuivan/creatorverse/internal/platform/request"
	"github.com/taibuivan/creatorverse/internal/platform/respond"
	"github.com/taibuivan/creatorverse/internal/platform/viewscope"
)

// homeCreatorLimit is how many cards the home page shows.
const homeCreatorLimit = 5

// maxFormBytes bounds the size of a submitted creator form.
const maxFormBytes = 64 << 10

func (server *Server) handleHome(writer http.ResponseWriter, request *http.Request) {
	creators, err := viewscope.Load(viewscope.Of(request.Context()), server.service.ListCreators)
	if viewscope.IsStale(err) {
		return
	}

	data := pageData{ErrorTitle: "Couldn’t load creators:"}
	status := http.StatusOK
	if err != nil {
		status, data.Error = server.failure(request, err)
	} else {
		data.Creators = creators[:min(len(creators), homeCreatorLimit)]
	}

	server.renderPage(writer, request, status, data, "home.html")
}

func (server *Server) handleListCreators(writer http.ResponseWriter, request *http.Request) {
	creators, err := viewscope.Load(viewscope.Of(request.Context()), server.service.ListCreators)
	if viewscope.IsStale(err) {
		return
	}

	data := pageData{Title: "Creators", ActiveNav: "creators", ErrorTitle: "Couldn’t load creators:"}
	status := http.StatusOK
	if err != nil {
		status, data.Error = server.failure(request, err)
	} else {
		data.Creators = creators
	}

	server.renderPage(writer, request, status, data, "creators.html")
}

func (server *Server) handleViewCreator(writer http.ResponseWriter, request *http.Request) {
	found, err := server.loadCreator(request)
	if viewscope.IsStale(err) {
		return
	}

	data := pageData{Title: "Creator", ActiveNav: "creators"}
	status := http.StatusOK
	switch {
	case apperr.HasCode(err, apperr.CodeNotFound):
		status = http.StatusNotFound
	case err != nil:
		status, data.Error = server.failure(request, err)
	default:
		data.Title = found.Name
		data.Creator = found
	}

	server.renderPage(writer, request, status, data, "creator.html")
}

func (server *Server) handleEditForm(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	found, err := server.loadCreator(request)
	if viewscope.IsStale(err) {
		return
	}

	data := editPage(id)
	status := http.StatusOK
	if err != nil {
		status, data.Error = server.failure(request, err)
	} else {
		data.Form = creator.Input{
			Name:        found.Name,
			URL:         found.URL,
			Description: found.Description,
			ImageURL:    found.ImageURL,
		}
	}

	server.renderPage(writer, request, status, data, "creator_form.html")
}

func (server *Server) handleUpdateCreator(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	data := editPage(id)

	input, ok := server.readForm(writer, request, data)
	if !ok {
		return
	}

	_, err := viewscope.Load(viewscope.Of(request.Context()), func(ctx context.Context) (*creator.Creator, error) {
		return server.service.UpdateCreator(ctx, id, input)
	})
	if viewscope.IsStale(err) {
		return
	}
	if err != nil {
		data.Form = input
		status, message := server.failure(request, err)
		data.Error = message
		server.renderPage(writer, request, status, data, "creator_form.html")
		return
	}

	http.Redirect(writer, request, creatorPath(id), http.StatusSeeOther)
}

func (server *Server) handleDeleteCreator(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	err := viewscope.Run(viewscope.Of(request.Context()), func(ctx context.Context) error {
		return server.service.DeleteCreator(ctx, id)
	})
	if viewscope.IsStale(err) {
		return
	}
	if err != nil {
		data := editPage(id)
		data.ErrorTitle = "Could not delete creator:"
		if request.ParseForm() == nil {
			data.Form = formInput(request)
		}
		status, message := server.failure(request, err)
		data.Error = message
		server.renderPage(writer, request, status, data, "creator_form.html")
		return
	}

	http.Redirect(writer, request, "/creators", http.StatusSeeOther)
}

func (server *Server) handleAddForm(writer http.ResponseWriter, request *http.Request) {
	server.renderPage(writer, request, http.StatusOK, addPage(), "creator_form.html")
}

func (server *Server) handleCreateCreator(writer http.ResponseWriter, request *http.Request) {
	data := addPage()

	input, ok := server.readForm(writer, request, data)
	if !ok {
		return
	}

	_, err := viewscope.Load(viewscope.Of(request.Context()), func(ctx context.Context) (*creator.Creator, error) {
		return server.service.CreateCreator(ctx, input)
	})
	if viewscope.IsStale(err) {
		return
	}
	if err != nil {
		data.Form = input
		status, message := server.failure(request, err)
		data.Error = message
		server.renderPage(writer, request, status, data, "creator_form.html")
		return
	}

	http.Redirect(writer, request, "/creators", http.StatusSeeOther)
}

// loadCreator fetches the creator named by the {id} path parameter.
func (server *Server) loadCreator(request *http.Request) (*creator.Creator, error) {
	id := requestutil.ID(request, "id")
	return viewscope.Load(viewscope.Of(request.Context()), func(ctx context.Context) (*creator.Creator, error) {
		return server.service.GetCreator(ctx, id)
	})
}

// readForm parses a submitted creator form, rendering the page with an error
// when the body cannot be read.
func (server *Server) readForm(writer http.ResponseWriter, request *http.Request, data pageData) (creator.Input, bool) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		data.Error = "The form could not be read."
		server.renderPage(writer, request, http.StatusBadRequest, data, "creator_form.html")
		return creator.Input{}, false
	}
	return formInput(request), true
}

// failure resolves err into the status and message a page shows.
func (server *Server) failure(request *http.Request, err error) (int, string) {
	appError := respond.Resolve(request, err)
	return appError.HTTPStatus, appError.Message
}

func formInput(request *http.Request) creator.Input {
	return creator.Input{
		Name:        requestutil.FormValue(request, creator.FieldName),
		URL:         requestutil.FormValue(request, creator.FieldURL),
		Description: requestutil.FormValue(request, creator.FieldDescription),
		ImageURL:    requestutil.FormValue(request, creator.FieldImageURL),
	}
}

func editPage(id string) pageData {
	return pageData{
		Title:        "Edit Creator",
		ActiveNav:    "creators",
		Editing:      true,
		Action:       creatorPath(id) + "/edit",
		DeleteAction: creatorPath(id) + "/delete",
		CancelPath:   creatorPath(id),
		ErrorTitle:   "Could not save changes:",
	}
}

func addPage() pageData {
	return pageData{
		Title:      "Add Creator",
		ActiveNav:  "add",
		Action:     "/add-creator",
		CancelPath: "/creators",
		ErrorTitle: "Could not add creator:",
	}
}
