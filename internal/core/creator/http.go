// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/creatorverse/internal/platform/request"
	"github.com/taibuivan/creatorverse/internal/platform/respond"
)

// Handler exposes the creator operations as a JSON API.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router to be mounted at /api/v1/creators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCreators)
	router.Post("/", handler.createCreator)
	router.Get("/{id}", handler.getCreator)
	router.Put("/{id}", handler.updateCreator)
	router.Delete("/{id}", handler.deleteCreator)
}

func (handler *Handler) listCreators(writer http.ResponseWriter, request *http.Request) {
	creators, err := handler.service.ListCreators(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, creators)
}

func (handler *Handler) getCreator(writer http.ResponseWriter, request *http.Request) {
	creator, err := handler.service.GetCreator(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, creator)
}

func (handler *Handler) createCreator(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	creator, err := handler.service.CreateCreator(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, creator)
}

func (handler *Handler) updateCreator(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	creator, err := handler.service.UpdateCreator(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, creator)
}

func (handler *Handler) deleteCreator(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCreator(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
