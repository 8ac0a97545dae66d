package religion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/middleware"
	requestutil "github.com/tdnguyen/apologia/internal/platform/request"
	"github.com/tdnguyen/apologia/internal/platform/respond"
	"github.com/tdnguyen/apologia/internal/platform/sec"
	"github.com/tdnguyen/apologia/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentRead))
		r.Get("/", handler.listReligions)
		r.Get("/{id}", handler.getReligion)
		r.Get("/by-slug/{slug}", handler.getReligionBySlug)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentWrite))
		r.Post("/", handler.createReligion)
		r.Put("/{id}", handler.updateReligion)
		r.Delete("/{id}", handler.deleteReligion)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentPublish))
		r.Post("/{id}/publish", handler.publishReligion)
	})

	return router
}

// # Request Payloads

type religionRequest struct {
	Name        string `json:"name"`
	NameEn      string `json:"name_en"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

func (handler *Handler) listReligions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	religions, total, err := handler.service.ListReligions(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, religions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getReligion(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	religion, err := handler.service.GetReligion(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, religion)
}

func (handler *Handler) getReligionBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	religion, err := handler.service.GetReligionBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, religion)
}

func (handler *Handler) createReligion(writer http.ResponseWriter, request *http.Request) {
	var input religionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	religion := &Religion{
		Name:        input.Name,
		NameEn:      input.NameEn,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
	}

	if err := handler.service.CreateReligion(request.Context(), religion); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, religion)
}

func (handler *Handler) updateReligion(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input religionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	religion := &Religion{
		Name:        input.Name,
		NameEn:      input.NameEn,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
	}

	if err := handler.service.UpdateReligion(request.Context(), id, religion); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, religion)
}

func (handler *Handler) deleteReligion(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReligion(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) publishReligion(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	religion, err := handler.service.PublishReligion(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, religion)
}
