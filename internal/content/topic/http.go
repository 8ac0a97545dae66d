package topic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/middleware"
	requestutil "github.com/tdnguyen/apologia/internal/platform/request"
	"github.com/tdnguyen/apologia/internal/platform/respond"
	"github.com/tdnguyen/apologia/internal/platform/sec"
	"github.com/tdnguyen/apologia/pkg/convert"
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
		r.Get("/", handler.listTopics)
		r.Get("/{id}", handler.getTopic)
		r.Get("/by-slug/{slug}", handler.getTopicBySlug)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentWrite))
		r.Post("/", handler.createTopic)
		r.Put("/{id}", handler.updateTopic)
		r.Delete("/{id}", handler.deleteTopic)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentPublish))
		r.Post("/{id}/publish", handler.publishTopic)
	})

	return router
}

// # Request Payloads

type topicRequest struct {
	ReligionID  int    `json:"religion_id"`
	Title       string `json:"title"`
	TitleEn     string `json:"title_en"`
	Description string `json:"description"`
}

func (handler *Handler) listTopics(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	// Optional ?religion_id= filter; 0 means all.
	religionID := convert.ToInt(request.URL.Query().Get("religion_id"))

	topics, total, err := handler.service.ListTopics(request.Context(), religionID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, topics, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTopic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.GetTopic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}

func (handler *Handler) getTopicBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	topic, err := handler.service.GetTopicBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}

func (handler *Handler) createTopic(writer http.ResponseWriter, request *http.Request) {
	var input topicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic := &Topic{
		ReligionID:  input.ReligionID,
		Title:       input.Title,
		TitleEn:     input.TitleEn,
		Description: input.Description,
	}

	if err := handler.service.CreateTopic(request.Context(), topic); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, topic)
}

func (handler *Handler) updateTopic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input topicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic := &Topic{
		ReligionID:  input.ReligionID,
		Title:       input.Title,
		TitleEn:     input.TitleEn,
		Description: input.Description,
	}

	if err := handler.service.UpdateTopic(request.Context(), id, topic); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}

func (handler *Handler) deleteTopic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTopic(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) publishTopic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.PublishTopic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}
