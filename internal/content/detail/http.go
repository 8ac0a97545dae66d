package detail

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/middleware"
	requestutil "github.com/tdnguyen/apologia/internal/platform/request"
	"github.com/tdnguyen/apologia/internal/platform/respond"
	"github.com/tdnguyen/apologia/internal/platform/sec"
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
		r.Get("/{id}", handler.getDetail)
		r.Get("/by-topic/{topicId}", handler.getDetailByTopic)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentWrite))
		r.Post("/", handler.createDetail)
		r.Put("/{id}", handler.updateDetail)
		r.Delete("/{id}", handler.deleteDetail)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapContentPublish))
		r.Post("/{id}/publish", handler.publishDetail)
	})

	return router
}

// # Request Payloads

type detailRequest struct {
	TopicID     int         `json:"topic_id"`
	Explanation string      `json:"explanation"`
	BibleVerses []string    `json:"bible_verses"`
	KeyPoints   []string    `json:"key_points"`
	References  []Reference `json:"references"`
}

func (handler *Handler) getDetail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) getDetailByTopic(writer http.ResponseWriter, request *http.Request) {
	topicID, err := requestutil.IntParam(request, "topicId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetDetailByTopic(request.Context(), topicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createDetail(writer http.ResponseWriter, request *http.Request) {
	var input detailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail := &Detail{
		TopicID:     input.TopicID,
		Explanation: input.Explanation,
		BibleVerses: input.BibleVerses,
		KeyPoints:   input.KeyPoints,
		References:  input.References,
	}

	if err := handler.service.CreateDetail(request.Context(), detail); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, detail)
}

func (handler *Handler) updateDetail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input detailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail := &Detail{
		Explanation: input.Explanation,
		BibleVerses: input.BibleVerses,
		KeyPoints:   input.KeyPoints,
		References:  input.References,
	}

	if err := handler.service.UpdateDetail(request.Context(), id, detail); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) deleteDetail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDetail(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) publishDetail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.PublishDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}
