package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/ctxutil"
	"github.com/tdnguyen/apologia/internal/platform/middleware"
	"github.com/tdnguyen/apologia/internal/platform/respond"
	"github.com/tdnguyen/apologia/internal/platform/sec"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapExportRead))
		r.Get("/content", handler.exportContent)
	})

	return router
}

func (handler *Handler) exportContent(writer http.ResponseWriter, request *http.Request) {
	workbook, err := handler.service.Workbook(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer workbook.Close()

	writer.Header().Set("Content-Type", xlsxContentType)
	writer.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, Filename()))

	// Headers are already sent; a mid-stream failure can only be logged.
	if err := workbook.Write(writer); err != nil {
		ctxutil.GetLogger(request.Context()).Error("export_stream_failed",
			slog.String("error", err.Error()))
	}
}
