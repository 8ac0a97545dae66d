package sync

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/constants"
	"github.com/tdnguyen/apologia/internal/platform/ctxutil"
	"github.com/tdnguyen/apologia/internal/platform/middleware"
	"github.com/tdnguyen/apologia/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the feed endpoints. Download is deliberately public: mobile
// readers carry no credentials. Status and trigger are operator tools and sit
// behind the sync:manage capability.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/download", handler.download)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapSyncManage))
		r.Get("/status", handler.status)
		r.Post("/trigger", handler.trigger)
	})

	return router
}

func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	lastSync, err := parseLastSync(request.URL.Query().Get("lastSync"))
	if err != nil {
		writeSyncError(writer, request, err)
		return
	}

	// The client app version is informational only; old clients still get
	// the same payload.
	if appVersion := request.URL.Query().Get("version"); appVersion != "" {
		ctxutil.GetLogger(request.Context()).Debug("sync_client_version",
			slog.String("app_version", appVersion))
	}

	feed, err := handler.service.Download(request.Context(), lastSync)
	if err != nil {
		writeSyncError(writer, request, err)
		return
	}

	writeSyncJSON(writer, http.StatusOK, envelope{
		Success:       true,
		Data:          feed,
		SyncTimestamp: feed.SyncTimestamp,
		Message:       "Sync data retrieved successfully",
	})
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Status(request.Context(), constants.RecentActivityLimit)
	if err != nil {
		writeSyncError(writer, request, err)
		return
	}

	writeSyncJSON(writer, http.StatusOK, envelope{Success: true, Data: report})
}

func (handler *Handler) trigger(writer http.ResponseWriter, request *http.Request) {
	confirmation, err := handler.service.Trigger(request.Context())
	if err != nil {
		writeSyncError(writer, request, err)
		return
	}

	writeSyncJSON(writer, http.StatusOK, envelope{Success: true, Data: confirmation})
}

// parseLastSync validates the client watermark. An absent or "0" value asks
// for a full snapshot. Anything non-numeric or negative is rejected rather
// than silently treated as a first run, which would force an accidental full
// re-download on a typo.
func parseLastSync(raw string) (int64, error) {
	if raw == "" || raw == "0" {
		return 0, nil
	}

	lastSync, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || lastSync < 0 {
		return 0, apperr.ValidationError("lastSync must be a non-negative millisecond timestamp")
	}
	return lastSync, nil
}

// writeSyncError emits the legacy error shape the mobile client parses.
func writeSyncError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).Error("sync_request_failed",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	writeSyncJSON(writer, appError.HTTPStatus, errorEnvelope{
		Error:     appError.Code,
		Message:   appError.Message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func writeSyncJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}
