package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profile-page-service/internal/isr"
	"profile-page-service/internal/observability"
	"profile-page-service/internal/page"
	"profile-page-service/internal/query"
	"profile-page-service/internal/service"
)

// PageServer отдаёт сгенерированные страницы по пути.
type PageServer interface {
	Serve(ctx context.Context, path string, params isr.Params) (isr.Page, error)
}

// ProcedureCaller выполняет процедуры слоя запросов.
type ProcedureCaller interface {
	Call(ctx context.Context, path string, input json.RawMessage) (json.RawMessage, error)
}

// Pinger проверяет готовность зависимостей.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options — параметры роутера, не зависящие от домена.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
}

type Handler struct {
	Pages PageServer
	RPC   ProcedureCaller
	Ready Pinger
	Log   *slog.Logger
	Opts  Options
}

func NewHandler(pages PageServer, rpc ProcedureCaller, ready Pinger, log *slog.Logger, opts Options) *Handler {
	if opts.ServiceName == "" {
		opts.ServiceName = "profile-page-service"
	}
	return &Handler{
		Pages: pages,
		RPC:   rpc,
		Ready: ready,
		Log:   log,
		Opts:  opts,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observability.MetricsMiddleware(h.Opts.ServiceName))

	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/rpc", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.Opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/{procedure}", h.handleRPC)
	})

	r.Get("/_data/{slug}", h.handlePageData)
	r.Get("/{slug}", h.handlePage)

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr := toAppError(err)

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	writeJSON(w, appErr.Status, newErrorResponse(appErr.Code, appErr.Message))
}

// toAppError сводит ошибки генерации страницы к AppError.
func toAppError(err error) *service.AppError {
	var upErr *query.UpstreamError
	switch {
	case errors.Is(err, page.ErrInvalidRouteParameter):
		return &service.AppError{
			Code:    "BAD_REQUEST",
			Message: "invalid route parameter",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	case errors.Is(err, isr.ErrPageNotFound):
		return service.ErrNotFound("page not found")
	case errors.As(err, &upErr):
		return service.ErrUpstream("upstream query failed", err)
	default:
		return service.AsAppError(err)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready.Ping(r.Context()); err != nil {
			h.Log.Warn("readiness check failed", slog.Any("err", err))
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
	}
	h.handleHealth(w, r)
}
