package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profile-page-service/internal/query"
)

// handleRPC — GET /api/rpc/{procedure}?input=<json>.
func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	const handlerName = "rpc"

	procedure := chi.URLParam(r, "procedure")
	input := json.RawMessage(r.URL.Query().Get("input"))
	if len(input) > 0 && !json.Valid(input) {
		h.writeRPCError(w, procedure, &query.Error{Code: query.CodeBadRequest, Message: "input is not valid JSON"})
		return
	}

	data, err := h.RPC.Call(r.Context(), procedure, input)
	if err != nil {
		h.writeRPCError(w, procedure, err)
		return
	}

	h.Log.Debug("rpc call", slog.String("handler", handlerName), slog.String("procedure", procedure))

	writeJSON(w, http.StatusOK, rpcResponse{Result: rpcResult{Data: data}})
}

func (h *Handler) writeRPCError(w http.ResponseWriter, procedure string, err error) {
	var qErr *query.Error
	if !errors.As(err, &qErr) {
		qErr = &query.Error{Code: query.CodeInternal, Message: "internal error", Err: err}
	}

	h.Log.Error("rpc error",
		slog.String("procedure", procedure),
		slog.String("code", string(qErr.Code)),
		slog.String("message", qErr.Message),
		slog.Any("err", qErr.Err),
	)

	writeJSON(w, qErr.Code.HTTPStatus(), newErrorResponse(string(qErr.Code), qErr.Message))
}
