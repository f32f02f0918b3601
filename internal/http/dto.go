// Package http реализует HTTP-маршруты страницы профиля, транспорт процедур и служебные эндпоинты.
package http

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func newErrorResponse(code, message string) errorResponse {
	return errorResponse{Error: errorBody{Code: code, Message: message}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type rpcResponse struct {
	Result rpcResult `json:"result"`
}

type rpcResult struct {
	Data json.RawMessage `json:"data"`
}
