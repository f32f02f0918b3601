package query

import (
	"fmt"
	"net/http"
)

// Code классифицирует ошибки процедур так же, как они отдаются через HTTP-транспорт.
type Code string

const (
	CodeBadRequest Code = "BAD_REQUEST"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL_SERVER_ERROR"
)

// HTTPStatus возвращает HTTP-статус для кода ошибки.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error — ошибка выполнения процедуры.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UpstreamError возвращается клиентом, когда процедура завершилась ошибкой.
// Отсутствие данных (null) ошибкой не является.
type UpstreamError struct {
	Path string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
