package service

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError описывает прикладную ошибку сервиса:
// код для клиента, человекочитаемое сообщение, HTTP-статус и вложенная ошибка.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error реализует интерфейс error для AppError.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrBadRequest конструирует AppError для запроса, который не удалось разобрать
// (битый путь, нет обязательного параметра). Содержимое username сервис не проверяет.
func ErrBadRequest(msg string) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// ErrNotFound конструирует AppError для страницы, которой нет среди объявленных путей.
func ErrNotFound(msg string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

// ErrInternal оборачивает ошибку хранилища в AppError со статусом 500.
func ErrInternal(msg string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL",
		Message: msg,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ErrUpstream конструирует AppError для отказа слоя запросов во время генерации страницы.
func ErrUpstream(msg string, err error) *AppError {
	return &AppError{
		Code:    "UPSTREAM_QUERY",
		Message: msg,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// AsAppError достаёт AppError из цепочки ошибок.
// Всё, что не является AppError, превращается во внутреннюю ошибку.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal("internal error", err)
}
