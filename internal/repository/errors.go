package repository

import "errors"

// ErrUserNotFound возвращается, если пользователь не найден в БД.
var ErrUserNotFound = errors.New("user not found")
