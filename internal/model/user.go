// Package model содержит доменные структуры пользователей и их постов.
package model

// User описывает пользователя, чей профиль показывается на странице /@<username>.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"imageUrl"`
}
