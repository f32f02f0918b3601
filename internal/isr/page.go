// Package isr реализует инкрементальную статическую генерацию страниц:
// страницы генерируются по первому запросу, вызывающий ждёт завершения генерации,
// результат кэшируется для последующих запросов.
package isr

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrPageNotFound возвращается для путей, которые не объявлены заранее при Fallback == FallbackFalse.
var ErrPageNotFound = errors.New("page not found")

// PageState — состояние пути в рантайме генерации.
type PageState int

const (
	NotGenerated PageState = iota
	Generating
	Cached
)

func (s PageState) String() string {
	switch s {
	case Generating:
		return "generating"
	case Cached:
		return "cached"
	default:
		return "not_generated"
	}
}

// Fallback определяет поведение для путей, не сгенерированных заранее.
type Fallback int

const (
	// FallbackFalse — неизвестные пути отдают ErrPageNotFound.
	FallbackFalse Fallback = iota
	// FallbackBlocking — неизвестный путь генерируется синхронно, запрос ждёт результата.
	FallbackBlocking
)

// Params — параметры маршрута. Значения не обязаны быть строками,
// проверка типа остаётся за генератором страницы.
type Params map[string]any

// StaticPath — путь, который генерируется заранее, и его параметры.
type StaticPath struct {
	Path   string
	Params Params
}

// StaticPaths описывает набор заранее генерируемых путей и политику для остальных.
type StaticPaths struct {
	Paths    []StaticPath
	Fallback Fallback
}

// Result — то, что возвращает генератор страницы.
type Result struct {
	HTML  []byte
	Props json.RawMessage
}

// Page — сгенерированная и сохранённая страница.
type Page struct {
	Path        string          `json:"path"`
	HTML        []byte          `json:"html"`
	Props       json.RawMessage `json:"props"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
