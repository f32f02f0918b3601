// Package page реализует страницу профиля /@<username>: разбор параметра маршрута,
// предзагрузку пользователя через слой запросов и рендер HTML.
package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"profile-page-service/internal/api"
	"profile-page-service/internal/isr"
	"profile-page-service/internal/query"
)

// SlugParam — имя параметра маршрута со слагом вида "@<username>".
const SlugParam = "slug"

// ErrInvalidRouteParameter — параметр маршрута отсутствует или не является строкой.
var ErrInvalidRouteParameter = errors.New("invalid route parameter")

// Props — данные для рендера страницы. Создаются один раз на генерацию.
type Props struct {
	Username string                `json:"username"`
	State    query.DehydratedState `json:"trpcState"`
}

// ResolveUsername достаёт username из слага: снимается ровно один ведущий "@".
// Никакой другой нормализации и валидации нет, пустая строка допустима.
func ResolveUsername(params isr.Params) (string, error) {
	raw, ok := params[SlugParam]
	if !ok {
		return "", fmt.Errorf("%w: %q is missing", ErrInvalidRouteParameter, SlugParam)
	}
	slug, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not a string", ErrInvalidRouteParameter, SlugParam, raw)
	}
	return strings.TrimPrefix(slug, "@"), nil
}

// ProfilePage связывает роутер процедур и представление.
type ProfilePage struct {
	router *query.Router
	view   *View
}

// NewProfilePage создаёт страницу профиля.
func NewProfilePage(router *query.Router, view *View) *ProfilePage {
	return &ProfilePage{router: router, view: view}
}

// GetStaticPaths: заранее ничего не генерируется, каждый путь генерируется по первому запросу.
func (p *ProfilePage) GetStaticPaths() isr.StaticPaths {
	return isr.StaticPaths{Paths: nil, Fallback: isr.FallbackBlocking}
}

// GetStaticProps разбирает username и предзагружает пользователя.
// Отсутствие пользователя не ошибка: в состоянии окажется null.
// Ошибка процедуры возвращается как *query.UpstreamError.
func (p *ProfilePage) GetStaticProps(ctx context.Context, params isr.Params) (Props, error) {
	username, err := ResolveUsername(params)
	if err != nil {
		return Props{}, err
	}

	client := query.NewClient(p.router)
	if err := client.Prefetch(ctx, api.GetUserByUsername, api.UsernameInput{Username: username}); err != nil {
		return Props{}, err
	}

	return Props{
		Username: username,
		State:    client.Dehydrate(),
	}, nil
}

// Generate выполняет GetStaticProps и рендер, возвращая HTML и JSON props.
func (p *ProfilePage) Generate(ctx context.Context, params isr.Params) (isr.Result, error) {
	props, err := p.GetStaticProps(ctx, params)
	if err != nil {
		return isr.Result{}, err
	}

	var buf strings.Builder
	if err := p.view.Render(ctx, &buf, props); err != nil {
		return isr.Result{}, fmt.Errorf("render profile page: %w", err)
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return isr.Result{}, fmt.Errorf("encode props: %w", err)
	}

	return isr.Result{HTML: []byte(buf.String()), Props: raw}, nil
}
