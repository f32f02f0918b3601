package page

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"profile-page-service/internal/api"
	"profile-page-service/internal/model"
	"profile-page-service/internal/query"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// AvatarSize — размер аватара в шапке профиля.
const AvatarSize = "lg"

type avatarView struct {
	ImageURL string
	Username string
	Size     string
	Initial  string
}

type carouselView struct {
	UserID string
	Posts  []model.Post
	Failed bool
}

type profileView struct {
	Username string
	User     model.User
	Avatar   avatarView
	Carousel carouselView
	Props    Props
}

// View рендерит страницу профиля по Props.
type View struct {
	router *query.Router
	log    *slog.Logger
}

// NewView создаёт представление. router используется только для запросов,
// которых нет в гидрированном состоянии (карусель постов).
func NewView(router *query.Router, log *slog.Logger) *View {
	return &View{router: router, log: log}
}

// Render гидрирует клиент из props.State и читает пользователя только из кэша.
// Если пользователя нет, рендерится заглушка и больше запросов не делается.
func (v *View) Render(ctx context.Context, w io.Writer, props Props) error {
	client := query.NewClient(v.router)
	client.Hydrate(props.State)

	var user *model.User
	if _, err := client.Peek(api.GetUserByUsername, api.UsernameInput{Username: props.Username}, &user); err != nil {
		return err
	}
	if user == nil {
		return templates.ExecuteTemplate(w, "notfound", nil)
	}

	view := profileView{
		Username: props.Username,
		User:     *user,
		Avatar: avatarView{
			ImageURL: user.ImageURL,
			Username: user.Username,
			Size:     AvatarSize,
			Initial:  initial(user.Username),
		},
		Carousel: v.carousel(ctx, client, user.ID),
		Props:    props,
	}

	if err := templates.ExecuteTemplate(w, "profile", view); err != nil {
		return fmt.Errorf("execute profile template: %w", err)
	}
	return nil
}

// carousel загружает посты пользователя. Ошибка не ломает страницу,
// карусель показывает состояние ошибки.
func (v *View) carousel(ctx context.Context, client *query.Client, userID string) carouselView {
	var posts []model.Post
	err := client.Fetch(ctx, api.GetPostsByUserID, api.UserIDInput{UserID: userID}, &posts)
	if err != nil {
		v.log.Warn("posts carousel query failed", slog.String("user_id", userID), slog.Any("err", err))
		return carouselView{UserID: userID, Failed: true}
	}
	return carouselView{UserID: userID, Posts: posts}
}

func initial(username string) string {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
