package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"profile-page-service/internal/isr"
	"profile-page-service/internal/page"
	"profile-page-service/internal/service"
)

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	const handlerName = "profile_page"

	p, ok := h.servePage(w, r, handlerName)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.HTML)
}

func (h *Handler) handlePageData(w http.ResponseWriter, r *http.Request) {
	const handlerName = "profile_page_data"

	p, ok := h.servePage(w, r, handlerName)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.Props)
}

// routeSlug возвращает слаг, декодированный ровно один раз.
// chi матчит по r.URL.RawPath, если он задан, и тогда параметр ещё закодирован;
// иначе параметр взят из уже декодированного r.URL.Path.
func routeSlug(r *http.Request) (string, error) {
	slug := chi.URLParam(r, "slug")
	if r.URL.RawPath == "" {
		return slug, nil
	}
	return url.PathUnescape(slug)
}

// servePage достаёт слаг из маршрута и отдаёт страницу из рантайма генерации.
// Ключ страницы — путь "/<slug>", общий для HTML и JSON-представления.
func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, handlerName string) (isr.Page, bool) {
	slug, err := routeSlug(r)
	if err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("malformed path"))
		return isr.Page{}, false
	}

	p, err := h.Pages.Serve(r.Context(), "/"+slug, isr.Params{page.SlugParam: slug})
	if err != nil {
		h.writeError(w, handlerName, err)
		return isr.Page{}, false
	}
	return p, true
}
