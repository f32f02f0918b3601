package isr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"profile-page-service/internal/observability"
)

// Source — страница, которую умеет генерировать рантайм.
type Source interface {
	GetStaticPaths() StaticPaths
	Generate(ctx context.Context, params Params) (Result, error)
}

// Generator отдаёт страницы из Store и генерирует недостающие.
// Для одного пути одновременно выполняется не больше одной генерации,
// остальные запросы этого пути ждут её результата.
type Generator struct {
	src   Source
	store Store
	log   *slog.Logger
	now   func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	states   map[string]PageState
	declared map[string]Params
	fallback Fallback
}

// NewGenerator создаёт рантайм для страницы src. GetStaticPaths вызывается один раз.
func NewGenerator(src Source, store Store, log *slog.Logger) *Generator {
	paths := src.GetStaticPaths()

	declared := make(map[string]Params, len(paths.Paths))
	for _, p := range paths.Paths {
		declared[p.Path] = p.Params
	}

	return &Generator{
		src:      src,
		store:    store,
		log:      log,
		now:      time.Now,
		states:   make(map[string]PageState),
		declared: declared,
		fallback: paths.Fallback,
	}
}

// Prerender генерирует все заранее объявленные пути. Первая ошибка прерывает проход.
func (g *Generator) Prerender(ctx context.Context) error {
	for path, params := range g.declared {
		if _, err := g.Serve(ctx, path, params); err != nil {
			return fmt.Errorf("prerender %s: %w", path, err)
		}
	}
	g.log.Info("prerender finished", slog.Int("paths", len(g.declared)))
	return nil
}

// State возвращает состояние пути в этом инстансе.
func (g *Generator) State(path string) PageState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.states[path]
}

// Serve возвращает страницу для path. Если страницы нет в Store, вызывающий
// блокируется до окончания генерации. Генерация не отменяется вместе с ctx вызывающего:
// если вызывающий ушёл, она дорабатывает и сохраняет результат для следующих запросов.
func (g *Generator) Serve(ctx context.Context, path string, params Params) (Page, error) {
	if page, ok := g.lookup(ctx, path); ok {
		return page, nil
	}

	if g.fallback == FallbackFalse {
		if _, ok := g.declared[path]; !ok {
			return Page{}, ErrPageNotFound
		}
	}

	genCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan(path, func() (any, error) {
		return g.generate(genCtx, path, params)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Page{}, res.Err
		}
		return res.Val.(Page), nil
	case <-ctx.Done():
		return Page{}, ctx.Err()
	}
}

func (g *Generator) lookup(ctx context.Context, path string) (Page, bool) {
	page, ok, err := g.store.Get(ctx, path)
	if err != nil {
		// Недоступный кэш не должен ронять страницу: генерируем заново.
		observability.PageCacheLookupsTotal.WithLabelValues("error").Inc()
		g.log.Warn("page store get failed", slog.String("path", path), slog.Any("err", err))
		return Page{}, false
	}
	if !ok {
		// Страница истекла или вытеснена из Store.
		observability.PageCacheLookupsTotal.WithLabelValues("miss").Inc()
		g.forgetCached(path)
		return Page{}, false
	}

	observability.PageCacheLookupsTotal.WithLabelValues("hit").Inc()
	g.setState(path, Cached)
	return page, true
}

func (g *Generator) generate(ctx context.Context, path string, params Params) (Page, error) {
	// Страницу мог сохранить предыдущий генератор, пока мы ждали в singleflight.
	if page, ok, err := g.store.Get(ctx, path); err == nil && ok {
		g.setState(path, Cached)
		return page, nil
	}

	g.setState(path, Generating)
	start := g.now()

	res, err := g.src.Generate(ctx, params)
	observability.PageGenerationDuration.Observe(g.now().Sub(start).Seconds())
	if err != nil {
		g.clearState(path)
		observability.PageGenerationsTotal.WithLabelValues("error").Inc()
		g.log.Error("page generation failed", slog.String("path", path), slog.Any("err", err))
		return Page{}, err
	}

	page := Page{
		Path:        path,
		HTML:        res.HTML,
		Props:       res.Props,
		GeneratedAt: g.now(),
	}

	if err := g.store.Set(ctx, page); err != nil {
		// Страницу отдаём, но путь остаётся несгенерированным и будет сгенерирован снова.
		g.clearState(path)
		observability.PageGenerationsTotal.WithLabelValues("store_error").Inc()
		g.log.Error("page store set failed", slog.String("path", path), slog.Any("err", err))
		return page, nil
	}

	g.setState(path, Cached)
	observability.PageGenerationsTotal.WithLabelValues("success").Inc()
	g.log.Info("page generated",
		slog.String("path", path),
		slog.Duration("took", page.GeneratedAt.Sub(start)),
	)
	return page, nil
}

func (g *Generator) setState(path string, s PageState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.states[path] = s
}

func (g *Generator) clearState(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.states, path)
}

// forgetCached сбрасывает Cached, не трогая идущую генерацию.
func (g *Generator) forgetCached(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.states[path] == Cached {
		delete(g.states, path)
	}
}
