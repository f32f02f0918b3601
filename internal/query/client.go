package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNoRouter возвращается, если клиенту без роутера нужно выполнить процедуру.
var ErrNoRouter = errors.New("query client has no router")

type entry struct {
	key       Key
	data      json.RawMessage
	updatedAt time.Time
}

// Client выполняет процедуры роутера и кэширует их результаты.
// Клиент создаётся на один запрос или одну генерацию страницы.
type Client struct {
	router *Router
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewClient создаёт клиент поверх роутера. router может быть nil,
// тогда клиент отдаёт только гидрированные данные.
func NewClient(router *Router) *Client {
	return &Client{
		router:  router,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Prefetch выполняет процедуру и сохраняет результат в кэше для последующей дегидрации.
// Ошибка процедуры возвращается как *UpstreamError.
func (c *Client) Prefetch(ctx context.Context, path string, input any) error {
	key, err := NewKey(path, input)
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, key)
	return err
}

// Fetch возвращает результат из кэша, а при промахе выполняет процедуру.
// out получает JSON-результат через json.Unmarshal.
func (c *Client) Fetch(ctx context.Context, path string, input any, out any) error {
	key, err := NewKey(path, input)
	if err != nil {
		return err
	}

	data, ok := c.lookup(key)
	if !ok {
		data, err = c.execute(ctx, key)
		if err != nil {
			return err
		}
	}
	return decode(key, data, out)
}

// Peek читает результат только из кэша и никогда не выполняет процедуру.
// Возвращает false, если результата в кэше нет.
func (c *Client) Peek(path string, input any, out any) (bool, error) {
	key, err := NewKey(path, input)
	if err != nil {
		return false, err
	}

	data, ok := c.lookup(key)
	if !ok {
		return false, nil
	}
	return true, decode(key, data, out)
}

// Dehydrate возвращает снимок кэша, отсортированный по ключу.
func (c *Client) Dehydrate() DehydratedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := DehydratedState{Queries: make([]DehydratedQuery, 0, len(c.entries))}
	for _, e := range c.entries {
		state.Queries = append(state.Queries, DehydratedQuery{
			QueryKey: e.key,
			State: QueryState{
				Data:          e.data,
				DataUpdatedAt: e.updatedAt.UnixMilli(),
				Status:        StatusSuccess,
			},
		})
	}
	sort.Slice(state.Queries, func(i, j int) bool {
		return state.Queries[i].QueryKey.String() < state.Queries[j].QueryKey.String()
	})
	return state
}

// Hydrate кладёт результаты из снимка в кэш. Уже существующие более свежие записи не перезаписываются.
func (c *Client) Hydrate(state DehydratedState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, q := range state.Queries {
		if q.State.Status != "" && q.State.Status != StatusSuccess {
			continue
		}
		updatedAt := time.UnixMilli(q.State.DataUpdatedAt)
		k := q.QueryKey.String()
		if cur, ok := c.entries[k]; ok && !cur.updatedAt.Before(updatedAt) {
			continue
		}
		data := q.State.Data
		if len(data) == 0 {
			data = json.RawMessage("null")
		}
		c.entries[k] = entry{key: q.QueryKey, data: data, updatedAt: updatedAt}
	}
}

func (c *Client) lookup(key Key) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return e.data, ok
}

func (c *Client) execute(ctx context.Context, key Key) (json.RawMessage, error) {
	if c.router == nil {
		return nil, &UpstreamError{Path: key.Path, Err: ErrNoRouter}
	}

	data, err := c.router.Call(ctx, key.Path, key.Input)
	if err != nil {
		return nil, &UpstreamError{Path: key.Path, Err: err}
	}

	c.mu.Lock()
	c.entries[key.String()] = entry{key: key, data: data, updatedAt: c.now()}
	c.mu.Unlock()

	return data, nil
}

func decode(key Key, data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode result of %s: %w", key.Path, err)
	}
	return nil
}
