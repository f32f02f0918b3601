package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Procedure обрабатывает JSON-вход и возвращает значение, которое будет сериализовано в JSON.
type Procedure func(ctx context.Context, input json.RawMessage) (any, error)

// Router хранит процедуры по имени вида "profile.getUserByUsername".
type Router struct {
	mu    sync.RWMutex
	procs map[string]Procedure
}

// NewRouter создаёт пустой роутер.
func NewRouter() *Router {
	return &Router{procs: make(map[string]Procedure)}
}

// Register добавляет процедуру. Повторная регистрация пути — ошибка программиста.
func (r *Router) Register(path string, p Procedure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.procs[path]; exists {
		panic(fmt.Sprintf("query: procedure %q already registered", path))
	}
	r.procs[path] = p
}

// Handle регистрирует типизированную процедуру: вход декодируется в In,
// ошибка декодирования превращается в BAD_REQUEST.
func Handle[In, Out any](r *Router, path string, fn func(ctx context.Context, in In) (Out, error)) {
	r.Register(path, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var in In
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, &Error{Code: CodeBadRequest, Message: "invalid input", Err: err}
		}
		return fn(ctx, in)
	})
}

// Paths возвращает отсортированный список зарегистрированных процедур.
func (r *Router) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.procs))
	for p := range r.procs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Call выполняет процедуру и возвращает её результат в JSON.
func (r *Router) Call(ctx context.Context, path string, input json.RawMessage) (json.RawMessage, error) {
	r.mu.RLock()
	proc, ok := r.procs[path]
	r.mu.RUnlock()
	if !ok {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("no procedure on path %q", path)}
	}

	out, err := proc(ctx, input)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Message: "encode result", Err: err}
	}
	return data, nil
}
