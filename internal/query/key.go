package query

import (
	"encoding/json"
	"fmt"
)

// Key идентифицирует результат запроса: путь процедуры и её вход.
// В JSON кодируется как массив [path, input].
type Key struct {
	Path  string
	Input json.RawMessage
}

// NewKey строит ключ, приводя вход к каноничному JSON
// (ключи объектов отсортированы, без пробелов).
func NewKey(path string, input any) (Key, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return Key{}, fmt.Errorf("encode input for %s: %w", path, err)
	}
	canon, err := canonicalJSON(raw)
	if err != nil {
		return Key{}, fmt.Errorf("canonicalize input for %s: %w", path, err)
	}
	return Key{Path: path, Input: canon}, nil
}

// String используется как ключ кэша клиента.
func (k Key) String() string {
	return k.Path + "?input=" + string(k.Input)
}

func (k Key) MarshalJSON() ([]byte, error) {
	input := k.Input
	if len(input) == 0 {
		input = json.RawMessage("null")
	}
	return json.Marshal([]any{k.Path, input})
}

func (k *Key) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("decode query key: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("decode query key: want 2 elements, got %d", len(parts))
	}

	var path string
	if err := json.Unmarshal(parts[0], &path); err != nil {
		return fmt.Errorf("decode query key path: %w", err)
	}
	canon, err := canonicalJSON(parts[1])
	if err != nil {
		return fmt.Errorf("decode query key input: %w", err)
	}

	k.Path = path
	k.Input = canon
	return nil
}

func canonicalJSON(raw []byte) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
