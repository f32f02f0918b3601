package isr

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct{}

func (staticSource) GetStaticPaths() StaticPaths { return StaticPaths{Fallback: FallbackBlocking} }

func (staticSource) Generate(ctx context.Context, params Params) (Result, error) {
	return Result{HTML: []byte("ok"), Props: []byte(`{}`)}, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(10, time.Minute)
	s.now = clock.Now

	require.NoError(t, s.Set(ctx, Page{Path: "/@alice", HTML: []byte("ok")}))

	clock.Advance(59 * time.Second)
	_, ok, err := s.Get(ctx, "/@alice")
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, err = s.Get(ctx, "/@alice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len(), "expired page is removed on read")
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(10, 0)
	s.now = clock.Now

	require.NoError(t, s.Set(ctx, Page{Path: "/@alice"}))
	clock.Advance(365 * 24 * time.Hour)

	_, ok, err := s.Get(ctx, "/@alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerator_ExpiredPageResetsState(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(10, time.Minute)
	store.now = clock.Now
	g := NewGenerator(staticSource{}, store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := g.Serve(ctx, "/@alice", Params{"slug": "@alice"})
	require.NoError(t, err)
	require.Equal(t, Cached, g.State("/@alice"))

	clock.Advance(2 * time.Minute)

	_, ok := g.lookup(ctx, "/@alice")
	assert.False(t, ok)
	assert.Equal(t, NotGenerated, g.State("/@alice"))
}

func TestGenerator_MissKeepsGeneratingState(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(staticSource{}, NewMemoryStore(10, 0), slog.New(slog.NewTextHandler(io.Discard, nil)))

	g.setState("/@bob", Generating)

	_, ok := g.lookup(ctx, "/@bob")
	assert.False(t, ok)
	assert.Equal(t, Generating, g.State("/@bob"))
}
