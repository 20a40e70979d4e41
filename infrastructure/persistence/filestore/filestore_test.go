package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"portfolio/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

type record struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestDocumentStore_SeedsMissingFile(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "data")
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())

	// Act
	items, err := store.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"projects": []}`, string(raw))
}

func TestDocumentStore_ReplaceThenLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())

	want := []record{{ID: 1, Title: "a", Tags: []string{"go"}}, {ID: 2, Title: "b", Tags: []string{}}}
	require.NoError(t, store.Replace(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files are left behind")
	assert.Equal(t, "projects.json", entries[0].Name())
}

func TestDocumentStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte("{not json"), 0o644))
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())

	_, err := store.Load(context.Background())

	assert.Error(t, err)
}

func TestDocumentStore_MissingKeyIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte(`{"other": []}`), 0o644))
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())

	items, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []record{}, items)
}

func TestDocumentStore_SeedKeepsConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())

	// Another writer lands between the failed read and the seed.
	require.NoError(t, store.Replace(ctx, []record{{ID: 1, Title: "kept"}}))
	require.NoError(t, store.seed())

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Title: "kept"}}, items)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocumentStore_ConcurrentFirstLoads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewDocumentStore[record](dir, "projects", zap.NewNop())
	other := NewDocumentStore[record](dir, "projects", zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Load(ctx)
			assert.NoError(t, err)
		}()
	}
	require.NoError(t, other.Replace(ctx, []record{{ID: 3, Title: "written"}}))
	wg.Wait()

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 3, Title: "written"}}, items)
}

func TestDocumentStore_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	store := NewDocumentStore[record](t.TempDir(), "projects", zap.NewNop())
	require.NoError(t, store.Replace(context.Background(), []record{{ID: 1}}))
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"filestore.replace", "filestore.load"}, names)
}

type recordingCache struct {
	mu   sync.Mutex
	tags []string
}

func (c *recordingCache) GetCached(ctx context.Context, tag string, ttl time.Duration, producer ports.Producer) (interface{}, error) {
	return producer(ctx)
}

func (c *recordingCache) Invalidate(ctx context.Context, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = append(c.tags, tags...)
}

func (c *recordingCache) invalidated() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tags...)
}

func TestWatcher_InvalidatesOnEdit(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	cache := &recordingCache{}
	w, err := NewWatcher(dir, map[string][]string{
		"projects.json": {"projects", "featured-projects"},
	}, cache, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start()
	defer w.Stop()

	// Act
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte(`{"projects": []}`), 0o644))

	// Assert
	assert.Eventually(t, func() bool {
		return len(cache.invalidated()) > 0
	}, 2*time.Second, 20*time.Millisecond)
	assert.ElementsMatch(t, []string{"projects", "featured-projects"}, cache.invalidated()[:2])
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil, &recordingCache{}, zap.NewNop())
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}
