package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"portfolio/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DocumentStore keeps one collection in a JSON file shaped like
// {"projects": [...]}. The whole file is rewritten on every Replace
// through a temp file and a rename, so readers never see a torn document.
type DocumentStore[T any] struct {
	mu     sync.Mutex
	dir    string
	name   string
	logger *zap.Logger
}

// NewDocumentStore creates a store for <dir>/<name>.json
func NewDocumentStore[T any](dir, name string, logger *zap.Logger) *DocumentStore[T] {
	return &DocumentStore[T]{
		dir:    dir,
		name:   name,
		logger: logger,
	}
}

// Path returns the backing file path
func (s *DocumentStore[T]) Path() string {
	return filepath.Join(s.dir, s.name+".json")
}

// Name returns the collection name
func (s *DocumentStore[T]) Name() string {
	return s.name
}

// Load reads the whole collection. A missing file is created with an
// empty collection unless another writer creates it first.
func (s *DocumentStore[T]) Load(ctx context.Context) (items []T, err error) {
	ctx, span := observability.StartSpan(ctx, "filestore.load", attribute.String("collection", s.name))
	defer func() { observability.EndSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.seed(); err != nil {
			return nil, err
		}
		raw, err = os.ReadFile(s.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path(), err)
	}

	var doc map[string][]T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Path(), err)
	}

	items = doc[s.name]
	if items == nil {
		items = []T{}
	}
	span.SetAttributes(attribute.Int("items", len(items)))
	return items, nil
}

// Replace overwrites the whole collection
func (s *DocumentStore[T]) Replace(ctx context.Context, items []T) (err error) {
	_, span := observability.StartSpan(ctx, "filestore.replace",
		attribute.String("collection", s.name),
		attribute.Int("items", len(items)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.encode(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpName, err := s.writeTemp(data)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path(), err)
	}
	return nil
}

// seed publishes an empty document with a hard link, which fails when the
// file already exists. A concurrent writer's document is never overwritten.
func (s *DocumentStore[T]) seed() error {
	data, err := s.encode(nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpName, err := s.writeTemp(data)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	err = os.Link(tmpName, s.Path())
	switch {
	case err == nil:
		s.logger.Info("Seeded empty collection", zap.String("path", s.Path()))
		return nil
	case errors.Is(err, fs.ErrExist):
		return nil
	default:
		return fmt.Errorf("failed to seed %s: %w", s.Path(), err)
	}
}

func (s *DocumentStore[T]) encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{s.name: items}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", s.name, err)
	}
	return append(data, '\n'), nil
}

// writeTemp leaves a fully synced copy of data next to the target file.
// The caller owns removing it.
func (s *DocumentStore[T]) writeTemp(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, s.name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	return tmpName, nil
}
