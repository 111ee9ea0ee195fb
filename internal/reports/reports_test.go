package reports_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/internal/reports"
	"github.com/JaimeStill/spotlight/pkg/lifecycle"
	"github.com/JaimeStill/spotlight/pkg/outline"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func definition(t *testing.T) *form.Definition {
	t.Helper()
	def, err := form.Default()
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return def
}

func renderer(t *testing.T) *pdf.Renderer {
	t.Helper()
	cfg := pdf.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize render config: %v", err)
	}
	return pdf.NewRenderer(&cfg, discard())
}

func submission() form.Submission {
	return form.Submission{Values: map[string]string{
		"team":     "[DS] Tim Data Science",
		"members":  "6",
		"period":   "Maret 2025",
		"progress": "1. Pipeline\n2. Prototype",
		"actions":  "- Review\n- Publish",
	}}
}

type fakeUploader struct {
	mu    sync.Mutex
	names []string
	data  map[string][]byte
	err   error
	gate  chan struct{}
}

func (u *fakeUploader) Put(ctx context.Context, data []byte, name string) (string, error) {
	if u.gate != nil {
		select {
		case <-u.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.err != nil {
		return "", u.err
	}
	if u.data == nil {
		u.data = make(map[string][]byte)
	}
	u.names = append(u.names, name)
	u.data[name] = data
	return "https://blobs.test/reports/" + name, nil
}

type memoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string
	ops   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		blobs: make(map[string][]byte),
		types: make(map[string]string),
	}
}

func (m *memoryStore) Start(*lifecycle.Coordinator) error { return nil }

func (m *memoryStore) Ready() bool { return true }

func (m *memoryStore) Upload(_ context.Context, key string, r io.Reader, contentType string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "upload "+key)
	m.blobs[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryStore) Download(_ context.Context, key string) (*storage.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   m.types[key],
		ContentLength: int64(len(data)),
	}, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "delete "+key)
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *memoryStore) URL(key string) string {
	return "https://blobs.test/spotlight/" + key
}

func newPipeline(t *testing.T, r reports.Renderer, u reports.Uploader) *reports.Pipeline {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC) }
	return reports.NewPipeline(definition(t), outline.New(5), r, u, discard()).WithClock(clock)
}

func hasPrefix(data []byte) bool {
	return strings.HasPrefix(string(data), "%PDF-")
}
