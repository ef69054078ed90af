package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Object is a stored file as served back by MemoryStore.Open.
type Object struct {
	ContentType  string
	CacheSeconds int
	Data         []byte
}

// MemoryStore implements ObjectStorage in process, for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*Object
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]*Object),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (m *MemoryStore) Upload(_ context.Context, input *UploadInput) error {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	full := input.Bucket + "/" + input.Key
	if _, exists := m.objects[full]; exists {
		return ErrObjectExists
	}
	m.objects[full] = &Object{
		ContentType:  input.ContentType,
		CacheSeconds: input.CacheSeconds,
		Data:         data,
	}
	return nil
}

func (m *MemoryStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", m.baseURL, bucket, key)
}

// Has reports whether bucket/key was uploaded.
func (m *MemoryStore) Has(bucket, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[bucket+"/"+key]
	return ok
}

// Open returns the object stored under bucket/key.
func (m *MemoryStore) Open(bucket, key string) (*Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket+"/"+key]
	return obj, ok
}
