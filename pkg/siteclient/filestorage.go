package siteclient

import (
	"encoding/json"
	"os"
	"sync"
)

// FileStorage is a Storage backed by a single JSON file. Writes are best
// effort: an unwritable file degrades to in-memory-only state, matching
// how the browser client treats unavailable localStorage.
type FileStorage struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

func NewFileStorage(path string) *FileStorage {
	fs := &FileStorage{path: path, values: make(map[string]string)}
	if raw, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(raw, &fs.values)
	}
	return fs
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.flush()
}

func (f *FileStorage) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	f.flush()
}

func (f *FileStorage) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	return keys
}

// flush writes the map out under f.mu.
func (f *FileStorage) flush() {
	raw, err := json.Marshal(f.values)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, raw, 0o600)
}

var _ Storage = (*FileStorage)(nil)
