package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const tokenFileMode = 0o600

var _ Repo = (*FileStore)(nil)

// FileStore persists the token pair as a single JSON document on disk, so a
// login survives process restarts. Reads always reflect the last committed
// pair; writes replace the whole file atomically.
type FileStore struct {
	path string
	lock sync.RWMutex
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created if missing. The file itself is only created on the
// first SetTokens call.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] creating state directory")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Access() string {
	return fs.read().Access
}

func (fs *FileStore) Refresh() string {
	return fs.read().Refresh
}

func (fs *FileStore) SetTokens(pair Pair) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return errors.Wrap(err, "[FileStore.SetTokens] encoding tokens")
	}

	// Write to a temp file in the same directory and rename over the target
	// so readers never observe one token without the other.
	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".tokens-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore.SetTokens] creating temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.SetTokens] writing tokens")
	}
	if err := tmp.Chmod(tokenFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.SetTokens] setting file mode")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.SetTokens] closing temp file")
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.SetTokens] committing tokens")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] removing token file")
	}
	return nil
}

// read loads the committed pair. A missing, unreadable, or corrupt file all
// behave as "nothing stored" rather than surfacing an error, matching the
// opaque-store contract.
func (fs *FileStore) read() Pair {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return Pair{}
	}
	var pair Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return Pair{}
	}
	return pair
}
