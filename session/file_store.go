package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// sessionFileName is the well-known key the identity is serialized under.
const sessionFileName = "session.json"

var _ Store = (*FileStore)(nil)

// FileStore keeps the Identity as a JSON file in a data folder, surviving
// restarts of the console for the lifetime of the login.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore creates the data folder if needed and returns a store rooted
// in it.
func NewFileStore(dataFolder string) (*FileStore, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] create data folder")
	}
	return &FileStore{path: filepath.Join(dataFolder, sessionFileName)}, nil
}

func (fs *FileStore) Save(identity *Identity) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	payload, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal identity")
	}
	if err := os.WriteFile(fs.path, payload, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write session file")
	}
	return nil
}

func (fs *FileStore) Load() (*Identity, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	payload, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] read session file")
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] unmarshal identity")
	}
	return &identity, nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove session file")
	}
	return nil
}
