package storefakes

import (
	"sync"

	"github.com/jrsteele09/go-care-console/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory session.Store for tests.
type FakeStore struct {
	identity *session.Identity
	lock     sync.RWMutex

	SaveCalls  int
	ClearCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Save(identity *session.Identity) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.SaveCalls++
	fs.identity = identity
	return nil
}

func (fs *FakeStore) Load() (*session.Identity, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.identity, nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.ClearCalls++
	fs.identity = nil
	return nil
}
