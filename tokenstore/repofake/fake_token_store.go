package faketokenstore

import (
	"sync"

	"github.com/insightworks/insights-cli/tokenstore"
)

var _ tokenstore.Repo = (*FakeTokenStore)(nil)

// FakeTokenStore is an in-memory token store for tests.
type FakeTokenStore struct {
	pair tokenstore.Pair
	lock sync.RWMutex

	SetCalls   int
	ClearCalls int
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{}
}

func (ts *FakeTokenStore) Access() string {
	ts.lock.RLock()
	defer ts.lock.RUnlock()
	return ts.pair.Access
}

func (ts *FakeTokenStore) Refresh() string {
	ts.lock.RLock()
	defer ts.lock.RUnlock()
	return ts.pair.Refresh
}

func (ts *FakeTokenStore) SetTokens(pair tokenstore.Pair) error {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	ts.pair = pair
	ts.SetCalls++
	return nil
}

func (ts *FakeTokenStore) Clear() error {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	ts.pair = tokenstore.Pair{}
	ts.ClearCalls++
	return nil
}
