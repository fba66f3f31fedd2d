package tokenfakerepo

import (
	"fmt"
	"sync"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo is an in-memory token.Repo. Failures can be injected per key to exercise
// the store's error handling.
type FakeTokenRepo struct {
	values     map[string]string
	failGet    map[string]error
	failDelete map[string]error
	lock       sync.RWMutex
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		values:     make(map[string]string),
		failGet:    make(map[string]error),
		failDelete: make(map[string]error),
	}
}

func (tr *FakeTokenRepo) Get(key string) (string, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	if err, ok := tr.failGet[key]; ok {
		return "", err
	}
	v, ok := tr.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, errors.ErrKeyNotFound)
	}
	return v, nil
}

func (tr *FakeTokenRepo) Put(key, value string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.values[key] = value
	return nil
}

func (tr *FakeTokenRepo) PutAll(entries map[string]string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	for k, v := range entries {
		tr.values[k] = v
	}
	return nil
}

func (tr *FakeTokenRepo) Delete(key string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if err, ok := tr.failDelete[key]; ok {
		return err
	}
	delete(tr.values, key)
	return nil
}

// FailGet makes every Get of key return err
func (tr *FakeTokenRepo) FailGet(key string, err error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.failGet[key] = err
}

// FailDelete makes every Delete of key return err
func (tr *FakeTokenRepo) FailDelete(key string, err error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.failDelete[key] = err
}

// Len returns the number of stored keys
func (tr *FakeTokenRepo) Len() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return len(tr.values)
}
