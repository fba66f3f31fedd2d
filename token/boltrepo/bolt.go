// Package boltrepo provides a BBolt-backed token repository.
package boltrepo

import (
	"fmt"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/internal/seal"
	"github.com/jrsteele09/go-finance-client/token"
	"go.etcd.io/bbolt"
)

var bucketName = []byte("session")

// Repo implements token.Repo on a BBolt database file.
type Repo struct {
	db     *bbolt.DB
	sealer *seal.Sealer
}

var _ token.Repo = (*Repo)(nil)

type Option func(*Repo)

// WithSealer encrypts every value before it is written.
func WithSealer(s *seal.Sealer) Option {
	return func(r *Repo) {
		r.sealer = s
	}
}

// New returns a Repo backed by the given BBolt database.
func New(db *bbolt.DB, opts ...Option) (*Repo, error) {
	r := &Repo{db: db}
	for _, opt := range opts {
		opt(r)
	}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}
	return r, nil
}

// NewFromFile opens a BBolt database at path and returns a new Repo.
func NewFromFile(path string, options *bbolt.Options, opts ...Option) (*Repo, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	r, err := New(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the underlying BBolt database.
func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Get(key string) (string, error) {
	var value string
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%s: %w", key, errors.ErrKeyNotFound)
		}
		plain, err := r.open(data)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		value = string(plain)
		return nil
	})
	return value, err
}

func (r *Repo) Put(key, value string) error {
	return r.PutAll(map[string]string{key: value})
}

func (r *Repo) PutAll(entries map[string]string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		for k, v := range entries {
			data, err := r.seal([]byte(v))
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			if err := b.Put([]byte(k), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) Delete(key string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (r *Repo) seal(value []byte) ([]byte, error) {
	if r.sealer == nil {
		return value, nil
	}
	return r.sealer.Seal(value)
}

// open copies the value out of the bbolt page; the slice is only valid inside the tx.
func (r *Repo) open(data []byte) ([]byte, error) {
	if r.sealer == nil {
		return append([]byte(nil), data...), nil
	}
	return r.sealer.Open(data)
}
