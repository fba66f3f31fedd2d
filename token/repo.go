package token

// Repo is the durable key/value medium behind the Store. Values must survive process restarts
// for the durable implementations; Get returns errors.ErrKeyNotFound for missing keys.
type Repo interface {
	Get(key string) (string, error)
	Put(key, value string) error
	// PutAll writes every entry in one operation, all or nothing
	PutAll(entries map[string]string) error
	Delete(key string) error
}
