package db

type Reader interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
}

type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	ValueSize() int
	// Write applies the batch atomically.
	Write() error
	Reset()
}

type Database interface {
	Reader
	NewBatch() Batch
	Close() error
}
