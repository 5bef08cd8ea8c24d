package proc

import (
	"fmt"

	"github.com/boltdb/bolt"
	log "github.com/go-pkgz/lgr"
)

// Store is opaque key-value storage for serialized planner data
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

const defaultBucket = "planner"

// BoltDB store
type BoltDB struct {
	DB     *bolt.DB
	Bucket string
}

// Get value by key from bolt bucket, missing bucket or key is not an error
func (b *BoltDB) Get(key string) (value string, ok bool, err error) {
	err = b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(b.bucket()))
		if bucket == nil {
			log.Printf("[DEBUG] no bucket %s yet", b.bucket())
			return nil
		}

		item := bucket.Get([]byte(key))
		if item == nil {
			return nil
		}
		value, ok = string(item), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return value, ok, nil
}

// Set value by key to bolt bucket
func (b *BoltDB) Set(key, value string) error {
	err := b.DB.Update(func(tx *bolt.Tx) error {
		bucket, e := tx.CreateBucketIfNotExists([]byte(b.bucket()))
		if e != nil {
			return e
		}

		log.Printf("[DEBUG] save %s, %d bytes", key, len(value))
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

func (b *BoltDB) bucket() string {
	if b.Bucket == "" {
		return defaultBucket
	}
	return b.Bucket
}
