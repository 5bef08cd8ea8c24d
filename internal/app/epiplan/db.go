package epiplan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"epiplan/internal/app/epiplan/proc"
)

// NewBoltDB opens bolt database file, creating its folder
func NewBoltDB(path string) (*bolt.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("make db dir %s: %w", dir, err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}
	return db, nil
}

// NewStore makes persistent store for driver: bolt, sqlite or memory.
// The returned close func releases the underlying database.
func NewStore(driver, path string) (proc.Store, func() error, error) {
	noop := func() error { return nil }
	switch driver {
	case "bolt", "":
		db, err := NewBoltDB(path)
		if err != nil {
			return nil, noop, err
		}
		return &proc.BoltDB{DB: db}, db.Close, nil
	case "sqlite":
		if dir := filepath.Dir(path); path != ":memory:" && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, noop, fmt.Errorf("make db dir %s: %w", dir, err)
			}
		}
		s, err := proc.NewSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "memory":
		return &proc.Memory{}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", driver)
	}
}

// NewS3Client makes minio client for s3 compatible storage
func NewS3Client(endpoint, key, secret string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("make s3 client for %s: %w", endpoint, err)
	}
	return client, nil
}
