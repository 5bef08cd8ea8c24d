package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
)

// Download saves exported files into a folder. Files appear complete or not at all.
type Download struct {
	Dir string
}

// Save writes data as file name, returns full path
func (d Download) Save(name string, data []byte) (string, error) {
	return d.Write(name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Write streams file name through fn, a failed fn leaves nothing behind
func (d Download) Write(name string, fn func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o750); err != nil {
		return "", fmt.Errorf("make export dir %s: %w", d.Dir, err)
	}

	tmp, err := os.CreateTemp(d.Dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", name, err)
	}
	defer func() {
		if _, serr := os.Stat(tmp.Name()); serr == nil {
			if rerr := os.Remove(tmp.Name()); rerr != nil {
				log.Printf("[WARN] can't remove %s, %v", tmp.Name(), rerr)
			}
		}
	}()

	if err := fn(tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	target := filepath.Join(d.Dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("rename to %s: %w", target, err)
	}
	log.Printf("[INFO] exported %s", target)
	return target, nil
}
