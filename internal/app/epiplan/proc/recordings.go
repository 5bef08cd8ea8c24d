package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// Recordings finds recorded episode files in a folder
type Recordings struct {
	Dir string
}

// Find returns path of the first mp3 file, by name, containing date in its name
func (r Recordings) Find(date string) (string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return "", fmt.Errorf("can't scan folder %s: %w", r.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		if strings.Contains(e.Name(), date) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no recording for %s in %s", date, r.Dir)
	}

	sort.Strings(names)
	if len(names) > 1 {
		log.Printf("[WARN] %d recordings for %s, using %s", len(names), date, names[0])
	}
	return filepath.Join(r.Dir, names[0]), nil
}
