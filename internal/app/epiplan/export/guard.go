package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
)

// ErrInFlight is returned when another export is still running
var ErrInFlight = errors.New("export already in progress")

// Guard lets only one export run at a time, within the process and across processes
// sharing the export folder
type Guard struct {
	dir  string
	busy atomic.Bool
	lock *flock.Flock
}

// NewGuard makes guard locking a file in dir
func NewGuard(dir string) *Guard {
	return &Guard{dir: dir, lock: flock.New(filepath.Join(dir, ".export.lock"))}
}

// Acquire takes the guard, call release when export is done
func (g *Guard) Acquire() (release func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}

	if err := os.MkdirAll(g.dir, 0o750); err != nil {
		g.busy.Store(false)
		return nil, fmt.Errorf("make export dir %s: %w", g.dir, err)
	}
	ok, err := g.lock.TryLock()
	if err != nil {
		g.busy.Store(false)
		return nil, fmt.Errorf("lock %s: %w", g.lock.Path(), err)
	}
	if !ok {
		g.busy.Store(false)
		return nil, ErrInFlight
	}

	return func() {
		_ = g.lock.Unlock()
		g.busy.Store(false)
	}, nil
}
