package proc

import (
	"encoding/json"
	"sort"
	"time"

	log "github.com/go-pkgz/lgr"

	"epiplan/internal/app/epiplan/episode"
)

// Repository is the in-memory ordered collection of episodes, persisted as one
// JSON array under a single key. Storage failures are logged and never returned,
// the in-memory state stays authoritative for the session.
type Repository struct {
	Store    Store
	Key      string
	ShowName string
	Now      func() time.Time

	episodes []episode.Episode
}

// NewRepository makes repository and loads stored episodes
func NewRepository(store Store, key, showName string) *Repository {
	r := &Repository{Store: store, Key: key, ShowName: showName, Now: time.Now}
	r.episodes = r.Load()
	return r
}

// Load reads episodes from store. Absent or malformed payload gives empty list.
func (r *Repository) Load() []episode.Episode {
	data, ok, err := r.Store.Get(r.Key)
	if err != nil {
		log.Printf("[WARN] can't load episodes, %v", err)
		return []episode.Episode{}
	}
	if !ok || data == "" {
		return []episode.Episode{}
	}

	var res []episode.Episode
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		log.Printf("[WARN] failed to unmarshal episodes, %v", err)
		return []episode.Episode{}
	}
	if res == nil {
		res = []episode.Episode{}
	}
	return res
}

// Upsert replaces episode with the same date in place or appends a new one.
// Returns true if existing episode was replaced.
func (r *Repository) Upsert(ep episode.Episode) bool {
	replaced := false
	if i := r.index(ep.Date); i >= 0 {
		r.episodes[i] = ep
		replaced = true
	} else {
		r.episodes = append(r.episodes, ep)
	}

	r.persist()
	return replaced
}

// Delete removes episode by date. Returns false if nothing matched, the list is persisted anyway.
func (r *Repository) Delete(date string) bool {
	res := make([]episode.Episode, 0, len(r.episodes))
	for _, ep := range r.episodes {
		if ep.Date == date {
			continue
		}
		res = append(res, ep)
	}
	removed := len(res) != len(r.episodes)
	r.episodes = res

	r.persist()
	return removed
}

// Find episode by date
func (r *Repository) Find(date string) (episode.Episode, bool) {
	if i := r.index(date); i >= 0 {
		return r.episodes[i], true
	}
	return episode.Episode{}, false
}

// Exists reports whether episode with date is stored
func (r *Repository) Exists(date string) bool {
	return r.index(date) >= 0
}

// Duplicate copies episode found by date to today's date with derived title and
// without id. The copy is not stored.
func (r *Repository) Duplicate(date string) (episode.Episode, bool) {
	src, ok := r.Find(date)
	if !ok {
		return episode.Episode{}, false
	}

	dup := src
	dup.ID = 0
	dup.Date = episode.Today(r.now())
	dup.Title = episode.DeriveTitle(r.ShowName, dup.Date)
	return dup, true
}

// All returns episodes in insertion order
func (r *Repository) All() []episode.Episode {
	res := make([]episode.Episode, len(r.episodes))
	copy(res, r.episodes)
	return res
}

// Len is the number of stored episodes
func (r *Repository) Len() int {
	return len(r.episodes)
}

// Sorted returns episodes by date, most recent first. Equal or unparsable dates keep
// insertion order, unparsable ones go last.
func (r *Repository) Sorted() []episode.Episode {
	res := r.All()
	keys := make(map[string]time.Time, len(res))
	for _, ep := range res {
		if t, err := episode.ParseDate(ep.Date); err == nil {
			keys[ep.Date] = t
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return keys[res[i].Date].After(keys[res[j].Date])
	})
	return res
}

func (r *Repository) index(date string) int {
	for i, ep := range r.episodes {
		if ep.Date == date {
			return i
		}
	}
	return -1
}

func (r *Repository) persist() {
	jdata, err := json.Marshal(r.episodes)
	if err != nil {
		log.Printf("[ERROR] can't marshal episodes, %v", err)
		return
	}

	if err := r.Store.Set(r.Key, string(jdata)); err != nil {
		log.Printf("[ERROR] can't save episodes, %v", err)
	}
}

func (r *Repository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
