package proc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiplan/internal/app/epiplan/episode"
)

const testKey = "sliceix-episodes"

type failingStore struct {
	Memory
	failSet bool
}

func (f *failingStore) Set(key, value string) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(key, value)
}

func ep(date, title string) episode.Episode {
	res := episode.Episode{ID: 1, Date: date, Title: title}
	res.NewsStories[0] = episode.NewsSegment{Title: "n-" + title, Timestamp: "15:00"}
	return res
}

func TestRepositoryUpsertDistinct(t *testing.T) {
	repo := NewRepository(&Memory{}, testKey, "Show")
	assert.False(t, repo.Upsert(ep("2025-07-20", "A")))
	assert.False(t, repo.Upsert(ep("2025-07-27", "B")))

	sorted := repo.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "B", sorted[0].Title)
	assert.Equal(t, "A", sorted[1].Title)
}

func TestRepositoryUpsertReplacesInPlace(t *testing.T) {
	repo := NewRepository(&Memory{}, testKey, "Show")
	repo.Upsert(ep("2025-07-01", "A"))
	repo.Upsert(ep("2025-07-02", "B"))
	repo.Upsert(ep("2025-07-03", "C"))

	assert.True(t, repo.Upsert(ep("2025-07-02", "B2")))

	all := repo.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B2", "C"}, titles(all))
}

func TestRepositoryPersistRoundTrip(t *testing.T) {
	store := &Memory{}
	repo := NewRepository(store, testKey, "Show")
	sample := episode.Sample("Show")
	sample.ID = 1753574400000
	repo.Upsert(sample)
	repo.Upsert(ep("2025-08-03", "next"))

	reloaded := NewRepository(store, testKey, "Show")
	assert.Equal(t, repo.All(), reloaded.All())
}

func TestRepositoryLoadMalformed(t *testing.T) {
	store := &Memory{}
	require.NoError(t, store.Set(testKey, "{not json"))
	repo := NewRepository(store, testKey, "Show")
	assert.Equal(t, 0, repo.Len())
	assert.NotNil(t, repo.All())

	require.NoError(t, store.Set(testKey, "null"))
	assert.Empty(t, repo.Load())
}

func TestRepositoryPersistFailureKeepsMemory(t *testing.T) {
	store := &failingStore{failSet: true}
	repo := NewRepository(store, testKey, "Show")
	repo.Upsert(ep("2025-07-27", "A"))

	assert.Equal(t, 1, repo.Len())
	_, ok, err := store.Get(testKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryDelete(t *testing.T) {
	store := &Memory{}
	repo := NewRepository(store, testKey, "Show")
	repo.Upsert(ep("2025-07-20", "A"))
	repo.Upsert(ep("2025-07-27", "B"))

	before, _, _ := store.Get(testKey)
	assert.False(t, repo.Delete("1999-01-01"))
	after, _, _ := store.Get(testKey)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, repo.Len())

	assert.True(t, repo.Delete("2025-07-20"))
	assert.Equal(t, []string{"B"}, titles(repo.All()))
	assert.Equal(t, []string{"B"}, titles(NewRepository(store, testKey, "Show").All()))
}

func TestRepositoryFind(t *testing.T) {
	repo := NewRepository(&Memory{}, testKey, "Show")
	repo.Upsert(ep("2025-07-27", "A"))

	res, ok := repo.Find("2025-07-27")
	assert.True(t, ok)
	assert.Equal(t, "A", res.Title)
	assert.True(t, repo.Exists("2025-07-27"))

	_, ok = repo.Find("2025-07-28")
	assert.False(t, ok)
}

func TestRepositoryDuplicate(t *testing.T) {
	repo := NewRepository(&Memory{}, testKey, "SLICEIX LIVE")
	repo.Now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	src := episode.Sample("SLICEIX LIVE")
	src.ID = 42
	repo.Upsert(src)

	dup, ok := repo.Duplicate(src.Date)
	require.True(t, ok)
	assert.Equal(t, "2026-10-15", dup.Date)
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", dup.Title)
	assert.Zero(t, dup.ID)
	assert.Equal(t, src.HostNotes, dup.HostNotes)
	assert.Equal(t, src.NewsStories, dup.NewsStories)
	assert.Equal(t, src.TechTalk, dup.TechTalk)
	assert.Equal(t, src.Tutorial, dup.Tutorial)
	assert.Equal(t, src.CommunityNotes, dup.CommunityNotes)
	assert.Equal(t, 1, repo.Len(), "duplicate is not stored")

	_, ok = repo.Duplicate("1999-01-01")
	assert.False(t, ok)
}

func TestRepositorySortedStable(t *testing.T) {
	repo := NewRepository(&Memory{}, testKey, "Show")
	repo.Upsert(ep("bad-date", "X"))
	repo.Upsert(ep("2025-01-05", "A"))
	repo.Upsert(ep("2025-03-01", "B"))
	repo.Upsert(ep("also-bad", "Y"))

	assert.Equal(t, []string{"B", "A", "X", "Y"}, titles(repo.Sorted()))
	assert.Equal(t, []string{"X", "A", "B", "Y"}, titles(repo.All()))
}

func titles(eps []episode.Episode) []string {
	res := make([]string, 0, len(eps))
	for _, e := range eps {
		res = append(res, e.Title)
	}
	return res
}
