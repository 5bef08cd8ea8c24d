package form

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiplan/internal/app/epiplan/episode"
	"epiplan/internal/app/epiplan/proc"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type recordingSaver struct {
	mu      sync.Mutex
	known   map[string]bool
	upserts []episode.Episode
}

func (r *recordingSaver) Exists(date string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.known[date]
}

func (r *recordingSaver) Upsert(ep episode.Episode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, ep)
	return r.known[ep.Date]
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

func newTestBinding(surface Surface, saver Saver, delay time.Duration) *Binding {
	b := NewBinding(surface, saver, "SLICEIX LIVE", episode.DefaultTimestamps(), delay)
	b.Now = func() time.Time { return fixedNow }
	return b
}

func TestBindingWriteRead(t *testing.T) {
	surface := MapSurface{}
	b := newTestBinding(surface, &recordingSaver{}, time.Hour)

	sample := episode.Sample("SLICEIX LIVE")
	b.Write(sample)

	assert.Equal(t, "Spotify launches NFT playlists for independent artists", surface[NewsField(1, "title")])
	assert.Equal(t, "1:05:00", surface[CommunityTimestamp])

	got := b.Read()
	assert.Equal(t, fixedNow.UnixMilli(), got.ID)
	got.ID = 0
	assert.Equal(t, sample, got)
}

func TestBindingWriteBlanksMissing(t *testing.T) {
	surface := MapSurface{}
	b := newTestBinding(surface, &recordingSaver{}, time.Hour)
	b.Write(episode.Sample("x"))
	b.Write(episode.Episode{Date: "2025-07-27", Title: "A"})

	for _, f := range Fields() {
		if f == Date || f == Title {
			continue
		}
		v, ok := surface[f]
		assert.True(t, ok, f)
		assert.Equal(t, "", v, f)
	}
}

// partialSurface knows only date and title
type partialSurface struct{ MapSurface }

func (p partialSurface) Value(f Field) (string, bool) {
	if f != Date && f != Title {
		return "", false
	}
	return p.MapSurface.Value(f)
}

func (p partialSurface) SetValue(f Field, v string) bool {
	if f != Date && f != Title {
		return false
	}
	return p.MapSurface.SetValue(f, v)
}

func TestBindingMissingControls(t *testing.T) {
	surface := partialSurface{MapSurface{}}
	b := newTestBinding(surface, &recordingSaver{}, time.Hour)
	b.Write(episode.Sample("x"))

	got := b.Read()
	assert.Equal(t, "2025-07-27", got.Date)
	assert.Equal(t, "", got.HostNotes)
	assert.Equal(t, episode.NewsSegment{}, got.NewsStories[2])
}

func TestBindingReset(t *testing.T) {
	surface := MapSurface{}
	b := newTestBinding(surface, &recordingSaver{}, time.Hour)
	b.Write(episode.Sample("x"))
	b.Reset()

	assert.Equal(t, "2026-10-15", surface[Date])
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", surface[Title])
	assert.Equal(t, "15:00", surface[NewsField(1, "timestamp")])
	assert.Equal(t, "25:00", surface[NewsField(2, "timestamp")])
	assert.Equal(t, "35:00", surface[NewsField(3, "timestamp")])
	assert.Equal(t, "40:00", surface[TechTalkTimestamp])
	assert.Equal(t, "50:00", surface[TutorialTimestamp])
	assert.Equal(t, "1:05:00", surface[CommunityTimestamp])
	assert.Equal(t, "", surface[NewsField(1, "title")])
	assert.Equal(t, "", surface[HostNotes])
}

func TestBindingDateChangedOverwritesTitle(t *testing.T) {
	surface := MapSurface{Title: "my own title"}
	b := newTestBinding(surface, &recordingSaver{}, time.Hour)

	b.DateChanged("2025-08-03")
	assert.Equal(t, "SLICEIX LIVE - Episode August 3, 2025", surface[Title])

	surface[Title] = "edited"
	b.DateChanged("")
	assert.Equal(t, "edited", surface[Title])
}

func TestAutoSaveSkipsUnknownDate(t *testing.T) {
	saver := &recordingSaver{known: map[string]bool{}}
	surface := MapSurface{Date: "2025-07-27", Title: "Episode A"}
	b := newTestBinding(surface, saver, 20*time.Millisecond)

	b.Touch()
	assert.Never(t, func() bool { return saver.count() > 0 }, 150*time.Millisecond, 10*time.Millisecond)
}

func TestAutoSaveUpdatesExisting(t *testing.T) {
	saver := &recordingSaver{known: map[string]bool{"2025-07-27": true}}
	surface := MapSurface{Date: "2025-07-27", Title: "Episode A", HostNotes: "edited"}
	b := newTestBinding(surface, saver, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		b.Touch()
	}
	require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return saver.count() > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	saver.mu.Lock()
	defer saver.mu.Unlock()
	assert.Equal(t, "edited", saver.upserts[0].HostNotes)
}

func TestAutoSaveNeedsDateAndTitle(t *testing.T) {
	saver := &recordingSaver{known: map[string]bool{"2025-07-27": true}}
	b := newTestBinding(MapSurface{Date: "2025-07-27"}, saver, time.Hour)
	assert.False(t, b.AutoSave())
	assert.Equal(t, 0, saver.count())
}

func TestAutoSaveWithRepository(t *testing.T) {
	repo := proc.NewRepository(&proc.Memory{}, "k", "SLICEIX LIVE")
	surface := MapSurface{}
	b := newTestBinding(surface, repo, 10*time.Millisecond)
	idle := make(chan struct{}, 1)
	b.OnIdle(func() { idle <- struct{}{} })

	b.Write(episode.Episode{Date: "2025-07-27", Title: "Episode A"})
	b.Touch()
	<-idle
	assert.False(t, b.AutoSave())
	assert.Equal(t, 0, repo.Len())

	repo.Upsert(b.Read())
	surface[HostNotes] = "later"
	b.Touch()
	<-idle
	assert.True(t, b.AutoSave())
	got, ok := repo.Find("2025-07-27")
	require.True(t, ok)
	assert.Equal(t, "later", got.HostNotes)
	assert.Equal(t, 1, repo.Len())
}

func TestBindingStopCancelsAutosave(t *testing.T) {
	saver := &recordingSaver{known: map[string]bool{"2025-07-27": true}}
	b := newTestBinding(MapSurface{Date: "2025-07-27", Title: "A"}, saver, 30*time.Millisecond)
	b.Touch()
	b.Stop()
	assert.Never(t, func() bool { return saver.count() > 0 }, 120*time.Millisecond, 10*time.Millisecond)
}
