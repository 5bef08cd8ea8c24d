package form

import (
	"time"

	log "github.com/go-pkgz/lgr"

	"epiplan/internal/app/epiplan/episode"
)

// Saver is the part of repository autosave needs
type Saver interface {
	Exists(date string) bool
	Upsert(ep episode.Episode) bool
}

// Binding moves episode records between a Surface and memory and owns the autosave timer
type Binding struct {
	Surface  Surface
	Repo     Saver
	ShowName string
	Defaults episode.Timestamps
	Now      func() time.Time

	debounce *Debouncer
}

// NewBinding makes binding with autosave after delay of idleness
func NewBinding(surface Surface, repo Saver, showName string, defaults episode.Timestamps, delay time.Duration) *Binding {
	b := &Binding{Surface: surface, Repo: repo, ShowName: showName, Defaults: defaults, Now: time.Now}
	b.debounce = NewDebouncer(delay, func() { b.AutoSave() })
	return b
}

// Read pulls all bound fields into an episode, id is set to creation time in ms
func (b *Binding) Read() episode.Episode {
	ep := episode.Episode{
		ID:        b.now().UnixMilli(),
		Date:      b.get(Date),
		Title:     b.get(Title),
		HostNotes: b.get(HostNotes),
		TechTalk: episode.TalkSegment{
			Topic:       b.get(TechTalkTopic),
			Description: b.get(TechTalkDescription),
			Timestamp:   b.get(TechTalkTimestamp),
		},
		Tutorial: episode.TalkSegment{
			Topic:       b.get(TutorialTopic),
			Description: b.get(TutorialDescription),
			Timestamp:   b.get(TutorialTimestamp),
		},
		CommunityNotes: episode.NotesSegment{
			Notes:     b.get(CommunityNotes),
			Timestamp: b.get(CommunityTimestamp),
		},
	}
	for i := range ep.NewsStories {
		slot := i + 1
		ep.NewsStories[i] = episode.NewsSegment{
			Title:     b.get(NewsField(slot, "title")),
			Link:      b.get(NewsField(slot, "link")),
			Timestamp: b.get(NewsField(slot, "timestamp")),
			Summary:   b.get(NewsField(slot, "summary")),
		}
	}
	return ep
}

// Write pushes episode fields to the surface, replacing whatever is there
func (b *Binding) Write(ep episode.Episode) {
	b.set(Date, ep.Date)
	b.set(Title, ep.Title)
	b.set(HostNotes, ep.HostNotes)
	for i, n := range ep.NewsStories {
		slot := i + 1
		b.set(NewsField(slot, "title"), n.Title)
		b.set(NewsField(slot, "link"), n.Link)
		b.set(NewsField(slot, "timestamp"), n.Timestamp)
		b.set(NewsField(slot, "summary"), n.Summary)
	}
	b.set(TechTalkTopic, ep.TechTalk.Topic)
	b.set(TechTalkDescription, ep.TechTalk.Description)
	b.set(TechTalkTimestamp, ep.TechTalk.Timestamp)
	b.set(TutorialTopic, ep.Tutorial.Topic)
	b.set(TutorialDescription, ep.Tutorial.Description)
	b.set(TutorialTimestamp, ep.Tutorial.Timestamp)
	b.set(CommunityNotes, ep.CommunityNotes.Notes)
	b.set(CommunityTimestamp, ep.CommunityNotes.Timestamp)
}

// Reset clears the form, sets today's date with its title and the default timestamps
func (b *Binding) Reset() {
	for _, f := range Fields() {
		b.set(f, "")
	}
	b.SetToday()

	for i, ts := range b.Defaults.News {
		b.set(NewsField(i+1, "timestamp"), ts)
	}
	b.set(TechTalkTimestamp, b.Defaults.TechTalk)
	b.set(TutorialTimestamp, b.Defaults.Tutorial)
	b.set(CommunityTimestamp, b.Defaults.Community)
}

// SetToday puts current date to the form and derives title from it
func (b *Binding) SetToday() {
	today := episode.Today(b.now())
	b.set(Date, today)
	b.DateChanged(today)
}

// DateChanged overwrites title with the one derived from date. Empty date leaves title alone.
func (b *Binding) DateChanged(date string) {
	if date == "" {
		return
	}
	b.set(Title, b.DeriveTitle(date))
}

// DeriveTitle makes default title for date
func (b *Binding) DeriveTitle(date string) string {
	return episode.DeriveTitle(b.ShowName, date)
}

// Touch marks an edit and restarts autosave timer
func (b *Binding) Touch() {
	b.debounce.Trigger()
}

// OnIdle replaces what runs when the autosave timer expires. Event loops use it
// to get the expiry delivered as an event and call AutoSave themselves.
func (b *Binding) OnIdle(fn func()) {
	b.debounce.SetTask(fn)
}

// Stop cancels pending autosave
func (b *Binding) Stop() {
	b.debounce.Stop()
}

// AutoSave stores the form silently, only over an episode already stored for the
// same date. Returns true if saved.
func (b *Binding) AutoSave() bool {
	ep := b.Read()
	if !ep.HasRequired() {
		return false
	}
	if !b.Repo.Exists(ep.Date) {
		log.Printf("[DEBUG] skip autosave, no stored episode for %s", ep.Date)
		return false
	}

	b.Repo.Upsert(ep)
	log.Printf("[DEBUG] autosaved episode %s", ep.Date)
	return true
}

func (b *Binding) get(f Field) string {
	v, ok := b.Surface.Value(f)
	if !ok {
		return ""
	}
	return v
}

func (b *Binding) set(f Field, value string) {
	if !b.Surface.SetValue(f, value) {
		log.Printf("[DEBUG] no control for %s", f)
	}
}

func (b *Binding) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}
