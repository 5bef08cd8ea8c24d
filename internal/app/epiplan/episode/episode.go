package episode

// NewsSlots is the fixed number of news segments per episode
const NewsSlots = 3

// NewsSegment of episode
type NewsSegment struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Timestamp string `json:"timestamp"`
	Summary   string `json:"summary"`
}

// TalkSegment is a tech talk or tutorial block
type TalkSegment struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// NotesSegment is the community block
type NotesSegment struct {
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

// Episode of show. Date is the natural key, ID is informational only.
type Episode struct {
	ID             int64                  `json:"id,omitempty"`
	Date           string                 `json:"date"`
	Title          string                 `json:"title"`
	HostNotes      string                 `json:"hostNotes"`
	NewsStories    [NewsSlots]NewsSegment `json:"newsStories"`
	TechTalk       TalkSegment            `json:"techTalk"`
	Tutorial       TalkSegment            `json:"tutorial"`
	CommunityNotes NotesSegment           `json:"communityNotes"`
}

// HasRequired reports whether date and title are both set
func (e Episode) HasRequired() bool {
	return e.Date != "" && e.Title != ""
}

// FilledNews returns news segments with non-empty title, in slot order
func (e Episode) FilledNews() []NewsSegment {
	res := make([]NewsSegment, 0, NewsSlots)
	for _, n := range e.NewsStories {
		if n.Title == "" {
			continue
		}
		res = append(res, n)
	}
	return res
}

// Timestamps are the default segment timestamps applied to a clean form
type Timestamps struct {
	News      [NewsSlots]string
	TechTalk  string
	Tutorial  string
	Community string
}

// DefaultTimestamps returns the planner's stock segment times
func DefaultTimestamps() Timestamps {
	return Timestamps{
		News:      [NewsSlots]string{"15:00", "25:00", "35:00"},
		TechTalk:  "40:00",
		Tutorial:  "50:00",
		Community: "1:05:00",
	}
}
