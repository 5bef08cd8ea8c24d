// Package form binds an editable field surface to episode records.
// Fields are addressed by fixed string ids, the surface itself may be a terminal
// form, a flag set or anything else able to get and set text by id.
package form

import (
	"fmt"
	"strings"
)

// Field is id of bound form control
type Field string

// bound field ids
const (
	Date      Field = "episode-date"
	Title     Field = "episode-title"
	HostNotes Field = "host-notes"

	TechTalkTopic       Field = "tech-talk-topic"
	TechTalkDescription Field = "tech-talk-description"
	TechTalkTimestamp   Field = "tech-talk-timestamp"

	TutorialTopic       Field = "tutorial-topic"
	TutorialDescription Field = "tutorial-description"
	TutorialTimestamp   Field = "tutorial-timestamp"

	CommunityNotes     Field = "community-notes"
	CommunityTimestamp Field = "community-timestamp"
)

// NewsField returns id of news slot field, slot is 1-based, part is one of
// "title", "link", "timestamp", "summary"
func NewsField(slot int, part string) Field {
	return Field(fmt.Sprintf("news%d-%s", slot, part))
}

var newsParts = []string{"title", "link", "timestamp", "summary"}

// Fields lists every bound field in form order
func Fields() []Field {
	res := []Field{Date, Title, HostNotes}
	for slot := 1; slot <= 3; slot++ {
		for _, part := range newsParts {
			res = append(res, NewsField(slot, part))
		}
	}
	return append(res,
		TechTalkTopic, TechTalkDescription, TechTalkTimestamp,
		TutorialTopic, TutorialDescription, TutorialTimestamp,
		CommunityNotes, CommunityTimestamp)
}

// Label is human name of field, e.g. "News 2 link"
func Label(f Field) string {
	s := strings.TrimPrefix(string(f), "episode-")
	if strings.HasPrefix(s, "news") && len(s) > 5 {
		return "News " + s[4:5] + " " + s[6:]
	}
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// Known reports whether f is a bound field id
func Known(f Field) bool {
	for _, k := range Fields() {
		if k == f {
			return true
		}
	}
	return false
}

// Surface is get/set access to editable controls by field id.
// Missing controls report ok=false and ignore writes.
type Surface interface {
	Value(f Field) (string, bool)
	SetValue(f Field, value string) bool
}

// MapSurface is a Surface over a plain map, every known field is present
type MapSurface map[Field]string

// Value of field
func (m MapSurface) Value(f Field) (string, bool) {
	if !Known(f) {
		return "", false
	}
	return m[f], true
}

// SetValue of field
func (m MapSurface) SetValue(f Field, value string) bool {
	if !Known(f) {
		return false
	}
	m[f] = value
	return true
}

// ParseAssignment splits "field=value" used by command line overrides
func ParseAssignment(s string) (Field, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("bad assignment %q, expected field=value", s)
	}
	f := Field(strings.TrimSpace(k))
	if !Known(f) {
		return "", "", fmt.Errorf("unknown field %q", k)
	}
	return f, v, nil
}
