package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	log "github.com/go-pkgz/lgr"
	"github.com/tcolgate/mp3"

	"epiplan/internal/app/epiplan/render"
)

// Chapter is a timed part of a recording
type Chapter struct {
	ID    string
	Title string
	Start time.Duration
	End   time.Duration
}

// ParseTimestamp reads "m:ss", "mm:ss" or "h:mm:ss". Timestamps are free text in the
// planner, so failure is normal and reported with ok=false.
func ParseTimestamp(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	var total time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		if i > 0 && n > 59 {
			return 0, false
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second, true
}

// Chapters builds chapter list from document timeline ordered by start. Entries with
// unparsable time are skipped. The last chapter ends at total, when total is known.
func Chapters(doc render.Document, total time.Duration) []Chapter {
	res := make([]Chapter, 0, len(doc.Timeline))
	for _, e := range doc.Timeline {
		start, ok := ParseTimestamp(e.Time)
		if !ok {
			log.Printf("[WARN] skip chapter %q, bad timestamp %q", timelineHead(e), e.Time)
			continue
		}
		title := timelineHead(e)
		if title == "" {
			title = e.Body
		}
		res = append(res, Chapter{Title: title, Start: start})
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Start < res[j].Start })
	for i := range res {
		res[i].ID = fmt.Sprintf("chp%d", i)
		switch {
		case i+1 < len(res):
			res[i].End = res[i+1].Start
		case total > res[i].Start:
			res[i].End = total
		default:
			res[i].End = res[i].Start
		}
	}
	return res
}

// Duration of mp3 stream, sum of frame durations
func Duration(r io.Reader) (time.Duration, error) {
	d := mp3.NewDecoder(r)
	var f mp3.Frame
	skipped := 0
	var total time.Duration
	for {
		if err := d.Decode(&f, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return total, fmt.Errorf("decode mp3 frame: %w", err)
		}
		total += f.Duration()
	}
	return total, nil
}

// TagRecording writes title, host notes and timeline chapters of doc into mp3 file.
// Previous chapters in the file are replaced.
func TagRecording(path string, doc render.Document) ([]Chapter, error) {
	fh, err := os.Open(path) // nolint
	if err != nil {
		return nil, err
	}
	total, err := Duration(fh)
	_ = fh.Close()
	if err != nil {
		log.Printf("[WARN] can't get duration of %s, %v", path, err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open tag of %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(doc.Title)
	tag.SetArtist(doc.ShowName)
	if doc.HostNotes != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "Host Notes",
			Text:        doc.HostNotes,
		})
	}

	chapters := Chapters(doc, total)
	tag.DeleteFrames("CHAP")
	for _, c := range chapters {
		tag.AddFrame("CHAP", id3v2.ChapterFrame{
			ElementID:   c.ID,
			StartTime:   c.Start,
			EndTime:     c.End,
			StartOffset: id3v2.IgnoredOffset,
			EndOffset:   id3v2.IgnoredOffset,
			Title:       &id3v2.TextFrame{Encoding: id3v2.EncodingUTF8, Text: c.Title},
		})
	}

	if err := tag.Save(); err != nil {
		return nil, fmt.Errorf("save tag of %s: %w", path, err)
	}
	log.Printf("[INFO] tagged %s with %d chapters, duration %v", path, len(chapters), total)
	return chapters, nil
}
