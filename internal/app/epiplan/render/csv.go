package render

import (
	"strings"

	"epiplan/internal/app/epiplan/episode"
)

// CSVHeader is the fixed export header
var CSVHeader = []string{
	"Date", "Episode Title", "Host Notes",
	"News Story 1 Title", "News Story 1 Link", "News Story 1 Summary",
	"News Story 2 Title", "News Story 2 Link", "News Story 2 Summary",
	"News Story 3 Title", "News Story 3 Link", "News Story 3 Summary",
	"Tech Talk Topic", "Tech Talk Description",
	"Tutorial Topic", "Tutorial Description",
	"Community Notes",
}

// CSV renders episodes in the given order, one line per episode after the header.
// Every field is quoted, embedded quotes are doubled.
func CSV(eps []episode.Episode) string {
	lines := make([]string, 0, len(eps)+1)
	lines = append(lines, csvLine(CSVHeader))
	for _, ep := range eps {
		lines = append(lines, csvLine(csvRecord(ep)))
	}
	return strings.Join(lines, "\n")
}

func csvRecord(ep episode.Episode) []string {
	res := []string{ep.Date, ep.Title, ep.HostNotes}
	for _, n := range ep.NewsStories {
		res = append(res, n.Title, n.Link, n.Summary)
	}
	return append(res,
		ep.TechTalk.Topic, ep.TechTalk.Description,
		ep.Tutorial.Topic, ep.Tutorial.Description,
		ep.CommunityNotes.Notes)
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
