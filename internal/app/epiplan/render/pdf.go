package render

import "epiplan/internal/app/epiplan/episode"

// TimelineEntry is one timed line of the run sheet
type TimelineEntry struct {
	Time  string
	Label string // bold prefix like "Tech Talk:", may be empty
	Title string
	Body  string
	Link  string
}

// Document is the structured content of the printable run sheet
type Document struct {
	ShowName  string
	Tagline   string
	Title     string
	Timeline  []TimelineEntry
	HostNotes string
}

// PDF builds printable document for single episode. Rasterization is not done here.
func PDF(ep episode.Episode, show Show) Document {
	doc := Document{
		ShowName:  show.Name,
		Tagline:   show.Tagline,
		Title:     ep.Title,
		HostNotes: ep.HostNotes,
	}

	doc.Timeline = append(doc.Timeline, TimelineEntry{Time: OpeningTime, Title: show.Opening})
	for _, n := range ep.FilledNews() {
		doc.Timeline = append(doc.Timeline, TimelineEntry{Time: n.Timestamp, Title: n.Title, Body: n.Summary, Link: n.Link})
	}
	if ep.TechTalk.Topic != "" {
		doc.Timeline = append(doc.Timeline, TimelineEntry{Time: ep.TechTalk.Timestamp, Label: "Tech Talk:",
			Title: ep.TechTalk.Topic, Body: ep.TechTalk.Description})
	}
	if ep.Tutorial.Topic != "" {
		doc.Timeline = append(doc.Timeline, TimelineEntry{Time: ep.Tutorial.Timestamp, Label: "Creator Tutorial:",
			Title: ep.Tutorial.Topic, Body: ep.Tutorial.Description})
	}

	notes := ep.CommunityNotes.Notes
	if notes == "" {
		notes = show.CommunityPrompt
	}
	doc.Timeline = append(doc.Timeline, TimelineEntry{Time: ep.CommunityNotes.Timestamp, Label: "Community Q&A:", Body: notes})
	return doc
}
