package render

import (
	"fmt"
	"strings"

	"epiplan/internal/app/epiplan/episode"
)

// Email is a composed message for the mail handler
type Email struct {
	Subject string
	Body    string
}

// EmailPlan renders plain text plan of a single episode
func EmailPlan(ep episode.Episode, show Show) Email {
	news := make([]string, 0, episode.NewsSlots)
	for _, n := range ep.FilledNews() {
		item := fmt.Sprintf("%s - %s\n%s", n.Timestamp, n.Title, n.Summary)
		if n.Link != "" {
			item += "\nLink: " + n.Link
		}
		news = append(news, item)
	}

	tech := ""
	if ep.TechTalk.Topic != "" {
		tech = fmt.Sprintf("%s - Tech Talk: %s\n%s\n", ep.TechTalk.Timestamp, ep.TechTalk.Topic, ep.TechTalk.Description)
	}
	tutorial := ""
	if ep.Tutorial.Topic != "" {
		tutorial = fmt.Sprintf("%s - Creator Tutorial: %s\n%s\n", ep.Tutorial.Timestamp, ep.Tutorial.Topic, ep.Tutorial.Description)
	}

	lines := []string{
		show.Name + " Episode Plan",
		ep.Title,
		"Date: " + episode.ShortDate(ep.Date),
		"",
		"HOST NOTES:",
		ep.HostNotes,
		"",
		"EPISODE TIMELINE:",
		"",
		OpeningTime + " - " + show.Opening,
		"",
		"NEWS STORIES:",
		strings.Join(news, "\n\n"),
		"",
		tech,
		"",
		tutorial,
		"",
		ep.CommunityNotes.Timestamp + " - Community Q&A",
		ep.CommunityNotes.Notes,
		"",
		"---",
		show.Signature,
	}

	return Email{
		Subject: fmt.Sprintf("%s Episode Plan - %s", show.Name, ep.Title),
		Body:    strings.TrimSpace(strings.Join(lines, "\n")),
	}
}
