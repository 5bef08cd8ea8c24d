package render

import (
	"fmt"
	"strings"

	"epiplan/internal/app/epiplan/episode"
)

// ActionKind is what a history card offers to do with its episode
type ActionKind string

// card actions
const (
	ActionEdit      ActionKind = "edit"
	ActionDuplicate ActionKind = "duplicate"
	ActionDelete    ActionKind = "delete"
)

// Action on episode identified by date
type Action struct {
	Kind ActionKind
	Date string
}

// Section of history card
type Section struct {
	Heading string
	Title   string
	Body    string
}

// Card is one episode in history
type Card struct {
	Date          string
	FormattedDate string
	Title         string
	Actions       []Action
	Sections      []Section
}

// EmptyState is shown instead of cards when there are no episodes
type EmptyState struct {
	Heading     string
	Message     string
	ActionLabel string
	TargetPanel string
}

// HistoryView is rendered history list, either Cards or Empty is set
type HistoryView struct {
	Cards []Card
	Empty *EmptyState
}

// History renders cards for already sorted episodes. Community notes are not part of a card.
func History(eps []episode.Episode) HistoryView {
	if len(eps) == 0 {
		return HistoryView{Empty: &EmptyState{
			Heading:     "No Episodes Yet",
			Message:     "Start planning your first episode to see it appear here.",
			ActionLabel: "Create First Episode",
			TargetPanel: "planner",
		}}
	}

	res := HistoryView{Cards: make([]Card, 0, len(eps))}
	for _, ep := range eps {
		res.Cards = append(res.Cards, historyCard(ep))
	}
	return res
}

func historyCard(ep episode.Episode) Card {
	card := Card{
		Date:          ep.Date,
		FormattedDate: episode.ShortDate(ep.Date),
		Title:         ep.Title,
		Actions: []Action{
			{Kind: ActionEdit, Date: ep.Date},
			{Kind: ActionDuplicate, Date: ep.Date},
			{Kind: ActionDelete, Date: ep.Date},
		},
	}

	for _, n := range ep.FilledNews() {
		card.Sections = append(card.Sections, Section{Heading: "News: " + n.Timestamp, Title: n.Title, Body: n.Summary})
	}
	if ep.TechTalk.Topic != "" {
		card.Sections = append(card.Sections, Section{Heading: "Tech Talk: " + ep.TechTalk.Timestamp,
			Title: ep.TechTalk.Topic, Body: ep.TechTalk.Description})
	}
	if ep.Tutorial.Topic != "" {
		card.Sections = append(card.Sections, Section{Heading: "Tutorial: " + ep.Tutorial.Timestamp,
			Title: ep.Tutorial.Topic, Body: ep.Tutorial.Description})
	}
	return card
}

// Text renders history as plain text
func (v HistoryView) Text() string {
	if v.Empty != nil {
		return fmt.Sprintf("%s\n%s\n[%s]\n", v.Empty.Heading, v.Empty.Message, v.Empty.ActionLabel)
	}

	var sb strings.Builder
	for i, c := range v.Cards {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// Text renders single card as plain text
func (c Card) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s  [%s]\n", c.Title, c.FormattedDate, c.Date)
	for _, s := range c.Sections {
		fmt.Fprintf(&sb, "  %s\n    %s\n", s.Heading, s.Title)
		if s.Body != "" {
			fmt.Fprintf(&sb, "    %s\n", s.Body)
		}
	}
	return sb.String()
}
