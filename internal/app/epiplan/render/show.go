// Package render turns episodes into presentation structures and strings.
// Every function here is pure, nothing touches the repository.
package render

// Show carries the fixed texts of the show used by renderers
type Show struct {
	Name            string
	Tagline         string
	Opening         string
	CommunityPrompt string
	Signature       string
}

// DefaultShow is the stock SLICEIX LIVE branding
func DefaultShow() Show {
	return Show{
		Name:            "SLICEIX LIVE",
		Tagline:         "The Ultimate Web3 Music Livestream 🚀",
		Opening:         "Scene Setting & Web3 Music News",
		CommunityPrompt: "Live Q&A and community feedback session",
		Signature:       "Generated by SLICEIX LIVE Episode Planner",
	}
}

// OpeningTime is the fixed start of every timeline
const OpeningTime = "00:00"
