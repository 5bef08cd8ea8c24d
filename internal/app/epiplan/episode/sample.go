package episode

// Sample returns the demo episode used to prefill an empty planner
func Sample(showName string) Episode {
	return Episode{
		Date:      "2025-07-27",
		Title:     DeriveTitle(showName, "2025-07-27"),
		HostNotes: "Focus on Web3 music innovations and community engagement",
		NewsStories: [NewsSlots]NewsSegment{
			{
				Title:     "Spotify launches NFT playlists for independent artists",
				Link:      "https://example.com/news1",
				Timestamp: "15:00",
				Summary:   "Major streaming platform enters Web3 space with NFT integration",
			},
			{
				Title:     "Major label partners with Web3 streaming platform",
				Link:      "https://example.com/news2",
				Timestamp: "25:00",
				Summary:   "Traditional music industry embraces blockchain technology",
			},
			{
				Title:     "On-chain royalties: Artist gets first million in DAO payouts",
				Link:      "https://example.com/news3",
				Timestamp: "35:00",
				Summary:   "Revolutionary payment system shows real-world success",
			},
		},
		TechTalk: TalkSegment{
			Topic:       "Sound.xyz platform review and live demo",
			Description: "Hands-on demonstration of minting music NFTs and community features",
			Timestamp:   "40:00",
		},
		Tutorial: TalkSegment{
			Topic:       "How to Mint Your First Music NFT",
			Description: "Step-by-step guide for independent artists entering Web3",
			Timestamp:   "50:00",
		},
		CommunityNotes: NotesSegment{
			Notes:     "Focus on listener submissions and portfolio feedback session",
			Timestamp: "1:05:00",
		},
	}
}
