package oasis

// Stats are the community counters shown on the oasis screen. They are
// static until the community features land.
type Stats struct {
	TotalVisitors   int    `json:"total_visitors"`
	ActiveToday     int    `json:"active_today"`
	TotalSessions   int    `json:"total_sessions"`
	TreesPlanted    int    `json:"trees_planted"`
	CommunityMood   string `json:"community_mood"`
	FeaturedPattern string `json:"featured_pattern"`
}

var current = Stats{
	TotalVisitors:   12847,
	ActiveToday:     342,
	TotalSessions:   58392,
	TreesPlanted:    1205,
	CommunityMood:   "peaceful",
	FeaturedPattern: "soothe-mind",
}

func Current() Stats {
	return current
}
