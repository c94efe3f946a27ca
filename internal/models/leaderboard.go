package models

type LeaderboardEntry struct {
	Email              string  `json:"email"`
	SuccessRate        float64 `json:"success_rate"`
	SuccessfulRequests int     `json:"successful_requests"`
	TotalRequests      int     `json:"total_requests"`
}

// Leaderboard holds both ranked views returned per fetch. Display-only.
type Leaderboard struct {
	TopBySuccessRatio  []LeaderboardEntry `json:"top_by_success_ratio"`
	TopByTotalRequests []LeaderboardEntry `json:"top_by_total_requests"`
}
