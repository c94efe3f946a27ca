package campaign

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/net/context"
)

// LeaderboardText fetches the leaderboard and renders both ranked views as
// bordered tables, one per ranking.
func (s *campaignService) LeaderboardText(ctx context.Context) (string, error) {
	leaderboard, err := s.FetchLeaderboard(ctx)
	if err != nil {
		return "", err
	}

	if leaderboard == nil ||
		(len(leaderboard.TopBySuccessRatio) == 0 && len(leaderboard.TopByTotalRequests) == 0) {
		return "No leaderboard data available.", nil
	}

	var sections []string

	if len(leaderboard.TopBySuccessRatio) > 0 {
		rows := make([][]string, 0, len(leaderboard.TopBySuccessRatio))
		for i, entry := range leaderboard.TopBySuccessRatio {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				entry.Email,
				formatSuccessRate(entry.SuccessRate),
				strconv.Itoa(entry.SuccessfulRequests),
				strconv.Itoa(entry.TotalRequests),
			})
		}
		sections = append(sections,
			"Top Users by Success Ratio:",
			renderLeaderboardTable([]string{"Rank", "Email", "Success Rate", "Successful", "Total Requests"}, rows),
		)
	}

	if len(leaderboard.TopByTotalRequests) > 0 {
		if len(sections) > 0 {
			sections = append(sections, "")
		}
		rows := make([][]string, 0, len(leaderboard.TopByTotalRequests))
		for i, entry := range leaderboard.TopByTotalRequests {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				entry.Email,
				strconv.Itoa(entry.TotalRequests),
				strconv.Itoa(entry.SuccessfulRequests),
				formatSuccessRate(entry.SuccessRate),
			})
		}
		sections = append(sections,
			"Top Users by Total Requests:",
			renderLeaderboardTable([]string{"Rank", "Email", "Total Requests", "Successful", "Success Rate"}, rows),
		)
	}

	return strings.Join(sections, "\n"), nil
}

func renderLeaderboardTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

func formatSuccessRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
