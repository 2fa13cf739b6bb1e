package leaderboardservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
)

// renderBoardChart draws the board as a bar chart of average attempts,
// lower bars meaning better players.
func renderBoardChart(entries []leaderboardevents.Entry) ([]byte, error) {
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		avg := 7.0
		if e.AvgAttempts != nil {
			avg = *e.AvgAttempts
		}
		bars = append(bars, chart.Value{
			Label: e.Username,
			Value: avg,
		})
	}

	graph := chart.BarChart{
		Title:    "Average attempts",
		Height:   400,
		BarWidth: 46,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 7},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
