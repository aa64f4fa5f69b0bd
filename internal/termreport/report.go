// Package termreport renders the same aggregates the web dashboard shows,
// but to a terminal, for quick inspection of an exported bundle without
// starting the server.
package termreport

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gonum.org/v1/gonum/stat"

	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

const millisPerDay = 24 * 60 * 60 * 1000

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	flagColor = color.New(color.FgYellow, color.Bold)
	dimColor  = color.New(color.FgHiBlack)
)

// Render writes the KPI summary, per-author table, and score trend for a
// loaded bundle.
func Render(w io.Writer, data *models.DashboardData) error {
	entries := data.Entries
	k := selectors.KPIs(entries)

	fmt.Fprintf(w, "Repository: %s\n", data.RepoID)
	if data.GeneratedAt != "" {
		dimColor.Fprintf(w, "Exported:   %s\n", data.GeneratedAt)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Transcripts: %d across %d author(s)\n", k.Total, k.Users)
	fmt.Fprintf(w, "Decisions:   %s / %s (pass rate %.0f%%)\n",
		passColor.Sprintf("%d pass", k.Pass),
		failColor.Sprintf("%d fail", k.Fail),
		k.PassRate*100)
	fmt.Fprintf(w, "Avg score:   %.2f\n", k.AvgScore)
	if k.Flags > 0 {
		flagColor.Fprintf(w, "Flags:       %d hallucination flag(s)\n", k.Flags)
	} else {
		fmt.Fprintln(w, "Flags:       none")
	}
	fmt.Fprintln(w)

	if err := renderUserTable(w, entries); err != nil {
		return fmt.Errorf("rendering author table: %w", err)
	}

	if slope, ok := scoreTrend(entries); ok {
		fmt.Fprintln(w)
		switch {
		case slope >= 0:
			fmt.Fprintf(w, "Score trend: %s\n", passColor.Sprintf("+%.3f/day", slope))
		default:
			fmt.Fprintf(w, "Score trend: %s\n", failColor.Sprintf("%.3f/day", slope))
		}
	}
	return nil
}

func renderUserTable(w io.Writer, entries []models.DashboardEntry) error {
	users := selectors.AggregateUsers(entries)
	if len(users) == 0 {
		fmt.Fprintln(w, "No authors in this bundle.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Author", "Email", "Pass", "Fail", "Avg Score", "Last Seen"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, u := range users {
		data = append(data, []string{
			u.Name,
			u.Email,
			fmt.Sprintf("%d", u.Passes),
			fmt.Sprintf("%d", u.Fails),
			fmt.Sprintf("%.2f", u.AvgScore),
			u.LastSeenISO,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// scoreTrend fits a least-squares line through the score time series and
// returns its slope in score units per day. Points with unparseable
// timestamps (x=0) are excluded; fewer than two usable points yield no trend.
func scoreTrend(entries []models.DashboardEntry) (float64, bool) {
	var xs, ys []float64
	for _, p := range selectors.TimeSeriesAvgScore(entries) {
		if p.X == 0 {
			continue
		}
		xs = append(xs, float64(p.X)/millisPerDay)
		ys = append(ys, p.Y)
	}
	if len(xs) < 2 || xs[0] == xs[len(xs)-1] {
		return 0, false
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, true
}
