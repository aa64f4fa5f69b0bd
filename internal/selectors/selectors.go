// Package selectors derives user-level statistics, KPIs, and time series from
// a loaded entry list. Every function is pure and total over the documented
// domain: missing nested fields are treated as empty or zero, never as
// errors.
package selectors

import (
	"sort"
	"strings"
	"time"

	"github.com/aigit-dev/examboard/internal/models"
)

// KPISet is the top-level aggregate statistics row.
type KPISet struct {
	Total    int     `json:"total"`
	Users    int     `json:"users"`
	Pass     int     `json:"pass"`
	Fail     int     `json:"fail"`
	PassRate float64 `json:"passRate"`
	AvgScore float64 `json:"avgScore"`
	Flags    int     `json:"flags"`
}

// Point is one sample of a time series: x is epoch milliseconds, y the score.
type Point struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// AggregateUsers groups entries by author email into UserRows.
//
// Rows accumulate in entry encounter order: the running mean
// avg' = (avg*(n-1) + score) / n depends on that order, not on chronological
// order. lastSeenIso is the lexicographically greatest timestamp seen, which
// is a valid comparison because export timestamps are ISO-8601 in one zone.
// The result is sorted by last-seen time descending, ties by email ascending.
func AggregateUsers(entries []models.DashboardEntry) []models.UserRow {
	byEmail := make(map[string]int, len(entries))
	rows := make([]models.UserRow, 0, len(entries))

	for _, e := range entries {
		email := e.Commit.AuthorEmail
		idx, ok := byEmail[email]
		if !ok {
			idx = len(rows)
			byEmail[email] = idx
			rows = append(rows, models.UserRow{
				Name:        e.Commit.AuthorName,
				Email:       email,
				LastSeenISO: e.Commit.AuthorDateISO,
			})
		}

		row := &rows[idx]
		if e.Transcript.Decision == models.DecisionPass {
			row.Passes++
		} else {
			row.Fails++
		}
		n := row.Passes + row.Fails
		row.AvgScore = (row.AvgScore*float64(n-1) + e.Transcript.Score.TotalScore) / float64(n)
		if e.Commit.AuthorDateISO > row.LastSeenISO {
			row.LastSeenISO = e.Commit.AuthorDateISO
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := ParseISOMillis(rows[i].LastSeenISO), ParseISOMillis(rows[j].LastSeenISO)
		if ti != tj {
			return ti > tj
		}
		return rows[i].Email < rows[j].Email
	})
	return rows
}

// FilterUsers returns rows whose name or email contains the query,
// case-insensitively. An empty or whitespace-only query returns the input
// unchanged and unfiltered.
func FilterUsers(users []models.UserRow, query string) []models.UserRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	out := make([]models.UserRow, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// EntriesForUser returns all entries authored by email, newest first
// (author_date_iso string comparison).
func EntriesForUser(entries []models.DashboardEntry, email string) []models.DashboardEntry {
	var out []models.DashboardEntry
	for _, e := range entries {
		if e.Commit.AuthorEmail == email {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Commit.AuthorDateISO > out[j].Commit.AuthorDateISO
	})
	return out
}

// KPIs computes the top-level aggregate statistics. All fields are zero for
// an empty entry list; there is no division-by-zero artifact.
func KPIs(entries []models.DashboardEntry) KPISet {
	k := KPISet{Total: len(entries)}
	if k.Total == 0 {
		return k
	}

	emails := make(map[string]struct{}, len(entries))
	scoreSum := 0.0
	for _, e := range entries {
		emails[e.Commit.AuthorEmail] = struct{}{}
		if e.Transcript.Decision == models.DecisionPass {
			k.Pass++
		}
		scoreSum += e.Transcript.Score.TotalScore
		k.Flags += len(e.Transcript.Score.HallucinationFlags)
	}
	k.Users = len(emails)
	k.Fail = k.Total - k.Pass
	k.PassRate = float64(k.Pass) / float64(k.Total)
	k.AvgScore = scoreSum / float64(k.Total)
	return k
}

// TimeSeriesAvgScore maps entries, oldest first, to (epoch millis, score)
// points. Timestamps that fail to parse map to epoch 0: degraded but
// non-fatal.
func TimeSeriesAvgScore(entries []models.DashboardEntry) []Point {
	sorted := make([]models.DashboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Commit.AuthorDateISO < sorted[j].Commit.AuthorDateISO
	})

	points := make([]Point, 0, len(sorted))
	for _, e := range sorted {
		points = append(points, Point{
			X: ParseISOMillis(e.Commit.AuthorDateISO),
			Y: e.Transcript.Score.TotalScore,
		})
	}
	return points
}

// EffectiveCommit resolves the selection invariant for the drill-down view:
// the stored commit if it belongs to the user's entries, otherwise the most
// recent entry for that email. Returns "" when the user has no entries. The
// stored selection is never corrected; callers display as if it were.
func EffectiveCommit(entries []models.DashboardEntry, email, selected string) string {
	forUser := EntriesForUser(entries, email)
	if len(forUser) == 0 {
		return ""
	}
	if selected != "" {
		for _, e := range forUser {
			if e.Commit.SHA == selected {
				return selected
			}
		}
	}
	return forUser[0].Commit.SHA
}

// FindEntry returns the first entry for email with the given sha, or false.
func FindEntry(entries []models.DashboardEntry, email, sha string) (models.DashboardEntry, bool) {
	for _, e := range EntriesForUser(entries, email) {
		if e.Commit.SHA == sha {
			return e, true
		}
	}
	return models.DashboardEntry{}, false
}

// isoFormats are tried in order when parsing export timestamps. Git's
// iso-strict dates and the exporter's UTC timestamps are both RFC 3339.
var isoFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOMillis parses an ISO-8601 timestamp to epoch milliseconds.
// Unparseable input yields 0.
func ParseISOMillis(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range isoFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
