package termreport

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigit-dev/examboard/internal/models"
)

func init() {
	color.NoColor = true
}

func entry(sha, email, name, date string, decision models.Decision, score float64, flags ...string) models.DashboardEntry {
	return models.DashboardEntry{
		Commit: models.CommitMeta{
			SHA: sha, AuthorName: name, AuthorEmail: email, AuthorDateISO: date,
		},
		Transcript: models.Transcript{
			Commit:   sha,
			Decision: decision,
			Score:    models.Score{TotalScore: score, HallucinationFlags: flags},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	data := &models.DashboardData{
		RepoID:      "/src/widgets",
		GeneratedAt: "2026-03-04T12:00:00Z",
		Entries: []models.DashboardEntry{
			entry("aaa", "alice@x.com", "Alice", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8),
			entry("bbb", "bob@x.com", "Bob", "2026-03-02T10:00:00Z", models.DecisionFail, 0.4, "q1: made up a function"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "Repository: /src/widgets")
	assert.Contains(t, out, "Exported:   2026-03-04T12:00:00Z")
	assert.Contains(t, out, "Transcripts: 2 across 2 author(s)")
	assert.Contains(t, out, "1 pass")
	assert.Contains(t, out, "1 fail")
	assert.Contains(t, out, "pass rate 50%")
	assert.Contains(t, out, "Avg score:   0.60")
	assert.Contains(t, out, "1 hallucination flag(s)")
	assert.Contains(t, out, "alice@x.com")
	assert.Contains(t, out, "bob@x.com")
}

func TestRenderEmptyBundle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &models.DashboardData{RepoID: "/src/empty"}))

	out := buf.String()
	assert.Contains(t, out, "Transcripts: 0 across 0 author(s)")
	assert.Contains(t, out, "Flags:       none")
	assert.Contains(t, out, "No authors in this bundle.")
	assert.NotContains(t, out, "Score trend")
}

func TestRenderTrendDirection(t *testing.T) {
	improving := &models.DashboardData{Entries: []models.DashboardEntry{
		entry("aaa", "a@x.com", "A", "2026-03-01T10:00:00Z", models.DecisionFail, 0.2),
		entry("bbb", "a@x.com", "A", "2026-03-03T10:00:00Z", models.DecisionPass, 0.8),
	}}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, improving))
	assert.Contains(t, buf.String(), "Score trend: +")

	declining := &models.DashboardData{Entries: []models.DashboardEntry{
		entry("aaa", "a@x.com", "A", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8),
		entry("bbb", "a@x.com", "A", "2026-03-03T10:00:00Z", models.DecisionFail, 0.2),
	}}
	buf.Reset()
	require.NoError(t, Render(&buf, declining))
	assert.Contains(t, buf.String(), "Score trend: -")
}

func TestScoreTrendSlope(t *testing.T) {
	// 0.2 -> 0.8 over two days is +0.3 per day.
	entries := []models.DashboardEntry{
		entry("aaa", "a@x.com", "A", "2026-03-01T10:00:00Z", models.DecisionFail, 0.2),
		entry("bbb", "a@x.com", "A", "2026-03-03T10:00:00Z", models.DecisionPass, 0.8),
	}
	slope, ok := scoreTrend(entries)
	require.True(t, ok)
	assert.InDelta(t, 0.3, slope, 1e-6)
}

func TestScoreTrendSkipsUnparseableDates(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("aaa", "a@x.com", "A", "not a date", models.DecisionFail, 0.2),
		entry("bbb", "a@x.com", "A", "2026-03-03T10:00:00Z", models.DecisionPass, 0.8),
	}
	_, ok := scoreTrend(entries)
	assert.False(t, ok, "one usable point is not a trend")
}

func TestScoreTrendConstantTime(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("aaa", "a@x.com", "A", "2026-03-01T10:00:00Z", models.DecisionFail, 0.2),
		entry("bbb", "b@x.com", "B", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8),
	}
	_, ok := scoreTrend(entries)
	assert.False(t, ok, "a vertical line has no slope")
}
