package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigit-dev/examboard/internal/models"
)

func entry(sha, name, email, dateISO string, decision models.Decision, score float64, flags ...string) models.DashboardEntry {
	return models.DashboardEntry{
		Commit: models.CommitMeta{
			SHA:           sha,
			AuthorName:    name,
			AuthorEmail:   email,
			AuthorDateISO: dateISO,
			Subject:       "change " + sha,
		},
		Transcript: models.Transcript{
			Decision: decision,
			Score: models.Score{
				TotalScore:         score,
				HallucinationFlags: flags,
			},
		},
	}
}

func TestAggregateUsersGroupsByEmail(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
		entry("b1", "Bob", "bob@x.com", "2026-03-02T10:00:00Z", models.DecisionFail, 0.3),
		entry("a2", "Alice", "alice@x.com", "2026-03-03T10:00:00Z", models.DecisionPass, 0.7),
		entry("c1", "Cara", "cara@x.com", "2026-03-04T10:00:00Z", models.DecisionPass, 0.8),
	}

	rows := AggregateUsers(entries)
	require.Len(t, rows, 3, "one row per distinct email")

	byEmail := map[string]models.UserRow{}
	for _, r := range rows {
		byEmail[r.Email] = r
	}
	assert.Equal(t, 2, byEmail["alice@x.com"].Passes)
	assert.Equal(t, 0, byEmail["alice@x.com"].Fails)
	assert.Equal(t, 1, byEmail["bob@x.com"].Fails)
}

func TestAggregateUsersRunningMean(t *testing.T) {
	// Decisions in encounter order: pass(0.8), fail(0.4), pass(0.6).
	first2 := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8),
		entry("a2", "Alice", "alice@x.com", "2026-03-02T10:00:00Z", models.DecisionFail, 0.4),
	}
	all3 := append(append([]models.DashboardEntry{}, first2...),
		entry("a3", "Alice", "alice@x.com", "2026-03-03T10:00:00Z", models.DecisionPass, 0.6))

	rows := AggregateUsers(first2)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.6, rows[0].AvgScore, 1e-9, "after first two decisions")

	rows = AggregateUsers(all3)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.6, rows[0].AvgScore, 1e-9, "after all three decisions")
	assert.Equal(t, 2, rows[0].Passes)
	assert.Equal(t, 1, rows[0].Fails)
}

func TestAggregateUsersUnknownDecisionCountsAsFail(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", "borked", 0.5),
	}
	rows := AggregateUsers(entries)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Passes)
	assert.Equal(t, 1, rows[0].Fails)
}

func TestAggregateUsersSortedByLastSeenDesc(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
		entry("b1", "Bob", "bob@x.com", "2026-03-05T10:00:00Z", models.DecisionPass, 0.9),
		entry("c1", "Cara", "cara@x.com", "2026-03-03T10:00:00Z", models.DecisionPass, 0.9),
	}
	rows := AggregateUsers(entries)
	require.Len(t, rows, 3)
	assert.Equal(t, "bob@x.com", rows[0].Email)
	assert.Equal(t, "cara@x.com", rows[1].Email)
	assert.Equal(t, "alice@x.com", rows[2].Email)
}

func TestAggregateUsersTieBrokenByEmailAsc(t *testing.T) {
	ts := "2026-03-05T10:00:00Z"
	entries := []models.DashboardEntry{
		entry("z1", "Zoe", "zoe@x.com", ts, models.DecisionPass, 0.9),
		entry("a1", "Ann", "ann@x.com", ts, models.DecisionPass, 0.9),
	}
	rows := AggregateUsers(entries)
	require.Len(t, rows, 2)
	assert.Equal(t, "ann@x.com", rows[0].Email)
	assert.Equal(t, "zoe@x.com", rows[1].Email)
}

func TestAggregateUsersLastSeenIsLexMax(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a2", "Alice", "alice@x.com", "2026-03-04T10:00:00Z", models.DecisionPass, 0.9),
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
	}
	rows := AggregateUsers(entries)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-03-04T10:00:00Z", rows[0].LastSeenISO)
}

func TestAggregateUsersDuplicateShasBothCounted(t *testing.T) {
	e := entry("dup", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8)
	rows := AggregateUsers([]models.DashboardEntry{e, e})
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Passes)
}

func TestFilterUsersEmptyQueryReturnsInput(t *testing.T) {
	users := []models.UserRow{
		{Name: "Alice", Email: "alice@x.com"},
		{Name: "Bob", Email: "bob@x.com"},
	}
	assert.Equal(t, users, FilterUsers(users, ""))
	assert.Equal(t, users, FilterUsers(users, "   "))
}

func TestFilterUsersCaseInsensitive(t *testing.T) {
	users := []models.UserRow{
		{Name: "Alice Smith", Email: "alice@x.com"},
		{Name: "Bob Jones", Email: "BOB@X.COM"},
	}

	got := FilterUsers(users, "ALICE")
	require.Len(t, got, 1)
	assert.Equal(t, "alice@x.com", got[0].Email)

	got = FilterUsers(users, "bob@x")
	require.Len(t, got, 1)
	assert.Equal(t, "Bob Jones", got[0].Name)

	assert.Empty(t, FilterUsers(users, "nobody"))
}

func TestEntriesForUserNewestFirst(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
		entry("b1", "Bob", "bob@x.com", "2026-03-02T10:00:00Z", models.DecisionPass, 0.9),
		entry("a2", "Alice", "alice@x.com", "2026-03-03T10:00:00Z", models.DecisionPass, 0.9),
	}
	got := EntriesForUser(entries, "alice@x.com")
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].Commit.SHA)
	assert.Equal(t, "a1", got[1].Commit.SHA)
}

func TestKPIsEmpty(t *testing.T) {
	k := KPIs(nil)
	assert.Equal(t, KPISet{}, k, "no division-by-zero artifacts")
}

func TestKPIs(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.8, "flag-1"),
		entry("a2", "Alice", "alice@x.com", "2026-03-02T10:00:00Z", models.DecisionFail, 0.4),
		entry("b1", "Bob", "bob@x.com", "2026-03-03T10:00:00Z", models.DecisionPass, 0.6, "flag-2", "flag-3"),
		entry("c1", "Cara", "cara@x.com", "2026-03-04T10:00:00Z", models.DecisionPass, 0.2),
	}
	k := KPIs(entries)

	assert.Equal(t, 4, k.Total)
	assert.Equal(t, 3, k.Users)
	assert.Equal(t, 3, k.Pass)
	assert.Equal(t, 1, k.Fail)
	assert.Equal(t, k.Total-k.Pass, k.Fail)
	assert.InDelta(t, 0.75, k.PassRate, 1e-9)
	assert.InDelta(t, 0.5, k.AvgScore, 1e-9)
	assert.Equal(t, 3, k.Flags)
}

func TestKPIsFailEqualsTotalMinusPass(t *testing.T) {
	lists := [][]models.DashboardEntry{
		nil,
		{entry("a1", "A", "a@x.com", "2026-01-01T00:00:00Z", models.DecisionFail, 0)},
		{
			entry("a1", "A", "a@x.com", "2026-01-01T00:00:00Z", models.DecisionPass, 1),
			entry("a2", "A", "a@x.com", "2026-01-02T00:00:00Z", "weird", 0.5),
			entry("b1", "B", "b@x.com", "2026-01-03T00:00:00Z", models.DecisionPass, 0.7),
		},
	}
	for _, entries := range lists {
		k := KPIs(entries)
		assert.Equal(t, k.Total-k.Pass, k.Fail)
	}
}

func TestTimeSeriesAvgScoreNonDecreasingX(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("c1", "C", "c@x.com", "2026-03-04T10:00:00Z", models.DecisionPass, 0.8),
		entry("a1", "A", "a@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
		entry("b1", "B", "b@x.com", "2026-03-02T10:00:00Z", models.DecisionFail, 0.3),
	}
	points := TimeSeriesAvgScore(entries)
	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].X, points[i].X)
	}
	assert.InDelta(t, 0.9, points[0].Y, 1e-9, "oldest entry first")
}

func TestTimeSeriesAvgScoreBadTimestampMapsToZero(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("a1", "A", "a@x.com", "not-a-date", models.DecisionPass, 0.9),
	}
	points := TimeSeriesAvgScore(entries)
	require.Len(t, points, 1)
	assert.Equal(t, int64(0), points[0].X)
	assert.InDelta(t, 0.9, points[0].Y, 1e-9)
}

func TestEffectiveCommit(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("aaa", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
		entry("bbb", "Alice", "alice@x.com", "2026-03-02T10:00:00Z", models.DecisionPass, 0.9),
	}

	// No stored commit: most recent entry wins.
	assert.Equal(t, "bbb", EffectiveCommit(entries, "alice@x.com", ""))

	// A stored commit belonging to the user is honored.
	assert.Equal(t, "aaa", EffectiveCommit(entries, "alice@x.com", "aaa"))

	// A stale commit falls back to the most recent entry.
	assert.Equal(t, "bbb", EffectiveCommit(entries, "alice@x.com", "zzz"))

	// Unknown user has no selection.
	assert.Equal(t, "", EffectiveCommit(entries, "bob@x.com", "aaa"))
}

func TestFindEntry(t *testing.T) {
	entries := []models.DashboardEntry{
		entry("aaa", "Alice", "alice@x.com", "2026-03-01T10:00:00Z", models.DecisionPass, 0.9),
	}
	got, ok := FindEntry(entries, "alice@x.com", "aaa")
	require.True(t, ok)
	assert.Equal(t, "aaa", got.Commit.SHA)

	_, ok = FindEntry(entries, "alice@x.com", "bbb")
	assert.False(t, ok)

	_, ok = FindEntry(entries, "bob@x.com", "aaa")
	assert.False(t, ok)
}

func TestParseISOMillis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"epoch", "1970-01-01T00:00:00Z", 0},
		{"utc", "2026-03-01T10:00:00Z", 1772359200000},
		{"offset", "2026-03-01T10:00:00+02:00", 1772352000000},
		{"garbage", "not-a-date", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseISOMillis(tt.in))
		})
	}
}
