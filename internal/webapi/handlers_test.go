package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/store"
)

func newTestMux(st *store.Store) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterRoutes(mux, st)
	return mux
}

func loadedStore() *store.Store {
	st := store.New()
	st.SetData(&models.DashboardData{
		SchemaVersion: models.SchemaVersion,
		GeneratedAt:   "2026-03-04T12:00:00Z",
		RepoID:        "/src/widgets",
		Entries: []models.DashboardEntry{
			{
				Commit: models.CommitMeta{
					SHA: "bbb2222", AuthorName: "Alice", AuthorEmail: "alice@x.com",
					AuthorDateISO: "2026-03-02T10:00:00Z",
				},
				Transcript: models.Transcript{Decision: models.DecisionFail, Score: models.Score{TotalScore: 0.4}},
			},
			{
				Commit: models.CommitMeta{
					SHA: "aaa1111", AuthorName: "Alice", AuthorEmail: "alice@x.com",
					AuthorDateISO: "2026-03-01T10:00:00Z",
				},
				Transcript: models.Transcript{Decision: models.DecisionPass, Score: models.Score{TotalScore: 0.8}},
			},
			{
				Commit: models.CommitMeta{
					SHA: "ccc3333", AuthorName: "Bob", AuthorEmail: "bob@x.com",
					AuthorDateISO: "2026-03-03T10:00:00Z",
				},
				Transcript: models.Transcript{Decision: models.DecisionPass, Score: models.Score{TotalScore: 0.9}},
			},
		},
	})
	return st
}

func doGet(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestHandleHealth(t *testing.T) {
	mux := newTestMux(store.New())
	rec := doGet(t, mux, "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("got content type %q, want application/json", ct)
	}
	resp := decode[HealthResponse](t, rec)
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
}

func TestHandleSummaryEmpty(t *testing.T) {
	mux := newTestMux(store.New())
	rec := doGet(t, mux, "/api/summary")

	resp := decode[SummaryResponse](t, rec)
	if resp.Status != models.StatusIdle {
		t.Errorf("got status %q, want idle", resp.Status)
	}
	if resp.KPIs.Total != 0 || resp.KPIs.PassRate != 0 {
		t.Errorf("empty store should report zero KPIs, got %+v", resp.KPIs)
	}
}

func TestHandleSummaryLoaded(t *testing.T) {
	mux := newTestMux(loadedStore())
	rec := doGet(t, mux, "/api/summary")

	resp := decode[SummaryResponse](t, rec)
	if resp.Status != models.StatusReady {
		t.Errorf("got status %q, want ready", resp.Status)
	}
	if resp.RepoID != "/src/widgets" {
		t.Errorf("got repoId %q", resp.RepoID)
	}
	if resp.KPIs.Total != 3 || resp.KPIs.Users != 2 || resp.KPIs.Pass != 2 || resp.KPIs.Fail != 1 {
		t.Errorf("unexpected KPIs: %+v", resp.KPIs)
	}
	if len(resp.Series) != 3 {
		t.Fatalf("got %d series points, want 3", len(resp.Series))
	}
	for i := 1; i < len(resp.Series); i++ {
		if resp.Series[i].X < resp.Series[i-1].X {
			t.Errorf("series not in ascending time order at %d", i)
		}
	}
}

func TestHandleUsers(t *testing.T) {
	mux := newTestMux(loadedStore())
	rec := doGet(t, mux, "/api/users")

	users := decode[[]models.UserRow](t, rec)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Email != "bob@x.com" {
		t.Errorf("got first user %q, want most recently seen (bob@x.com)", users[0].Email)
	}
}

func TestHandleUsersFiltered(t *testing.T) {
	mux := newTestMux(loadedStore())
	rec := doGet(t, mux, "/api/users?q=ALICE")

	users := decode[[]models.UserRow](t, rec)
	if len(users) != 1 || users[0].Email != "alice@x.com" {
		t.Fatalf("case-insensitive filter failed, got %+v", users)
	}
}

func TestHandleUserDetail(t *testing.T) {
	mux := newTestMux(loadedStore())
	rec := doGet(t, mux, "/api/users/alice@x.com")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	resp := decode[UserDetailResponse](t, rec)
	if resp.User.Passes != 1 || resp.User.Fails != 1 {
		t.Errorf("unexpected aggregate row: %+v", resp.User)
	}
	if len(resp.Entries) != 2 || resp.Entries[0].Commit.SHA != "bbb2222" {
		t.Errorf("history should be newest first, got %+v", resp.Entries)
	}
	if resp.EffectiveCommit != "bbb2222" {
		t.Errorf("got effective commit %q, want most recent", resp.EffectiveCommit)
	}
}

func TestHandleUserDetailHonorsSelection(t *testing.T) {
	st := loadedStore()
	st.SetState(store.Patch{
		SelectedEmail:  store.String("alice@x.com"),
		SelectedCommit: store.String("aaa1111"),
	})
	mux := newTestMux(st)

	rec := doGet(t, mux, "/api/users/alice@x.com")
	resp := decode[UserDetailResponse](t, rec)
	if resp.EffectiveCommit != "aaa1111" {
		t.Errorf("got effective commit %q, want the explicit selection", resp.EffectiveCommit)
	}

	// Another author's detail ignores the selection.
	rec = doGet(t, mux, "/api/users/bob@x.com")
	resp = decode[UserDetailResponse](t, rec)
	if resp.EffectiveCommit != "ccc3333" {
		t.Errorf("got effective commit %q, want bob's most recent", resp.EffectiveCommit)
	}
}

func TestHandleUserDetailStaleSelection(t *testing.T) {
	st := loadedStore()
	st.SetState(store.Patch{
		SelectedEmail:  store.String("alice@x.com"),
		SelectedCommit: store.String("gone999"),
	})
	mux := newTestMux(st)

	rec := doGet(t, mux, "/api/users/alice@x.com")
	resp := decode[UserDetailResponse](t, rec)
	if resp.EffectiveCommit != "bbb2222" {
		t.Errorf("got effective commit %q, want fallback to most recent", resp.EffectiveCommit)
	}
}

func TestHandleUserDetailNotFound(t *testing.T) {
	mux := newTestMux(loadedStore())
	rec := doGet(t, mux, "/api/users/nobody@x.com")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Code != http.StatusNotFound {
		t.Errorf("error body carries code %d, want 404", resp.Code)
	}
}
