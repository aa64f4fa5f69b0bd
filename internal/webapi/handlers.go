package webapi

import (
	"encoding/json"
	"net/http"

	"github.com/aigit-dev/examboard/internal/selectors"
	"github.com/aigit-dev/examboard/internal/store"
)

// Version is reported by the health endpoint. The CLI assigns its build
// version here at startup; it defaults to dev.
var Version = "dev"

// Handlers holds the HTTP handler methods for the read API. All handlers
// derive their responses from the current store snapshot with the same
// selectors the component tree uses.
type Handlers struct {
	store *store.Store
}

// NewHandlers creates Handlers reading from the given store.
func NewHandlers(st *store.Store) *Handlers {
	return &Handlers{store: st}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSummary returns the KPIs and score time series.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	state := h.store.GetState()
	resp := SummaryResponse{
		Status: state.Status,
		KPIs:   selectors.KPIs(state.Entries()),
		Series: selectors.TimeSeriesAvgScore(state.Entries()),
	}
	if state.Data != nil {
		resp.RepoID = state.Data.RepoID
		resp.GeneratedAt = state.Data.GeneratedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleUsers returns aggregated author rows, optionally filtered with the
// q query parameter (case-insensitive substring on name or email).
func (h *Handlers) HandleUsers(w http.ResponseWriter, r *http.Request) {
	state := h.store.GetState()
	users := selectors.FilterUsers(
		selectors.AggregateUsers(state.Entries()),
		r.URL.Query().Get("q"),
	)
	writeJSON(w, http.StatusOK, users)
}

// HandleUserDetail returns one author's history and effective selection.
func (h *Handlers) HandleUserDetail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "user email is required")
		return
	}

	state := h.store.GetState()
	entries := selectors.EntriesForUser(state.Entries(), email)
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var row *UserDetailResponse
	for _, u := range selectors.AggregateUsers(state.Entries()) {
		if u.Email == email {
			row = &UserDetailResponse{User: u}
			break
		}
	}
	if row == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	row.Entries = entries
	selected := ""
	if email == state.SelectedEmail {
		selected = state.SelectedCommit
	}
	row.EffectiveCommit = selectors.EffectiveCommit(state.Entries(), email, selected)
	writeJSON(w, http.StatusOK, row)
}

// RegisterRoutes registers all read API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, st *store.Store) {
	h := NewHandlers(st)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/users", h.HandleUsers)
	mux.HandleFunc("GET /api/users/{email}", h.HandleUserDetail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
