package models

// Status is the load lifecycle of the dashboard session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// AppState is the process-wide UI state owned by the store.
//
// SelectedEmail and SelectedCommit are cleared together when the drill-down
// drawer is closed. If SelectedCommit does not reference an entry belonging
// to SelectedEmail, the most recent entry for that email is the effective
// selection; the stored value is never auto-corrected, callers display as if
// it were.
type AppState struct {
	Status         Status
	Error          string
	Data           *DashboardData
	UserFilter     string
	SelectedEmail  string
	SelectedCommit string
	ShowAnswers    bool
}

// Entries returns the loaded entry list, or nil before any load completes.
func (s AppState) Entries() []DashboardEntry {
	if s.Data == nil {
		return nil
	}
	return s.Data.Entries
}
