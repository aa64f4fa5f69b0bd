package models

// SchemaVersion is the bundle schema this dashboard was built against.
// Presence of the field is validated; the value is not, so older and newer
// exports still load.
const SchemaVersion = "aigit-dashboard/0.1"

// CommitMeta is the commit header attached to each exported entry.
type CommitMeta struct {
	SHA           string `json:"sha"`
	AuthorName    string `json:"author_name"`
	AuthorEmail   string `json:"author_email"`
	AuthorDateISO string `json:"author_date_iso"`
	Subject       string `json:"subject"`
}

// DashboardEntry is one commit+transcript pair of the ingested dataset.
// The sha identifies an entry within a load, but the dataset is not required
// to deduplicate: duplicate shas are legal and both counted.
type DashboardEntry struct {
	Commit     CommitMeta `json:"commit"`
	Transcript Transcript `json:"transcript"`
}

// DashboardData is the entire loaded snapshot. Once handed to the store it is
// replaced wholesale on reload, never mutated in place.
type DashboardData struct {
	SchemaVersion string           `json:"schema_version"`
	GeneratedAt   string           `json:"generated_at"`
	RepoID        string           `json:"repo_id"`
	Entries       []DashboardEntry `json:"entries"`
}

// UserRow is the derived per-author aggregate. Recomputed from scratch on
// every render, never incrementally patched.
type UserRow struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Passes      int     `json:"passes"`
	Fails       int     `json:"fails"`
	AvgScore    float64 `json:"avgScore"`
	LastSeenISO string  `json:"lastSeenIso"`
}
