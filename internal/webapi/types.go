// Package webapi exposes a read-only JSON API over the loaded session state,
// for scripting against a running dashboard.
package webapi

import (
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/selectors"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SummaryResponse carries the session status and the top-level KPIs.
type SummaryResponse struct {
	Status      models.Status     `json:"status"`
	RepoID      string            `json:"repoId,omitempty"`
	GeneratedAt string            `json:"generatedAt,omitempty"`
	KPIs        selectors.KPISet  `json:"kpis"`
	Series      []selectors.Point `json:"series"`
}

// UserDetailResponse is one author's aggregate row plus their transcript
// history, newest first, and the effective drill-down selection.
type UserDetailResponse struct {
	User            models.UserRow          `json:"user"`
	Entries         []models.DashboardEntry `json:"entries"`
	EffectiveCommit string                  `json:"effectiveCommit"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
