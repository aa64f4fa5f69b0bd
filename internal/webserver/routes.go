package webserver

import (
	"net/http"

	"github.com/aigit-dev/examboard/internal/components"
	"github.com/aigit-dev/examboard/internal/store"
	"github.com/aigit-dev/examboard/internal/webapi"
)

// registerRoutes wires the page, the intent dispatchers, and the JSON read
// API onto the mux. Every intent mutates the store (which synchronously
// re-renders the mounted tree) and then redirects back to the page.
func registerRoutes(mux *http.ServeMux, s *Session) {
	webapi.RegisterRoutes(mux, s.Store())

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST "+components.IntentFilter, s.handleFilter)
	mux.HandleFunc("POST "+components.IntentSelectUser, s.handleSelectUser)
	mux.HandleFunc("POST "+components.IntentSelectCommit, s.handleSelectCommit)
	mux.HandleFunc("POST "+components.IntentClose, s.handleClose)
	mux.HandleFunc("POST "+components.IntentAnswers, s.handleAnswers)
	mux.HandleFunc("POST "+components.IntentUpload, s.handleUpload)
	mux.HandleFunc("POST "+components.IntentReload, s.handleReload)
}

func (s *Session) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.renderPage()))
}

func (s *Session) handleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.FormValue("q")
	s.mutate(func() {
		s.store.SetState(store.Patch{UserFilter: &q})
	})
	redirectHome(w, r)
}

// handleSelectUser opens the drawer for an author. Selecting a new author
// overwrites the email and clears any prior commit selection, which is the
// NoSelection → UserSelected transition for the new author.
func (s *Session) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	s.mutate(func() {
		s.store.SetState(store.Patch{
			SelectedEmail:  &email,
			SelectedCommit: store.String(""),
		})
	})
	redirectHome(w, r)
}

func (s *Session) handleSelectCommit(w http.ResponseWriter, r *http.Request) {
	sha := r.FormValue("sha")
	s.mutate(func() {
		s.store.SetState(store.Patch{SelectedCommit: &sha})
	})
	redirectHome(w, r)
}

// handleClose returns to NoSelection: email and commit clear together.
func (s *Session) handleClose(w http.ResponseWriter, r *http.Request) {
	s.mutate(func() {
		s.store.SetState(store.Patch{
			SelectedEmail:  store.String(""),
			SelectedCommit: store.String(""),
		})
	})
	redirectHome(w, r)
}

// handleAnswers flips the answers toggle. Read and write happen under one
// lock so two racing toggles cannot collapse into a no-op.
func (s *Session) handleAnswers(w http.ResponseWriter, r *http.Request) {
	s.mutate(func() {
		show := !s.store.GetState().ShowAnswers
		s.store.SetState(store.Patch{ShowAnswers: &show})
	})
	redirectHome(w, r)
}

func (s *Session) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		s.mutate(func() { s.store.SetError(err.Error()) })
		redirectHome(w, r)
		return
	}
	f, hdr, err := r.FormFile("bundle")
	if err != nil {
		s.mutate(func() { s.store.SetError("no file supplied") })
		redirectHome(w, r)
		return
	}
	defer f.Close() //nolint:errcheck

	s.LoadUpload(hdr.Filename, f)
	redirectHome(w, r)
}

func (s *Session) handleReload(w http.ResponseWriter, r *http.Request) {
	s.Bootstrap(r.Context())
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
