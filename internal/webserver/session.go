package webserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aigit-dev/examboard/internal/components"
	"github.com/aigit-dev/examboard/internal/datasource"
	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/store"
)

// ExportHint names the external command that produces the data bundle. Shown
// when the bootstrap load finds nothing to display.
const ExportHint = "aigit dashboard export --out data.json"

// Session ties one store, one mounted component tree, and one loader
// together for the lifetime of the process. There is exactly one Session per
// server.
//
// The component tree is shared mutable state: every store mutation
// synchronously rewrites the per-unit render buffers, and net/http handles
// each request on its own goroutine. renderMu serializes mutations (with the
// re-render each one triggers) against page reads; every store write in the
// serving path must go through mutate, and every full-page read through
// renderPage.
type Session struct {
	store   *store.Store
	app     *components.App
	loader  *datasource.Loader
	source  string // bundle URL or local path
	logger  *slog.Logger
	unmount func()

	renderMu sync.RWMutex
}

// NewSession constructs the store, mounts the component tree on it, and
// remembers the bundle source for bootstrap and reload.
func NewSession(title, source string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	st := store.New()
	app := components.NewApp(title)
	s := &Session{
		store:  st,
		app:    app,
		loader: datasource.NewLoader(logger),
		source: source,
		logger: logger,
	}
	s.unmount = app.Mount(st)
	return s
}

// Store exposes the session's state container.
func (s *Session) Store() *store.Store { return s.store }

// App exposes the mounted component tree.
func (s *Session) App() *components.App { return s.app }

// Close unmounts the component tree.
func (s *Session) Close() {
	s.unmount()
}

// mutate runs a store mutation under the render lock, holding it across the
// synchronous re-render the change signal triggers.
func (s *Session) mutate(fn func()) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	fn()
}

// renderPage assembles the full page from the last render of every unit,
// excluding concurrent re-renders.
func (s *Session) renderPage() string {
	s.renderMu.RLock()
	defer s.renderMu.RUnlock()
	return s.app.Page()
}

// Bootstrap attempts the configured bundle source. A failure here is the
// expected first-run state, not an error: status returns to idle with an
// instructional message naming the export command, and the session waits for
// a manual upload. Loads are never cancelled; when two loads race, whichever
// completes last wins.
func (s *Session) Bootstrap(ctx context.Context) {
	s.mutate(func() { s.store.SetState(store.StatusPatch(models.StatusLoading)) })

	data, err := s.load(ctx)
	if err != nil {
		s.logger.Debug("bootstrap load failed", "source", s.source, "error", err)
		s.mutate(func() {
			s.store.SetState(store.Patch{
				Status: store.Status(models.StatusIdle),
				Error: store.String(fmt.Sprintf(
					"No dashboard data at %s. Run `%s` in the repository to produce it, or load an exported file below.",
					s.source, ExportHint)),
			})
		})
		return
	}
	s.mutate(func() { s.store.SetData(data) })
	s.logger.Info("bundle loaded", "source", s.source, "entries", len(data.Entries))
}

// LoadUpload ingests a manually supplied bundle. Unlike Bootstrap, a failure
// is a real error: the parse/validation message is stored verbatim for
// display.
func (s *Session) LoadUpload(name string, r io.Reader) {
	s.mutate(func() { s.store.SetState(store.StatusPatch(models.StatusLoading)) })

	data, err := s.loader.LoadFromReader(name, r)
	if err != nil {
		s.mutate(func() { s.store.SetError(err.Error()) })
		return
	}
	s.mutate(func() { s.store.SetData(data) })
	s.logger.Info("bundle loaded", "source", name, "entries", len(data.Entries))
}

func (s *Session) load(ctx context.Context) (*models.DashboardData, error) {
	if strings.HasPrefix(s.source, "http://") || strings.HasPrefix(s.source, "https://") {
		return s.loader.LoadFromURL(ctx, s.source)
	}
	return s.loader.LoadFromFile(s.source)
}
