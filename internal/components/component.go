// Package components renders dashboard state to HTML. Each component is a
// self-contained rendering unit: it owns a private buffer and an isolated
// style sheet, and exposes a Render(state) entry point that performs a full,
// idempotent re-render of its subtree. Components subscribe to the store's
// change signal at mount time; there is no partial or differential update.
package components

import (
	"bytes"
	"fmt"
	"html"

	"github.com/aigit-dev/examboard/internal/models"
	"github.com/aigit-dev/examboard/internal/store"
)

// Intent routes dispatched by rendered forms. The web server registers a
// handler for each.
const (
	IntentFilter       = "/intent/filter"
	IntentSelectUser   = "/intent/select-user"
	IntentSelectCommit = "/intent/select-commit"
	IntentClose        = "/intent/close"
	IntentAnswers      = "/intent/answers"
	IntentUpload       = "/upload"
	IntentReload       = "/reload"
)

// Component is one rendering unit of the dashboard tree.
type Component interface {
	// Name identifies the unit; it doubles as its style scope.
	Name() string
	// Render replaces the unit's entire output from the given state.
	// Rendering the same state twice produces identical output.
	Render(state models.AppState)
	// HTML returns the output of the last Render.
	HTML() string
	// Styles returns the unit's style sheet, scoped to the unit.
	Styles() string
}

// Mount subscribes c to the store's change signal and renders it once with
// the current state. Every subsequent change signal re-renders the full
// subtree synchronously. The returned function unmounts.
func Mount(st *store.Store, c Component) func() {
	render := func() { c.Render(st.GetState()) }
	unsub := st.Subscribe(render)
	render()
	return unsub
}

// unit is the shared rendering context embedded by every component: a name,
// an isolated style sheet, the private output buffer, and the last state
// seen (so setter-style inputs can re-render without a store signal).
type unit struct {
	name string
	css  string
	buf  bytes.Buffer
	last models.AppState
}

func (u *unit) Name() string { return u.name }

func (u *unit) HTML() string { return u.buf.String() }

func (u *unit) Styles() string { return Scoped(u.name, u.css) }

// begin starts a fresh render: remembers the state and clears the buffer.
func (u *unit) begin(state models.AppState) {
	u.last = state
	u.buf.Reset()
}

func (u *unit) printf(format string, args ...any) {
	fmt.Fprintf(&u.buf, format, args...)
}

func (u *unit) write(s string) {
	u.buf.WriteString(s)
}

// esc escapes text for embedding in HTML.
func esc(s string) string { return html.EscapeString(s) }
