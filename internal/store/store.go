// Package store holds the single mutable state container for a dashboard
// session and its change-notification contract.
package store

import (
	"sync"

	"github.com/aigit-dev/examboard/internal/models"
)

// Patch is a partial state update. Nil fields are preserved by SetState
// (shallow merge). String fields clear their target when set to a pointer to
// the empty string.
type Patch struct {
	Status         *models.Status
	Error          *string
	Data           *models.DashboardData
	UserFilter     *string
	SelectedEmail  *string
	SelectedCommit *string
	ShowAnswers    *bool
}

// Store is the single source of truth for one dashboard session. There is
// exactly one Store per session, constructed at startup and passed by
// reference to the component tree.
//
// Mutation is synchronous: SetState merges the patch and notifies every
// subscriber, in subscription order, before returning. There is no batching;
// two consecutive SetState calls each raise exactly one change signal. The
// mutex only guards against the HTTP layer's concurrent readers; the session
// itself has a single writer path.
type Store struct {
	mu    sync.RWMutex
	state models.AppState

	subMu  sync.Mutex
	subs   []*subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func()
}

// New returns a Store in the idle state with no data loaded.
func New() *Store {
	return &Store{
		state: models.AppState{Status: models.StatusIdle},
	}
}

// GetState returns the current state snapshot. The returned value is a copy;
// callers must treat Data as read-only.
func (s *Store) GetState() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState merges a partial update into state and synchronously raises one
// change signal to every subscriber, in subscription order. Re-renders
// triggered by the signal run to completion before SetState returns.
func (s *Store) SetState(p Patch) {
	s.mu.Lock()
	if p.Status != nil {
		s.state.Status = *p.Status
	}
	if p.Error != nil {
		s.state.Error = *p.Error
	}
	if p.Data != nil {
		s.state.Data = p.Data
	}
	if p.UserFilter != nil {
		s.state.UserFilter = *p.UserFilter
	}
	if p.SelectedEmail != nil {
		s.state.SelectedEmail = *p.SelectedEmail
	}
	if p.SelectedCommit != nil {
		s.state.SelectedCommit = *p.SelectedCommit
	}
	if p.ShowAnswers != nil {
		s.state.ShowAnswers = *p.ShowAnswers
	}
	s.mu.Unlock()

	s.notify()
}

// SetData replaces the snapshot wholesale and marks the session ready.
func (s *Store) SetData(data *models.DashboardData) {
	s.SetState(Patch{
		Data:   data,
		Status: statusPtr(models.StatusReady),
		Error:  strPtr(""),
	})
}

// SetError records a load failure for display. The session stays usable and
// a new load may be attempted at any time.
func (s *Store) SetError(msg string) {
	s.SetState(Patch{
		Status: statusPtr(models.StatusError),
		Error:  &msg,
	})
}

// Subscribe registers fn to run on every change signal. Subscribers are
// notified in subscription order. The returned function removes the
// subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	sub := &subscriber{id: s.nextID, fn: fn}
	s.subs = append(s.subs, sub)
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, cand := range s.subs {
			if cand.id == sub.id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

func statusPtr(v models.Status) *models.Status { return &v }
func strPtr(v string) *string                  { return &v }

// StatusPatch returns a patch setting only the lifecycle status.
func StatusPatch(v models.Status) Patch {
	return Patch{Status: statusPtr(v)}
}

// String returns a pointer to v, for building patches.
func String(v string) *string { return strPtr(v) }

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }

// Status returns a pointer to v, for building patches.
func Status(v models.Status) *models.Status { return statusPtr(v) }
