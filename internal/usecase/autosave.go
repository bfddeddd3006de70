package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/roster"
	"github.com/rlfpro/rocket-fantasy/internal/platform/debounce"
	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
)

const (
	DefaultAutosaveWindow  = 500 * time.Millisecond
	autosavePersistTimeout = 10 * time.Second
)

// SaveNotifier receives the outcome of background persists. Implementations
// must not block; the autosaver calls them from its flush goroutine.
type SaveNotifier func(userID string, err error)

type pendingSave struct {
	timer  debounce.Timer
	state  roster.Roster
	gen    uint64
	closed bool
}

// Autosaver debounces roster writes. Each staged change (re)starts a
// quiescence window; when the window elapses untouched, the latest staged
// state is upserted in one write. Staging a roster for a different
// (league, event) than the pending one drops the pending save without
// writing. Staged state stays visible to reads until it is flushed, and is
// retained after a failed persist so the next change retries.
type Autosaver struct {
	repo   roster.Repository
	window time.Duration
	notify SaveNotifier
	logger *logging.Logger

	mu      sync.Mutex
	pending map[string]*pendingSave
}

func NewAutosaver(repo roster.Repository, window time.Duration, notify SaveNotifier, logger *logging.Logger) *Autosaver {
	if window <= 0 {
		window = DefaultAutosaveWindow
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Autosaver{
		repo:    repo,
		window:  window,
		notify:  notify,
		logger:  logger,
		pending: make(map[string]*pendingSave),
	}
}

// Stage records r as the user's latest unsaved state and schedules a
// debounced persist. A staged roster for another league or event replaces
// the pending one and cancels its write.
func (a *Autosaver) Stage(r roster.Roster) error {
	if err := r.ValidateBasic(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	a.mu.Lock()
	p, ok := a.pending[r.UserID]
	if ok && (p.state.LeagueID != r.LeagueID || p.state.EventID != r.EventID) {
		p.timer.Cancel()
		p.closed = true
		ok = false
	}
	if !ok {
		p = &pendingSave{}
		a.pending[r.UserID] = p
	}
	p.state = r
	p.gen++
	gen := p.gen
	userID := r.UserID
	// Armed under the lock: the latest generation must also own the armed
	// timer, or an interleaved Stage could leave a stale callback as the only
	// one scheduled and the staged state would never flush. The window is
	// always > 0 here, so Schedule never runs the callback synchronously.
	p.timer.Schedule(a.window, func() {
		a.flush(userID, gen)
	})
	a.mu.Unlock()

	return nil
}

// Staged returns the unsaved state for (userID, leagueID, eventID) if one
// exists.
func (a *Autosaver) Staged(userID, leagueID, eventID string) (roster.Roster, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[userID]
	if !ok || p.closed {
		return roster.Roster{}, false
	}
	if p.state.LeagueID != leagueID || p.state.EventID != eventID {
		return roster.Roster{}, false
	}
	return cloneRoster(p.state), true
}

// Cancel drops any pending save for the user without writing.
func (a *Autosaver) Cancel(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[userID]
	if !ok {
		return
	}
	p.timer.Cancel()
	p.closed = true
	delete(a.pending, userID)
}

// Flush persists the user's staged state immediately, superseding the
// pending timer. It reports whether anything was staged.
func (a *Autosaver) Flush(ctx context.Context, userID string) (roster.Roster, bool, error) {
	a.mu.Lock()
	p, ok := a.pending[userID]
	if !ok || p.closed {
		a.mu.Unlock()
		return roster.Roster{}, false, nil
	}
	p.timer.Cancel()
	state := cloneRoster(p.state)
	gen := p.gen
	a.mu.Unlock()

	if err := a.repo.Upsert(ctx, state); err != nil {
		return roster.Roster{}, true, fmt.Errorf("upsert roster: %w", err)
	}
	a.clearIfUnchanged(userID, gen)

	return state, true, nil
}

// FlushAll persists every staged roster. Called on shutdown so debounced
// changes are not lost.
func (a *Autosaver) FlushAll(ctx context.Context) error {
	a.mu.Lock()
	userIDs := make([]string, 0, len(a.pending))
	for userID, p := range a.pending {
		if !p.closed {
			userIDs = append(userIDs, userID)
		}
	}
	a.mu.Unlock()

	var firstErr error
	for _, userID := range userIDs {
		if _, _, err := a.Flush(ctx, userID); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (a *Autosaver) flush(userID string, gen uint64) {
	a.mu.Lock()
	p, ok := a.pending[userID]
	if !ok || p.closed || p.gen != gen {
		a.mu.Unlock()
		return
	}
	state := cloneRoster(p.state)
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), autosavePersistTimeout)
	defer cancel()

	if err := a.repo.Upsert(ctx, state); err != nil {
		a.logger.ErrorContext(ctx, "autosave persist failed",
			"user_id", userID,
			"league_id", state.LeagueID,
			"event_id", state.EventID,
			"error", err,
		)
		if a.notify != nil {
			a.notify(userID, err)
		}
		return
	}

	a.clearIfUnchanged(userID, gen)
	if a.notify != nil {
		a.notify(userID, nil)
	}
}

func (a *Autosaver) clearIfUnchanged(userID string, gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[userID]
	if ok && p.gen == gen {
		p.closed = true
		delete(a.pending, userID)
	}
}

func cloneRoster(r roster.Roster) roster.Roster {
	out := r
	out.Picks = make([]roster.Pick, len(r.Picks))
	copy(out.Picks, r.Picks)
	return out
}
