// Package archive keeps finished single matches, saved team matches and the
// team-match draft in a store.Store.
//
// Collections are stored as one JSON array per key and updated by
// read-modify-write. A blob that fails to parse is logged at WARN and treated
// as empty; it is overwritten by the next successful save.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/ttscore/internal/store"
)

// Store keys.
const (
	KeyMatches     = "tt_archive"
	KeyTeamMatches = "tt_team_archive"
	KeyDraft       = "tt_team_current_sheet"
)

// DateLayout formats record dates in Slovak locale notation.
const DateLayout = "2. 1. 2006 15:04:05"

// Clock supplies the wall time used for record ids and dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SessionGenerator creates draft session ids.
type SessionGenerator interface {
	NewSession() string
}

type uuidSessions struct{}

// NewSession returns a UUIDv7, so session ids sort by creation time.
func (uuidSessions) NewSession() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Archive reads and writes archived records.
type Archive struct {
	store    store.Store
	clock    Clock
	sessions SessionGenerator
	logger   *slog.Logger
}

// Option configures an Archive.
type Option func(*Archive)

// WithClock sets the clock used for ids and dates.
func WithClock(c Clock) Option {
	return func(a *Archive) { a.clock = c }
}

// WithSessions sets the draft session id generator.
func WithSessions(g SessionGenerator) Option {
	return func(a *Archive) { a.sessions = g }
}

// WithLogger sets the logger for corruption and save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Archive) { a.logger = l }
}

// New creates an archive over s.
func New(s store.Store, opts ...Option) *Archive {
	a := &Archive{
		store:    s,
		clock:    systemClock{},
		sessions: uuidSessions{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewSession returns a fresh draft session id.
func (a *Archive) NewSession() string {
	return a.sessions.NewSession()
}

// loadList decodes the JSON array stored under key. A missing key yields an
// empty list, and so does a corrupt blob after it is logged.
func loadList[T any](ctx context.Context, a *Archive, key string) ([]T, error) {
	raw, err := a.store.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		a.logger.Warn("discarding corrupt archive blob",
			"key", key,
			"bytes", len(raw),
			"error", err)
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func saveJSON(ctx context.Context, a *Archive, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// nextID derives a record id from the clock in milliseconds. Ids stay
// unique within a collection even when the clock repeats or runs backwards.
func nextID(now time.Time, existing []int64) int64 {
	id := now.UnixMilli()
	for _, e := range existing {
		if e >= id {
			id = e + 1
		}
	}
	return id
}
