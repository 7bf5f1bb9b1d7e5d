package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/ttscore/internal/store"
	"github.com/roach88/ttscore/internal/team"
)

// SaveDraft stores sheet as the team match in progress. A sheet without a
// session id is assigned one first.
func (a *Archive) SaveDraft(ctx context.Context, sheet *team.Sheet) error {
	if sheet.Session() == "" {
		sheet.SetSession(a.sessions.NewSession())
	}
	if err := saveJSON(ctx, a, KeyDraft, sheet.Snapshot()); err != nil {
		return err
	}
	a.logger.Debug("saved draft", "session", sheet.Session())
	return nil
}

// LoadDraft restores the team match in progress. ok is false when there is
// no draft, or when the stored draft is corrupt; a corrupt draft is logged.
func (a *Archive) LoadDraft(ctx context.Context) (sheet *team.Sheet, ok bool, err error) {
	raw, err := a.store.Load(ctx, KeyDraft)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", KeyDraft, err)
	}

	var snap team.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		a.logger.Warn("discarding corrupt draft", "key", KeyDraft, "error", err)
		return nil, false, nil
	}
	sheet, err = team.Restore(snap)
	if err != nil {
		a.logger.Warn("discarding invalid draft", "key", KeyDraft, "error", err)
		return nil, false, nil
	}
	return sheet, true, nil
}

// ClearDraft removes the team match in progress.
func (a *Archive) ClearDraft(ctx context.Context) error {
	if err := a.store.Delete(ctx, KeyDraft); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
