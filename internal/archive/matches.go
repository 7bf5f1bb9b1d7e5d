package archive

import (
	"context"

	"github.com/roach88/ttscore/internal/match"
	"github.com/roach88/ttscore/internal/reject"
)

// MatchRecord is an archived single match.
type MatchRecord struct {
	ID          int64             `json:"id"`
	Date        string            `json:"date"`
	Competitor0 match.Competitor  `json:"p1"`
	Competitor1 match.Competitor  `json:"p2"`
	History     []match.SetRecord `json:"history"`
}

// Competitors returns both competitors indexed by side.
func (r MatchRecord) Competitors() [2]match.Competitor {
	return [2]match.Competitor{r.Competitor0, r.Competitor1}
}

// Winner returns the side with more sets.
func (r MatchRecord) Winner() (match.Side, bool) {
	switch {
	case r.Competitor0.Sets > r.Competitor1.Sets:
		return match.Side0, true
	case r.Competitor1.Sets > r.Competitor0.Sets:
		return match.Side1, true
	}
	return 0, false
}

// SaveMatch archives a finished match as the newest entry.
func (a *Archive) SaveMatch(ctx context.Context, e *match.Engine) (MatchRecord, error) {
	if !e.Finished() {
		return MatchRecord{}, reject.New(reject.CodeMatchNotFinished, "save match", "only finished matches can be archived")
	}

	list, err := a.Matches(ctx)
	if err != nil {
		return MatchRecord{}, err
	}

	st := e.Snapshot()
	now := a.clock.Now()
	rec := MatchRecord{
		ID:          nextID(now, matchIDs(list)),
		Date:        now.Format(DateLayout),
		Competitor0: st.Competitors[match.Side0],
		Competitor1: st.Competitors[match.Side1],
		History:     st.History,
	}

	list = append([]MatchRecord{rec}, list...)
	if err := saveJSON(ctx, a, KeyMatches, list); err != nil {
		return MatchRecord{}, err
	}
	a.logger.Debug("archived match", "id", rec.ID, "sets", len(rec.History))
	return rec, nil
}

// Matches returns the archived single matches, newest first.
func (a *Archive) Matches(ctx context.Context) ([]MatchRecord, error) {
	return loadList[MatchRecord](ctx, a, KeyMatches)
}

// DeleteMatch removes the match with id. It reports whether a record was
// removed.
func (a *Archive) DeleteMatch(ctx context.Context, id int64) (bool, error) {
	list, err := a.Matches(ctx)
	if err != nil {
		return false, err
	}
	kept := list[:0]
	for _, r := range list {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, saveJSON(ctx, a, KeyMatches, kept)
}

func matchIDs(list []MatchRecord) []int64 {
	ids := make([]int64, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return ids
}
