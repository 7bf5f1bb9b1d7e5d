package archive

import (
	"context"
	"sort"

	"github.com/roach88/ttscore/internal/reject"
	"github.com/roach88/ttscore/internal/team"
)

// Team names used when the sheet header leaves them blank.
const (
	DefaultHomeTeam  = "Domáci"
	DefaultGuestTeam = "Hostia"
)

// TeamRecord is an archived team match. Rows and statistics are stored in
// their derived, display-ready form.
type TeamRecord struct {
	ID            int64              `json:"id"`
	Date          string             `json:"date"`
	Venue         string             `json:"venue"`
	HomeTeam      string             `json:"homeTeam"`
	GuestTeam     string             `json:"guestTeam"`
	FinalScore    string             `json:"finalScore"`
	Variant       team.Variant       `json:"variant"`
	DoublesCount  int                `json:"doublesCount"`
	Players       team.Roster        `json:"players"`
	Matches       []TeamRow          `json:"matches"`
	Substitutions map[int]team.Flags `json:"matchSubstitutions"`
	Statistics    TeamStatistics     `json:"statistics"`
	Session       string             `json:"session,omitempty"`
}

// TeamRow is one archived row of a team match.
type TeamRow struct {
	Number       int      `json:"number"`
	HomePlayer   string   `json:"homePlayer"`
	GuestPlayer  string   `json:"guestPlayer"`
	Sets         []string `json:"sets"`
	SetsResult   string   `json:"setsResult"`
	RunningScore string   `json:"runningScore"`
}

// TeamStatistics is the archived statistics block.
type TeamStatistics struct {
	Matches     string                               `json:"matches"`
	Sets        string                               `json:"sets"`
	Balls       string                               `json:"balls"`
	Details     StatDetails                          `json:"details"`
	Players     map[team.Side]map[string]team.Record `json:"players"`
	Substitutes []team.SubstituteRecord              `json:"substitutes"`
}

// StatDetails is the per-side breakdown of the statistics ratios.
type StatDetails struct {
	MatchesHome  int `json:"matchesHome"`
	MatchesGuest int `json:"matchesGuest"`
	SetsHome     int `json:"setsHome"`
	SetsGuest    int `json:"setsGuest"`
	BallsHome    int `json:"ballsHome"`
	BallsGuest   int `json:"ballsGuest"`
}

// NewTeamRecord builds the archive record of sheet. The id and date are
// left for the caller.
func NewTeamRecord(sheet *team.Sheet) TeamRecord {
	meta := sheet.Meta()
	cfg := sheet.Config()
	stats := sheet.Statistics()

	rec := TeamRecord{
		Date:          meta.Date,
		Venue:         meta.Venue,
		HomeTeam:      orDefault(meta.HomeTeam, DefaultHomeTeam),
		GuestTeam:     orDefault(meta.GuestTeam, DefaultGuestTeam),
		FinalScore:    sheet.TeamScore().String(),
		Variant:       cfg.Variant,
		DoublesCount:  cfg.Doubles,
		Players:       sheet.Roster(),
		Substitutions: sheet.Substitutions(),
		Session:       sheet.Session(),
		Statistics: TeamStatistics{
			Matches: stats.Matches.Ratio(),
			Sets:    stats.Sets.Ratio(),
			Balls:   stats.Points.Ratio(),
			Details: StatDetails{
				MatchesHome:  stats.Matches.Home,
				MatchesGuest: stats.Matches.Guest,
				SetsHome:     stats.Sets.Home,
				SetsGuest:    stats.Sets.Guest,
				BallsHome:    stats.Points.Home,
				BallsGuest:   stats.Points.Guest,
			},
			Players:     stats.Players,
			Substitutes: stats.Substitutes,
		},
	}

	for _, row := range sheet.Rows() {
		tr := TeamRow{
			Number:       row.Number,
			HomePlayer:   sheet.Label(row.Number, team.Home),
			GuestPlayer:  sheet.Label(row.Number, team.Guest),
			Sets:         append([]string(nil), row.Sets[:]...),
			RunningScore: sheet.RunningScoreText(row.Number),
		}
		if res, ok := team.RowSetsResult(row); ok {
			tr.SetsResult = res.String()
		}
		rec.Matches = append(rec.Matches, tr)
	}
	return rec
}

// SaveTeamMatch appends sheet to the team archive. A 0:0 team score needs
// confirm to return true. Every call appends a new record, even when the
// content is identical to an earlier one.
func (a *Archive) SaveTeamMatch(ctx context.Context, sheet *team.Sheet, confirm func() bool) (TeamRecord, error) {
	if sheet.TeamScore().Zero() && (confirm == nil || !confirm()) {
		return TeamRecord{}, reject.New(reject.CodeNotConfirmed, "save team match", "team score is 0:0")
	}

	list, err := loadList[TeamRecord](ctx, a, KeyTeamMatches)
	if err != nil {
		return TeamRecord{}, err
	}

	now := a.clock.Now()
	rec := NewTeamRecord(sheet)
	rec.ID = nextID(now, teamIDs(list))
	if rec.Date == "" {
		rec.Date = now.Format("2. 1. 2006")
	}

	list = append(list, rec)
	if err := saveJSON(ctx, a, KeyTeamMatches, list); err != nil {
		return TeamRecord{}, err
	}
	a.logger.Debug("archived team match", "id", rec.ID, "score", rec.FinalScore)
	return rec, nil
}

// TeamMatches returns the archived team matches, newest id first.
func (a *Archive) TeamMatches(ctx context.Context) ([]TeamRecord, error) {
	list, err := loadList[TeamRecord](ctx, a, KeyTeamMatches)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// DeleteTeamMatch removes the team match with id. It reports whether a
// record was removed.
func (a *Archive) DeleteTeamMatch(ctx context.Context, id int64) (bool, error) {
	list, err := loadList[TeamRecord](ctx, a, KeyTeamMatches)
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
	return true, saveJSON(ctx, a, KeyTeamMatches, kept)
}

func teamIDs(list []TeamRecord) []int64 {
	ids := make([]int64, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return ids
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
