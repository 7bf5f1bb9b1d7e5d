package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/lineup"
	"github.com/roach88/ttscore/internal/team"
)

// TeamRowView is one sheet row as shown by the team commands.
type TeamRowView struct {
	Number       int       `json:"number"`
	Kind         team.Kind `json:"kind"`
	Round        int       `json:"round,omitempty"`
	Home         string    `json:"home"`
	Guest        string    `json:"guest"`
	Sets         []string  `json:"sets"`
	SetsResult   string    `json:"setsResult,omitempty"`
	RunningScore string    `json:"runningScore"`
}

// TeamSheetView is the team match in progress.
type TeamSheetView struct {
	Session      string        `json:"session"`
	Variant      team.Variant  `json:"variant"`
	DoublesCount int           `json:"doublesCount"`
	Meta         team.Meta     `json:"meta"`
	Rows         []TeamRowView `json:"rows"`
	TeamScore    string        `json:"teamScore"`
}

// TeamResult is the JSON payload of a team command.
type TeamResult struct {
	Result string        `json:"result,omitempty"`
	Sheet  TeamSheetView `json:"sheet"`
}

func newTeamSheetView(s *team.Sheet) TeamSheetView {
	cfg := s.Config()
	v := TeamSheetView{
		Session:      s.Session(),
		Variant:      cfg.Variant,
		DoublesCount: cfg.Doubles,
		Meta:         s.Meta(),
		TeamScore:    s.TeamScore().String(),
	}
	for _, row := range s.Rows() {
		rv := TeamRowView{
			Number:       row.Number,
			Kind:         row.Kind,
			Round:        row.Round,
			Home:         s.Label(row.Number, team.Home),
			Guest:        s.Label(row.Number, team.Guest),
			Sets:         append([]string(nil), row.Sets[:]...),
			RunningScore: s.RunningScoreText(row.Number),
		}
		if res, ok := team.RowSetsResult(row); ok {
			rv.SetsResult = res.String()
		}
		v.Rows = append(v.Rows, rv)
	}
	return v
}

// writeSheet renders the sheet as an aligned table.
func writeSheet(w io.Writer, v TeamSheetView) {
	home, guest := v.Meta.HomeTeam, v.Meta.GuestTeam
	if home == "" {
		home = archive.DefaultHomeTeam
	}
	if guest == "" {
		guest = archive.DefaultGuestTeam
	}
	header := home + " vs " + guest
	for _, extra := range []string{v.Meta.Venue, v.Meta.Date} {
		if extra != "" {
			header += " | " + extra
		}
	}
	fmt.Fprintln(w, header)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHome\tGuest\t1\t2\t3\t4\t5\tSets\tScore")
	for _, r := range v.Rows {
		cells := []string{strconv.Itoa(r.Number), r.Home, r.Guest}
		for _, set := range r.Sets {
			if set == "" {
				set = "."
			}
			cells = append(cells, set)
		}
		result := r.SetsResult
		if result == "" {
			result = "-"
		}
		cells = append(cells, result, r.RunningScore)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Team score: %s\n", v.TeamScore)
}

// NewTeamCommand creates the team command group. Every subcommand works on
// the draft kept in the store, so a team match can be entered across many
// invocations.
func NewTeamCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Enter a team match sheet",
		Long: `Enter a club team match row by row.

The sheet in progress is stored as a draft after every change and restored
by the next command. "team new" starts over; "team reset" discards the draft.`,
	}

	cmd.AddCommand(newTeamNewCommand(rootOpts))
	cmd.AddCommand(newTeamShowCommand(rootOpts))
	cmd.AddCommand(newTeamScoreCommand(rootOpts))
	cmd.AddCommand(newTeamDoublesCommand(rootOpts))
	cmd.AddCommand(newTeamSubCommand(rootOpts))
	cmd.AddCommand(newTeamPlayerCommand(rootOpts))
	cmd.AddCommand(newTeamMetaCommand(rootOpts))
	cmd.AddCommand(newTeamConfigCommand(rootOpts))
	cmd.AddCommand(newTeamStatsCommand(rootOpts))
	cmd.AddCommand(newTeamSaveCommand(rootOpts))
	cmd.AddCommand(newTeamResetCommand(rootOpts))

	return cmd
}

// sheetFunc changes or reads the sheet and returns a one-line result.
type sheetFunc func(ctx context.Context, a *archive.Archive, s *team.Sheet) (string, error)

// runOnDraft loads the draft (or a fresh default sheet), applies fn and
// stores the draft again when persist is set.
func runOnDraft(opts *RootOptions, cmd *cobra.Command, persist bool, fn sheetFunc) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)

	arch, closeStore, err := opts.openArchive(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sheet, ok, err := arch.LoadDraft(ctx)
	if err != nil {
		return f.Fail(ErrCodeStore, err)
	}
	if !ok {
		f.VerboseLog("no draft found, starting a new sheet")
		if sheet, err = team.NewSheet(team.DefaultConfig()); err != nil {
			return f.Fail(ErrCodeGeneric, err)
		}
	}

	result, err := fn(ctx, arch, sheet)
	if err != nil {
		return f.Fail(ErrCodeGeneric, err)
	}
	if persist {
		if err := arch.SaveDraft(ctx, sheet); err != nil {
			return f.Fail(ErrCodeStore, err)
		}
	}
	return outputSheet(f, result, sheet)
}

func outputSheet(f *OutputFormatter, result string, sheet *team.Sheet) error {
	view := newTeamSheetView(sheet)
	if f.Format == "json" {
		return f.Success(TeamResult{Result: result, Sheet: view})
	}
	if result != "" {
		fmt.Fprintln(f.Writer, result)
		return nil
	}
	writeSheet(f.Writer, view)
	return nil
}

func parseMatchNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("match number must be an integer, got %q", s))
	}
	return n, nil
}

// TeamNewOptions holds flags for the team new command.
type TeamNewOptions struct {
	*RootOptions
	Lineup  string
	Variant string
	Doubles int
}

func newTeamNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TeamNewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new team match sheet",
		Long: `Start a new team match sheet, replacing the draft.

A CUE lineup file fills in the header, the player names, the substitutes
and the doubles pairs; --variant and --doubles override its layout.

Examples:
  ttscore team new
  ttscore team new --variant 3rounds --doubles 1
  ttscore team new --lineup ./lineups/round7.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamNew(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lineup, "lineup", "", "CUE lineup file or directory")
	cmd.Flags().StringVar(&opts.Variant, "variant", "", "round count (3rounds|4rounds)")
	cmd.Flags().IntVar(&opts.Doubles, "doubles", -1, "number of doubles rows")

	return cmd
}

func runTeamNew(opts *TeamNewOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)

	cfg := team.DefaultConfig()
	var l *lineup.Lineup
	if opts.Lineup != "" {
		var err error
		if l, err = lineup.Load(opts.Lineup); err != nil {
			return f.Fail(ErrCodeLineup, err)
		}
		f.VerboseLog("loaded lineup %s", opts.Lineup)
		cfg = team.Config{Variant: l.Variant, Doubles: l.Doubles}
	}
	if opts.Variant != "" {
		cfg.Variant = team.Variant(opts.Variant)
	}
	if opts.Doubles >= 0 {
		cfg.Doubles = opts.Doubles
	}

	sheet, err := team.NewSheet(cfg)
	if err != nil {
		return f.Fail(ErrCodeUsage, err)
	}
	if l != nil {
		if err := l.Apply(sheet); err != nil {
			return f.Fail(ErrCodeLineup, err)
		}
	}

	arch, closeStore, err := opts.openArchive(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sheet.SetSession(arch.NewSession())
	if err := arch.SaveDraft(ctx, sheet); err != nil {
		return f.Fail(ErrCodeStore, err)
	}
	opts.Logger().Debug("started team match", "session", sheet.Session(), "variant", cfg.Variant, "doubles", cfg.Doubles)
	return outputSheet(f, "", sheet)
}

func newTeamShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the sheet in progress",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnDraft(rootOpts, cmd, false, func(context.Context, *archive.Archive, *team.Sheet) (string, error) {
				return "", nil
			})
		},
	}
}

func newTeamScoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score <match> <set> <entry>",
		Short: "Enter the score of one set",
		Long: `Enter the score of one set of a row.

Full scores use ":" "-" or a space ("11:9", "11-9"). A single number is
shorthand for the loser's points, negative when the guest wins:
"7" is 11:7, "-9" is 9:11, "12" is 14:12. Use -- before negative shorthand.

Examples:
  ttscore team score 3 1 11:5
  ttscore team score 3 2 -- -7`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMatchNumber(args[0])
			if err != nil {
				return err
			}
			set, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("set number must be an integer, got %q", args[1]))
			}
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				stored, err := s.EnterSet(m, set, args[2])
				if err != nil {
					return "", err
				}
				msg := fmt.Sprintf("match %d set %d: %s", m, set, stored)
				if res, ok := s.SetsResult(m); ok {
					msg += fmt.Sprintf(" (sets %s, team %s)", res, s.RunningScoreText(m))
				}
				return msg, nil
			})
		},
	}
}

func newTeamDoublesCommand(rootOpts *RootOptions) *cobra.Command {
	var home, guest string
	cmd := &cobra.Command{
		Use:           "doubles <match>",
		Short:         "Label the pairs of a doubles row",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMatchNumber(args[0])
			if err != nil {
				return err
			}
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				row, _ := s.Row(m)
				if !cmd.Flags().Changed("home") {
					home = row.HomeLabel
				}
				if !cmd.Flags().Changed("guest") {
					guest = row.GuestLabel
				}
				if err := s.SetDoublesLabels(m, home, guest); err != nil {
					return "", err
				}
				return fmt.Sprintf("match %d: %s vs %s", m, s.Label(m, team.Home), s.Label(m, team.Guest)), nil
			})
		},
	}
	cmd.Flags().StringVar(&home, "home", "", "home pair label")
	cmd.Flags().StringVar(&guest, "guest", "", "guest pair label")
	return cmd
}

func newTeamSubCommand(rootOpts *RootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "sub <match> <home|guest>",
		Short: "Toggle a substitution",
		Long: `Toggle the substitution of one side of a singles row from round 2 on.

The new state carries forward to every later row of the same player.
With --name the substitute's name is entered as well (matched against the
registered substitutes) and the substitution is switched on if it is off.

Examples:
  ttscore team sub 7 home
  ttscore team sub 7 home --name Bednár`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMatchNumber(args[0])
			if err != nil {
				return err
			}
			side, err := team.ParseSide(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				if name == "" || !s.IsSubstituted(m, side) {
					if _, err := s.ToggleSubstitution(m, side); err != nil {
						return "", err
					}
				}
				if name != "" {
					resolved := s.Roster().ResolveSubstitute(side, name)
					if err := s.SetSubstituteName(m, side, resolved); err != nil {
						return "", err
					}
				}
				state := "off"
				if s.IsSubstituted(m, side) {
					state = "on"
				}
				return fmt.Sprintf("match %d %s: substitution %s, %s", m, side, state, s.Label(m, side)), nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "substitute name")
	return cmd
}

func newTeamPlayerCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "player <home|guest> <code> <name>",
		Short: "Register a player name",
		Long: `Register the name of a player code (A-D home, X Y Z U guest) or of a
substitute slot (subA..subD, subX..subU).

Examples:
  ttscore team player home A Novák
  ttscore team player guest subX Baláž`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := team.ParseSide(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			name := strings.Join(args[2:], " ")
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				if err := s.SetPlayer(side, args[1], name); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s %s: %s", side, args[1], s.Roster().Name(side, args[1])), nil
			})
		},
	}
}

func newTeamMetaCommand(rootOpts *RootOptions) *cobra.Command {
	var m team.Meta
	cmd := &cobra.Command{
		Use:           "meta",
		Short:         "Set the venue, date and team names",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				cur := s.Meta()
				flags := cmd.Flags()
				if flags.Changed("venue") {
					cur.Venue = m.Venue
				}
				if flags.Changed("date") {
					cur.Date = m.Date
				}
				if flags.Changed("home") {
					cur.HomeTeam = m.HomeTeam
				}
				if flags.Changed("guest") {
					cur.GuestTeam = m.GuestTeam
				}
				s.SetMeta(cur)
				return "", nil
			})
		},
	}
	cmd.Flags().StringVar(&m.Venue, "venue", "", "venue")
	cmd.Flags().StringVar(&m.Date, "date", "", "date as written on the sheet")
	cmd.Flags().StringVar(&m.HomeTeam, "home", "", "home team name")
	cmd.Flags().StringVar(&m.GuestTeam, "guest", "", "guest team name")
	return cmd
}

func newTeamConfigCommand(rootOpts *RootOptions) *cobra.Command {
	var variant string
	var doubles int
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Change the sheet layout",
		Long: `Change the round count or the number of doubles rows.

The rows are regenerated: every set entry, doubles label and substitution
is discarded. Player names and the header are kept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnDraft(rootOpts, cmd, true, func(_ context.Context, _ *archive.Archive, s *team.Sheet) (string, error) {
				cfg := s.Config()
				if cmd.Flags().Changed("variant") {
					cfg.Variant = team.Variant(variant)
				}
				if cmd.Flags().Changed("doubles") {
					cfg.Doubles = doubles
				}
				if err := s.Configure(cfg); err != nil {
					return "", err
				}
				return "", nil
			})
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "round count (3rounds|4rounds)")
	cmd.Flags().IntVar(&doubles, "doubles", 0, "number of doubles rows")
	return cmd
}

// TeamStatsView is the JSON payload of team stats.
type TeamStatsView struct {
	Statistics team.Statistics `json:"statistics"`
	Roster     team.Roster     `json:"roster"`
}

func newTeamStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Print the statistics of the sheet in progress",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			f := rootOpts.formatter(cmd)
			arch, closeStore, err := rootOpts.openArchive(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			sheet, ok, err := arch.LoadDraft(ctx)
			if err != nil {
				return f.Fail(ErrCodeStore, err)
			}
			if !ok {
				return f.Fail(ErrCodeNotFound, fmt.Errorf("no team match in progress"))
			}
			stats := sheet.Statistics()
			if f.Format == "json" {
				return f.Success(TeamStatsView{Statistics: stats, Roster: sheet.Roster()})
			}
			writeStats(f.Writer, stats, sheet.Roster())
			return nil
		},
	}
}

func writeStats(w io.Writer, st team.Statistics, roster team.Roster) {
	fmt.Fprintf(w, "Matches %s  Sets %s  Points %s\n", st.Matches.Ratio(), st.Sets.Ratio(), st.Points.Ratio())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Side\tCode\tName\tW/L")
	for _, side := range []team.Side{team.Home, team.Guest} {
		codes := make([]string, 0, len(st.Players[side]))
		for c := range st.Players[side] {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", side, c, roster.Name(side, c), st.Players[side][c])
		}
	}
	for _, sub := range st.Substitutes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sub.Side, strings.Join(sub.Replaced, ","), sub.Name, sub.Record)
	}
	_ = tw.Flush()
}

func newTeamSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Archive the sheet in progress",
		Long: `Archive the sheet in progress with its statistics.

A sheet with a 0:0 team score is only archived with --yes. Each save adds a
new archive record; the draft stays in place.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnDraft(rootOpts, cmd, false, func(ctx context.Context, a *archive.Archive, s *team.Sheet) (string, error) {
				rec, err := a.SaveTeamMatch(ctx, s, func() bool { return yes })
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("saved team match %d: %s %s %s", rec.ID, rec.HomeTeam, rec.FinalScore, rec.GuestTeam), nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "archive even when the team score is 0:0")
	return cmd
}

func newTeamResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "reset",
		Short:         "Discard the sheet in progress",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			f := rootOpts.formatter(cmd)
			arch, closeStore, err := rootOpts.openArchive(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := arch.ClearDraft(ctx); err != nil {
				return f.Fail(ErrCodeStore, err)
			}
			if f.Format == "json" {
				return f.Success(map[string]bool{"cleared": true})
			}
			fmt.Fprintln(f.Writer, "draft cleared")
			return nil
		},
	}
}
