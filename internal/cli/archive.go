package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/ttscore/internal/archive"
)

// ArchiveOptions holds flags shared by the archive commands.
type ArchiveOptions struct {
	*RootOptions
	Team bool // operate on team matches instead of single matches
}

// NewArchiveCommand creates the archive command group.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List and delete archived matches",
	}
	cmd.PersistentFlags().BoolVar(&opts.Team, "team", false, "team matches instead of single matches")

	cmd.AddCommand(newArchiveListCommand(opts))
	cmd.AddCommand(newArchiveDeleteCommand(opts))

	return cmd
}

func newArchiveListCommand(opts *ArchiveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived matches, newest first",
		Example: `  ttscore archive list
  ttscore archive list --team --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(opts, cmd, func(ctx context.Context, f *OutputFormatter, a *archive.Archive) error {
				if opts.Team {
					return listTeamMatches(ctx, f, a)
				}
				return listMatches(ctx, f, a)
			})
		},
	}
}

func newArchiveDeleteCommand(opts *ArchiveOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an archived match",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("id must be an integer, got %q", args[0]))
			}
			return runArchive(opts, cmd, func(ctx context.Context, f *OutputFormatter, a *archive.Archive) error {
				var removed bool
				if opts.Team {
					removed, err = a.DeleteTeamMatch(ctx, id)
				} else {
					removed, err = a.DeleteMatch(ctx, id)
				}
				if err != nil {
					return f.Fail(ErrCodeStore, err)
				}
				if !removed {
					return f.Fail(ErrCodeNotFound, fmt.Errorf("no archived match with id %d", id))
				}
				opts.Logger().Debug("deleted archived match", "id", id, "team", opts.Team)
				if f.Format == "json" {
					return f.Success(map[string]int64{"deleted": id})
				}
				fmt.Fprintf(f.Writer, "deleted %d\n", id)
				return nil
			})
		},
	}
}

func runArchive(opts *ArchiveOptions, cmd *cobra.Command, fn func(context.Context, *OutputFormatter, *archive.Archive) error) error {
	ctx := commandContext(cmd)
	arch, closeStore, err := opts.openArchive(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(ctx, opts.formatter(cmd), arch)
}

func listMatches(ctx context.Context, f *OutputFormatter, a *archive.Archive) error {
	records, err := a.Matches(ctx)
	if err != nil {
		return f.Fail(ErrCodeStore, err)
	}
	if f.Format == "json" {
		return f.Success(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(f.Writer, "No archived matches.")
		return nil
	}
	writeMatchTable(f.Writer, records)
	return nil
}

func writeMatchTable(w io.Writer, records []archive.MatchRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tPlayer 1\tPlayer 2\tSets\tScores")
	for _, r := range records {
		sets := make([]string, len(r.History))
		for i, s := range r.History {
			sets[i] = fmt.Sprintf("%d:%d", s.Side0Points, s.Side1Points)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d:%d\t%s\n",
			r.ID, r.Date, competitorLabel(r.Competitor0.Name, r.Competitor0.Club),
			competitorLabel(r.Competitor1.Name, r.Competitor1.Club),
			r.Competitor0.Sets, r.Competitor1.Sets, strings.Join(sets, " "))
	}
	_ = tw.Flush()
}

func competitorLabel(name, club string) string {
	if club == "" {
		return name
	}
	return name + " (" + club + ")"
}

func listTeamMatches(ctx context.Context, f *OutputFormatter, a *archive.Archive) error {
	records, err := a.TeamMatches(ctx)
	if err != nil {
		return f.Fail(ErrCodeStore, err)
	}
	if f.Format == "json" {
		return f.Success(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(f.Writer, "No archived team matches.")
		return nil
	}
	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tVenue\tHome\tScore\tGuest\tSets\tBalls")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Venue, r.HomeTeam, r.FinalScore, r.GuestTeam,
			r.Statistics.Sets, r.Statistics.Balls)
	}
	return tw.Flush()
}
