package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/match"
	"github.com/roach88/ttscore/internal/reject"
)

// MatchOptions holds flags for the match play command.
type MatchOptions struct {
	*RootOptions
	BestOf int
	Names  [2]string
	Clubs  [2]string
}

// NewMatchCommand creates the match command group.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a single match",
	}
	cmd.AddCommand(newMatchPlayCommand(rootOpts))
	return cmd
}

func newMatchPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Score a match interactively",
		Long: `Score a single match from line commands read on stdin.

Commands:
  +0 +1          award a point to side 0 or 1
  -0 -1          take a point back
  close          close the current set
  server         swap the first server of the current set
  reset-set      zero the current set
  reset          restart the match, keeping names and length
  best-of N      change the match length (asks when the match is running)
  name S NAME    rename side S
  club S CLUB    set the club of side S
  show           print the score
  save           archive the finished match
  quit           stop reading

Examples:
  ttscore match play --best-of 5 --name0 Novák --name1 Tóth
  printf '+0\n+0\nshow\n' | ttscore match play --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatchPlay(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.BestOf, "best-of", match.DefaultBestOf, "match length in sets")
	cmd.Flags().StringVar(&opts.Names[0], "name0", "", "name of side 0")
	cmd.Flags().StringVar(&opts.Clubs[0], "club0", "", "club of side 0")
	cmd.Flags().StringVar(&opts.Names[1], "name1", "", "name of side 1")
	cmd.Flags().StringVar(&opts.Clubs[1], "club1", "", "club of side 1")

	return cmd
}

func runMatchPlay(opts *MatchOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)

	e, err := match.NewBestOf(opts.BestOf)
	if err != nil {
		return f.Fail(ErrCodeUsage, err)
	}
	for i := range opts.Names {
		if opts.Names[i] == "" && opts.Clubs[i] == "" {
			continue
		}
		side := match.Side(i)
		name := opts.Names[i]
		if name == "" {
			name = e.Snapshot().Competitors[side].Name
		}
		if err := e.SetCompetitor(side, name, opts.Clubs[i]); err != nil {
			return f.Fail(ErrCodeUsage, err)
		}
	}

	arch, closeStore, err := opts.openArchive(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	r := &matchSession{
		engine:  e,
		archive: arch,
		f:       f,
		in:      bufio.NewScanner(cmd.InOrStdin()),
	}
	return r.run(ctx)
}

// matchSession is one interactive scoring session.
type matchSession struct {
	engine  *match.Engine
	archive *archive.Archive
	f       *OutputFormatter
	in      *bufio.Scanner
}

// usageError is a malformed session command; the session reports it and
// keeps reading.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// MatchStatus is the JSON payload written after each session command.
type MatchStatus struct {
	Command     string      `json:"command"`
	Result      string      `json:"result,omitempty"`
	Match       match.State `json:"match"`
	Server      match.Side  `json:"server"`
	SetsToWin   int         `json:"setsToWin"`
	CanCloseSet bool        `json:"canCloseSet"`
}

func (s *matchSession) run(ctx context.Context) error {
	for s.in.Scan() {
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		result, err := s.execute(ctx, fields)
		switch {
		case err == nil:
			if err := s.report(fields[0], result); err != nil {
				return err
			}
		case errors.As(err, new(*usageError)):
			_ = s.f.Error(ErrCodeUsage, err.Error(), nil)
		case reject.Is(err):
			_ = s.f.Fail("", err)
		default:
			return s.f.Fail(ErrCodeStore, err)
		}
	}
	if err := s.in.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read commands", err)
	}
	return nil
}

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func parseSide(s string) (match.Side, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !match.Side(n).Valid() {
		return 0, usagef("side must be 0 or 1, got %q", s)
	}
	return match.Side(n), nil
}

func (s *matchSession) execute(ctx context.Context, fields []string) (string, error) {
	e := s.engine
	switch cmd := fields[0]; cmd {
	case "+0", "+1", "-0", "-1":
		side, _ := parseSide(cmd[1:])
		delta := 1
		if cmd[0] == '-' {
			delta = -1
		}
		return "", e.AwardPoint(side, delta)

	case "close":
		return "", e.CloseSet()

	case "server":
		return "", e.ToggleFirstServer()

	case "reset-set":
		return "", e.ResetCurrentSet()

	case "reset":
		e.ResetMatch()
		return "", nil

	case "best-of":
		if len(fields) != 2 {
			return "", usagef("best-of takes one number")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return "", usagef("best-of: %q is not a number", fields[1])
		}
		if err := e.SetMatchLength(n, s.confirm); err != nil {
			return "", err
		}
		return fmt.Sprintf("first to %d sets", e.SetsToWin()), nil

	case "name", "club":
		if len(fields) < 3 {
			return "", usagef("%s takes a side and a value", cmd)
		}
		side, err := parseSide(fields[1])
		if err != nil {
			return "", err
		}
		c := e.Snapshot().Competitors[side]
		value := strings.Join(fields[2:], " ")
		if cmd == "name" {
			return "", e.SetCompetitor(side, value, c.Club)
		}
		return "", e.SetCompetitor(side, c.Name, value)

	case "show":
		return "", nil

	case "save":
		rec, err := s.archive.SaveMatch(ctx, e)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("saved match %d", rec.ID), nil
	}
	return "", usagef("unknown command %q", fields[0])
}

// confirm asks on the session input whether a running match may change
// length. Anything but y or yes declines.
func (s *matchSession) confirm() bool {
	fmt.Fprint(s.promptWriter(), "The match is running; changing its length can change the result. Continue? [y/N] ")
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func (s *matchSession) promptWriter() io.Writer {
	if s.f.Format == "json" {
		return s.f.GetErrWriter()
	}
	return s.f.Writer
}

func (s *matchSession) report(command, result string) error {
	e := s.engine
	if s.f.Format == "json" {
		return s.f.Success(MatchStatus{
			Command:     command,
			Result:      result,
			Match:       e.Snapshot(),
			Server:      e.CurrentServer(),
			SetsToWin:   e.SetsToWin(),
			CanCloseSet: e.CanCloseSet(),
		})
	}
	if result != "" {
		fmt.Fprintln(s.f.Writer, result)
	}
	fmt.Fprintln(s.f.Writer, scoreLine(e))
	return nil
}

// scoreLine renders the score as one line of text.
func scoreLine(e *match.Engine) string {
	st := e.Snapshot()
	c0, c1 := st.Competitors[0], st.Competitors[1]
	if w, ok := e.Winner(); ok {
		return fmt.Sprintf("%s wins %d:%d %s", st.Competitors[w].Name, c0.Sets, c1.Sets, setList(st.History))
	}
	line := fmt.Sprintf("Set %d | %s %d : %d %s | sets %d:%d | serving: %s",
		st.SetNumber, c0.Name, c0.Score, c1.Score, c1.Name, c0.Sets, c1.Sets,
		st.Competitors[e.CurrentServer()].Name)
	if e.CanCloseSet() {
		line += " | set can be closed"
	}
	return line
}

func setList(history []match.SetRecord) string {
	parts := make([]string, len(history))
	for i, r := range history {
		parts[i] = fmt.Sprintf("%d:%d", r.Side0Points, r.Side1Points)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
