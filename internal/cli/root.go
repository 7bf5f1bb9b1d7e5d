package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/config"
	"github.com/roach88/ttscore/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Driver   string // overrides DB_DRIVER
	Database string // overrides SQLITE_FILE or POSTGRES_DSN, depending on the driver

	// Store, when set, is used instead of opening the configured backend.
	// It is not closed by commands.
	Store store.Store

	// ArchiveOptions are passed to every archive the commands open.
	ArchiveOptions []archive.Option

	config *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ttscore CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ttscore",
		Short: "ttscore - table tennis scoring",
		Long: `Score single table tennis matches and club team matches.

Finished matches and team-match sheets are archived in a local SQLite file
by default; DB_DRIVER selects memory, sqlite or postgres instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "store driver (memory|sqlite|postgres), overrides DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "SQLite file or PostgreSQL DSN, overrides the environment")

	// Add subcommands
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewTeamCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setup loads the environment configuration, applies flag overrides and
// builds the logger. It runs once per invocation.
func (o *RootOptions) setup(logOut io.Writer) error {
	if o.config != nil {
		return nil
	}
	cfg, err := config.New()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if o.Driver != "" {
		cfg.Store.Driver = o.Driver
	}
	if o.Database != "" {
		switch cfg.Store.Driver {
		case store.DriverPostgres:
			cfg.Store.PostgresDSN = o.Database
		default:
			cfg.Store.SQLiteFile = o.Database
		}
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.config = cfg
	o.logger = cfg.Log.NewLogger(logOut, o.Verbose)
	slog.SetDefault(o.logger)
	return nil
}

// Logger returns the configured logger, or the default one before setup.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// openArchive opens the configured store and wraps it in an archive. The
// returned function closes the store.
func (o *RootOptions) openArchive(ctx context.Context, cmd *cobra.Command) (*archive.Archive, func(), error) {
	if o.Store != nil {
		return archive.New(o.Store, o.archiveOptions()...), func() {}, nil
	}
	if err := o.setup(cmd.ErrOrStderr()); err != nil {
		return nil, nil, err
	}

	driver, dsn := o.config.Store.Driver, o.config.Store.DSN()
	o.Logger().Debug("opening store", "driver", driver)
	st, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			o.Logger().Error("error closing store", "error", err)
		}
	}
	return archive.New(st, o.archiveOptions()...), closeFn, nil
}

func (o *RootOptions) archiveOptions() []archive.Option {
	return append([]archive.Option{archive.WithLogger(o.Logger())}, o.ArchiveOptions...)
}

// commandContext returns cmd's context, or a background context when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
