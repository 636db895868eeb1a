// Package cli provides the command-line interface for dolly.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dollycam/dolly/internal/application/port"
	"github.com/dollycam/dolly/internal/cli/styles"
	"github.com/dollycam/dolly/internal/config"
	"github.com/dollycam/dolly/internal/infrastructure/env"
	"github.com/dollycam/dolly/internal/infrastructure/persistence/sqlite"
	"github.com/dollycam/dolly/internal/logging"
)

// CLI holds the shared dependencies for all commands.
type CLI struct {
	Config   *config.Config
	Theme    *styles.Theme
	Store    port.PlaybackStore
	Surveyor port.HardwareSurveyor

	db  *sql.DB
	ctx context.Context
}

// NewCLI wires configuration, logging, the playback database, and the
// hardware surveyor.
func NewCLI() (*CLI, error) {
	cfg := config.Get()

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &CLI{
		Config:   cfg,
		Theme:    styles.NewTheme(),
		Store:    sqlite.NewPlaybackStore(db),
		Surveyor: env.NewSurveyor(),
		db:       db,
		ctx:      ctx,
	}, nil
}

// Ctx returns the base context carrying the CLI logger.
func (c *CLI) Ctx() context.Context {
	return c.ctx
}

// Close closes the database connection.
func (c *CLI) Close() error {
	return sqlite.Close(c.db)
}

// defaultSequence resolves the sequence named by the argument, falling
// back to the configured default.
func (c *CLI) defaultSequence(args []string) (*config.SequenceConfig, error) {
	name := c.Config.Cinematic.DefaultSequence
	if len(args) > 0 {
		name = args[0]
	}
	seq := c.Config.Cinematic.Sequence(name)
	if seq == nil {
		return nil, fmt.Errorf("sequence %q is not defined in the configuration", name)
	}
	return seq, nil
}

// NewRootCmd creates the root command for dolly.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dolly",
		Short: "Render-quality classification and cinematic camera playback",
		Long: `Dolly surveys the host for rendering capability, classifies it into a
quality tier with a matching render budget, and plays authored camera
sequences through a keyframe sequencer.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dolly %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(
		versionCmd,
		newProbeCmd(),
		newDoctorCmd(),
		newSequenceCmd(),
		newPlayCmd(),
		newReplayCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// withCLI wraps a command body with CLI construction and teardown.
func withCLI(run func(cli *CLI, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cli, err := NewCLI()
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer func() {
			if closeErr := cli.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", closeErr)
			}
		}()
		return run(cli, cmd, args)
	}
}
