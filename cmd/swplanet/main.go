// Command swplanet serves the planet catalogue HTTP API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/artpar/swplanet/internal/shell/seed"
	"github.com/artpar/swplanet/internal/shell/store"
	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// Commands
// =============================================================================

// app carries state shared by every subcommand.
type app struct {
	configPath string
	cfg        *Config
	logger     *slog.Logger
	stdout     io.Writer
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:           "swplanet",
		Short:         "Planet catalogue HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runServe,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			Args:  cobra.NoArgs,
			RunE:  a.runMigrate,
		},
		&cobra.Command{
			Use:   "seed <file>",
			Short: "Load planets from a YAML seed file",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runSeed,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintf(a.stdout, "swplanet %s (built %s)\n", Version, BuildTime)
				return nil
			},
		},
	)

	return root
}

// load resolves configuration and the logger. Subcommands that need neither
// (version) never call it.
func (a *app) load() error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return &ServerError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
	}
	a.cfg = cfg
	a.logger = SetupLogger(cfg)
	return nil
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	if err := a.load(); err != nil {
		return err
	}
	a.logger.Info("starting swplanet",
		"version", Version,
		"config", a.configPath,
	)

	server, err := NewServer(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	return server.Start(cmd.Context())
}

func (a *app) runMigrate(cmd *cobra.Command, args []string) error {
	if err := a.load(); err != nil {
		return err
	}

	s, err := store.NewSQLiteStore(a.cfg.Database.DSN)
	if err != nil {
		return &ServerError{Op: "Migrate", Err: err, ExitCode: ExitDatabaseError}
	}
	defer s.Close()

	version, dirty, err := s.SchemaVersion()
	if err != nil {
		return &ServerError{Op: "Migrate", Err: err, ExitCode: ExitDatabaseError}
	}
	a.logger.Info("migrations applied", "version", version, "dirty", dirty)
	fmt.Fprintf(a.stdout, "schema version %d\n", version)
	return nil
}

func (a *app) runSeed(cmd *cobra.Command, args []string) error {
	if err := a.load(); err != nil {
		return err
	}

	s, err := store.NewSQLiteStore(a.cfg.Database.DSN)
	if err != nil {
		return &ServerError{Op: "Seed", Err: err, ExitCode: ExitDatabaseError}
	}
	defer s.Close()

	res, err := seed.ApplyFile(cmd.Context(), s, args[0], a.logger)
	if err != nil {
		return &ServerError{Op: "Seed", Err: err, ExitCode: ExitSeedError}
	}
	fmt.Fprintf(a.stdout, "created %d, skipped %d\n", res.Created, res.Skipped)
	return nil
}
