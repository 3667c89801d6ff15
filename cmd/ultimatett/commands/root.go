package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/config"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/logging"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/tui"
)

// flags shared by every command; empty means "use the environment".
var (
	sourceFlag   string
	tableFlag    string
	logLevelFlag string
	envFileFlag  string
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ultimatett",
		Short: "Browse the first-semester timetable",
		Long: `ultimatett browses a college timetable by classroom, day, subject,
teacher or lab, and shows what is running right now.

Without a subcommand it opens the terminal browser.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sourceFlag, "source", "", "timetable CSV path or postgres:// DSN (env TIMETABLE_SOURCE)")
	flags.StringVar(&tableFlag, "table", "", "table to read when --source is a DSN (env TIMETABLE_TABLE)")
	flags.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.StringVar(&envFileFlag, "env-file", ".env", "dotenv file to read before the environment")

	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewLiveCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewDebugCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is the resolved configuration plus the logger built from it.
type env struct {
	cfg config.Config
	log *zap.Logger
}

func setup() (*env, error) {
	if _, err := config.LoadEnv(envFileFlag); err != nil {
		return nil, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if tableFlag != "" {
		cfg.Table = tableFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: logger}, nil
}

func (e *env) source() sessions.Source {
	return sessions.Open(e.cfg.Source, e.cfg.Table, e.log)
}

func (e *env) storeOptions() sessions.StoreOptions {
	return sessions.StoreOptions{IgnoredRooms: e.cfg.IgnoredRooms}
}

func (e *env) serviceOptions() (timetable.ServiceOptions, error) {
	loc, err := e.cfg.Location()
	if err != nil {
		return timetable.ServiceOptions{}, err
	}
	return timetable.ServiceOptions{Location: loc, Logger: e.log}, nil
}

// service loads the store synchronously. A failed load (already logged by
// sessions.Load) still yields a service over the empty store.
func (e *env) service(ctx context.Context) (*timetable.Service, error) {
	opts, err := e.serviceOptions()
	if err != nil {
		return nil, err
	}
	store, _ := sessions.Load(ctx, e.source(), e.storeOptions(), e.log)
	return timetable.NewService(store, opts), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	// the alternate screen owns the terminal; only errors reach stderr
	e.log = e.log.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	opts, err := e.serviceOptions()
	if err != nil {
		return err
	}

	src := e.source()
	load := func(ctx context.Context) <-chan sessions.LoadResult {
		return sessions.LoadAsync(ctx, src, e.storeOptions(), e.log)
	}

	if err := tui.Run(tui.Config{Source: src.Name(), Load: load, Service: opts}); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
