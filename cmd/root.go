package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/config"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/logger"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

// Execute runs the ieltspro command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ieltspro",
		Short: "Spaced-repetition vocabulary trainer",
		Long: "ieltspro schedules vocabulary reviews with an SM-2 style algorithm and " +
			"assembles study sessions from the words that are due.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to YAML config file (overrides IELTSPRO_CONFIG env var)")
	root.PersistentFlags().String("db", "", "SQLite file or Postgres DSN (overrides IELTSPRO_DB env var)")
	root.PersistentFlags().String("owner", "", "Learner whose items to use (overrides IELTSPRO_OWNER env var)")

	root.AddCommand(
		newAddCmd(),
		newSessionCmd(),
		newReviewCmd(),
		newResetCmd(),
		newStatsCmd(),
		newRemindCmd(),
		newSyncCmd(),
		newVersionCmd(),
	)
	return root
}

// env is what every data command needs: resolved config, a logger and an
// open store.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	e.log.Sync()
}

// setup loads .env and config, applies persistent flag overrides, builds
// the logger and opens the store.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	st, err := openStore(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st}, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
		cfg.Owner = owner
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Database.DSN = db
	}
	return cfg, nil
}

// openStore opens the configured backend. An empty SQLite DSN resolves to
// IELTSPRO_DB or the default XDG path.
func openStore(cfg config.Config, log *logger.Logger) (*store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		st, err := store.OpenPostgres(cfg.Database.DSN, store.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	default:
		path, err := resolveDBPath(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path, store.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	}
}

// resolveDBPath returns dsn when set, then IELTSPRO_DB env var, then the
// default XDG path.
func resolveDBPath(dsn string) (string, error) {
	if dsn != "" {
		return dsn, store.EnsureDir(dsn)
	}
	return store.DefaultDBPath()
}
