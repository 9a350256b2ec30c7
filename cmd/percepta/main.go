package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/config"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/logging"
	"github.com/percepta/journal/internal/notify"
	"github.com/percepta/journal/internal/rpc"
)

// #region globals

var (
	configPath string
	verbose    bool
	jsonOut    bool
	remoteAddr string
	timeout    time.Duration

	// populated by PersistentPreRunE
	cfg      *config.Config
	log      *zap.Logger
	store    blob.Store
	svc      *app.Service
	center   *notify.LocalCenter
	notifier *notify.Manager
	api      journalAPI

	errLocalOnly = errors.New("command needs a local store; drop --remote")

	rootCmd = &cobra.Command{
		Use:   "percepta",
		Short: "A daily journal of how the economy feels",
		Long: `Percepta records one mood, one investment action and one macro thought
per day, and turns the recent history into a single gentle observation.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}
)

// #endregion globals

// #region main

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&remoteAddr, "remote", "", "talk to a running 'percepta serve' at this address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "deadline for remote calls")

	rootCmd.AddCommand(moodCmd, investCmd, thinkCmd)
	rootCmd.AddCommand(insightCmd, todayCmd, timelineCmd, briefCmd, eventsCmd)
	rootCmd.AddCommand(notifyCmd, serveCmd)
}

// #endregion main

// #region setup

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err = logging.NewLogger(level, cfg.Logging.Development)
	if err != nil {
		return err
	}

	if remoteAddr != "" {
		client, err := rpc.NewClient(remoteAddr)
		if err != nil {
			return err
		}
		api = &remoteAPI{client: client}
		log.Debug("using remote journal", zap.String("addr", remoteAddr))
		return nil
	}

	store, err = openStore(cfg, log)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	retention, err := cfg.Retention()
	if err != nil {
		return err
	}

	cal := datekey.NewCalendar(loc, datekey.SystemClock{})
	center = notify.NewLocalCenter(notify.AuthorizationStatus(cfg.Notifications.Status), cfg.Notifications.Grant, datekey.SystemClock{})
	notifier = notify.NewManager(center, store, loc, log.Named("notify"))
	svc = app.New(app.Options{
		Store:     store,
		Calendar:  cal,
		Retention: retention,
		Insight:   cfg.InsightConfig(),
		Notifier:  notifier,
		Logger:    log,
	})
	api = &localAPI{svc: svc, log: log}
	log.Debug("journal opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.String("timezone", loc.String()))
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if c, ok := api.(*remoteAPI); ok {
		c.client.Close()
	}
	if store != nil {
		if err := store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}
	if log != nil {
		_ = log.Sync()
	}
}

// openStore opens the configured blob backend.
func openStore(cfg *config.Config, log *zap.Logger) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := blob.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendBadger, config.BackendMemory:
		bc := blob.BadgerConfig{Path: cfg.Storage.Path, Logger: log.Named("badger")}
		if cfg.Storage.Backend == config.BackendMemory {
			log.Warn("memory backend: nothing will be kept after exit")
			bc = blob.InMemoryBadgerConfig()
		}
		s, err := blob.NewBadgerStore(bc)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func requireLocal() error {
	if svc == nil {
		return errLocalOnly
	}
	return nil
}

func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// #endregion setup
