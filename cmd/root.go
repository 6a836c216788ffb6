// Package cmd provides the CLI commands for the Bellhop application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkadyv/bellhop/internal/adapters/notification"
	"github.com/arkadyv/bellhop/internal/adapters/sound"
	"github.com/arkadyv/bellhop/internal/adapters/storage"
	"github.com/arkadyv/bellhop/internal/adapters/suncalc"
	"github.com/arkadyv/bellhop/internal/config"
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/engine"
	"github.com/arkadyv/bellhop/internal/ports"
	"github.com/arkadyv/bellhop/internal/store"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath     string
	jsonOutput bool

	// Global dependencies
	appConfig    *config.Config
	stateStore   ports.StateStore
	sessionStore *store.Store
	notifier     *notification.Notifier
	audio        ports.AudioEffect
	sunProvider  ports.SunTimeProvider
	eng          *engine.Engine
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bellhop",
	Short: "Bellhop - timers, reminders, and pomodoro cycles from your terminal",
	Long: `Bellhop schedules countdown timers, date-time reminders, and pomodoro
work/break cycles, rings them with synthesized alarm sounds, and keeps a
log of what completed.

Run "bellhop watch" to open the live countdown view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.bellhop/bellhop.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Bellhop\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(repeatCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(sunCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	notifier = notification.New(&appConfig.Notifications)
	sunProvider = suncalc.Provider{}

	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	stateStore, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	sessionStore = store.New(stateStore)
	if err := sessionStore.Load(); err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	history, err := sessionStore.LoadHistory()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	presets, err := sessionStore.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	// Headless environments get a silent player.
	if player, perr := sound.NewPlayer(); perr == nil {
		audio = player
	} else {
		audio = sound.Noop{}
	}

	eng = engine.New(engine.Config{
		Store:    sessionStore,
		History:  history,
		Presets:  presets,
		Audio:    audio,
		Notifier: notifier,
	})
	eng.SetSnoozeDefault(time.Duration(appConfig.Snooze.DefaultMinutes) * time.Minute)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if stateStore != nil {
		return stateStore.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// defaultSound builds the configured sound profile, optionally overridden
// by a --sound flag value.
func defaultSound(override string, volume float64) (domain.SoundProfile, error) {
	profile := domain.SoundProfile{
		Type:   domain.SoundType(appConfig.Sound.DefaultType),
		Volume: appConfig.Sound.DefaultVolume,
	}
	if override != "" {
		t := domain.SoundType(override)
		if !domain.ValidSoundType(t) || t == domain.SoundCustom {
			return profile, fmt.Errorf("unknown sound %q (expected light, strong, school, siren)", override)
		}
		profile.Type = t
	}
	if volume > 0 {
		profile.Volume = volume
	}
	return profile, nil
}
