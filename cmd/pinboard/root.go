package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/pinboard/internal/app"
	"github.com/marcus/pinboard/internal/config"
	"github.com/marcus/pinboard/internal/kv"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/state"
	"github.com/marcus/pinboard/internal/styles"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	configPath  string
	debug       bool
	storagePath string
	ephemeral   bool

	logger *slog.Logger
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "pinboard",
		Short: "Sticky notes for your terminal",
		Long: `Pinboard keeps a prioritized list of sticky notes.
Run without arguments to open the board, or use the subcommands for scripting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.level()}))
			slog.SetDefault(c.logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoard(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to config file")
	flags.BoolVar(&c.debug, "debug", false, "enable debug logging")
	flags.StringVar(&c.storagePath, "storage", "", "override the storage path")
	flags.BoolVar(&c.ephemeral, "ephemeral", false, "keep notes in memory only")

	root.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newEditCmd(c),
		newToggleCmd(c),
		newDeleteCmd(c),
		newExportCmd(c),
		newLogoutCmd(c),
		newVersionCmd(),
		newConfigCmd(c),
	)
	return root
}

func (c *cli) level() slog.Level {
	if c.debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// loadConfig loads the config file and applies flag overrides.
func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.storagePath != "" {
		cfg.Storage.Path = config.ExpandPath(c.storagePath)
	}
	if c.ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}
	return cfg, nil
}

// openKV opens the configured storage backend.
func (c *cli) openKV(cfg *config.Config) (kv.Store, error) {
	store, err := kv.Open(kv.Options{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Driver:  cfg.Storage.Driver,
		Logger:  c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if f, ok := store.(*kv.File); ok {
		f.SetDebounce(cfg.Storage.WatchDebounce)
	}
	c.logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	return store, nil
}

// session bundles what a subcommand works with. Close releases the storage.
type session struct {
	cfg   *config.Config
	kv    kv.Store
	notes *notes.Store
}

func (s *session) Close() error { return s.kv.Close() }

// openSession loads config, opens storage and rehydrates the note store.
// Unreadable saved notes are reported and the store starts empty.
func (c *cli) openSession() (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := c.openKV(cfg)
	if err != nil {
		return nil, err
	}
	ns := notes.New(store,
		notes.WithKey(cfg.Storage.Key),
		notes.WithDateFormat(cfg.Notes.DateFormat),
		notes.WithLogger(c.logger),
	)
	if err := ns.Rehydrate(); err != nil {
		c.logger.Warn("saved notes were unreadable, starting empty", "error", err)
	}
	return &session{cfg: cfg, kv: store, notes: ns}, nil
}

// runBoard runs the TUI. Logs go to a file since the TUI owns the terminal.
func (c *cli) runBoard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	c.logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: c.level()}))
	slog.SetDefault(c.logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyColors(cfg.UI.Colors, c.logger)

	// Preferences are optional
	if err := state.Init(config.StateDir()); err != nil {
		c.logger.Warn("load ui state", "error", err)
	}

	store, err := c.openKV(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	model := app.New(ctx, app.Options{Config: cfg, KV: store, Logger: c.logger})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	if m, ok := final.(app.Model); ok && m.LoggedOut() {
		fmt.Println("Logged out.")
	}
	return nil
}

func openLogFile() (*os.File, error) {
	dir := config.StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "pinboard.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// applyColors installs the configured priority colors. Invalid colors keep
// the defaults.
func applyColors(colors config.ColorsConfig, logger *slog.Logger) {
	for priority, hex := range map[string]string{
		"high":   colors.High,
		"medium": colors.Medium,
		"low":    colors.Low,
	} {
		if hex == "" {
			continue
		}
		if err := styles.SetPriorityColor(priority, hex); err != nil {
			logger.Warn("ignoring priority color", "error", err)
		}
	}
}
