package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vanish/audio"
	"github.com/lixenwraith/vanish/config"
	"github.com/lixenwraith/vanish/history"
	"github.com/lixenwraith/vanish/log"
	"github.com/lixenwraith/vanish/timer"
	"github.com/lixenwraith/vanish/ui"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal
var ErrNotTerminal = errors.New("vanish needs an interactive terminal")

type rootOptions struct {
	configPath string
	debug      bool
	mute       bool
	noHistory  bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vanish",
		Short: "Keep typing or lose it all",
		Long: `vanish is a writing sprint in your terminal.
Whatever you type stays only as long as you keep typing: pause for more than
one second and the text box is wiped. The longest streak since launch is kept
as the high score.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.mute {
				cfg.Audio.Enabled = false
			}
			if opts.noHistory {
				cfg.History.Enabled = false
			}
			opts.cfg = cfg

			return setupLogging(opts.debug, cfg.Log, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return ErrNotTerminal
			}
			return runApp(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.vanish/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to the log directory")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "disable audio cues")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not journal finished runs")

	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// runApp owns the terminal for the lifetime of the UI
func runApp(ctx context.Context, opts *rootOptions) error {
	cfg := opts.cfg
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting",
		"tick_interval", cfg.Timer.TickInterval.String(),
		"inactivity_timeout", cfg.Timer.InactivityTimeout.String(),
		"audio", cfg.Audio.Enabled,
		"history", cfg.History.Enabled,
	)

	audioCfg := audio.DefaultAudioConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	audioCfg.MasterVolume = cfg.Audio.Volume
	audioCfg.SampleRate = cfg.Audio.SampleRate

	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
	}
	defer sounds.Cleanup()

	appOpts := ui.Options{
		Timer: timer.Options{
			TickInterval: cfg.Timer.TickInterval,
			Threshold:    cfg.Timer.InactivityTimeout,
		},
		Sounds: sounds,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			log.Warn("history unavailable, runs will not be journaled", "path", cfg.History.Path, "error", err)
		} else {
			defer store.Close()
			appOpts.Journal = store
		}
	}

	// The UI owns the terminal from here on; stop mirroring warnings to stderr
	if err := setupLogging(opts.debug, cfg.Log, nil); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error("creating screen failed", "error", err)
		return err
	}
	if err := screen.Init(); err != nil {
		log.Error("initializing screen failed", "error", err)
		return err
	}
	defer screen.Fini()

	defer func() {
		if r := recover(); r != nil {
			ui.HandleCrash(screen, r)
		}
	}()

	app := ui.New(screen, appOpts)
	err = app.Run(ctx)

	log.Info("exiting", "high_score", app.Timer().HighScore())
	return err
}
