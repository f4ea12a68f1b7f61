package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/answersound/core/feedback"
	"github.com/ingyamilmolinar/answersound/internal/audio"
	"github.com/ingyamilmolinar/answersound/internal/config"
	"github.com/ingyamilmolinar/answersound/internal/input"
	game_log "github.com/ingyamilmolinar/answersound/internal/log"
	"github.com/ingyamilmolinar/answersound/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
)

var logger = game_log.New(os.Stderr, game_log.LevelInfo)

var rootCmd = &cobra.Command{
	Use:   "answersound",
	Short: "Two buttons that chime for correct and buzz softly for incorrect answers",
	Long: `answersound opens a window with a "correct" and an "incorrect" button.
Releasing a button synthesizes a short feedback sound and requests a haptic
pulse where the device supports one.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./answersound.yaml or ~/.config/answersound/answersound.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error, none")
	rootCmd.PersistentFlags().Float64("volume", 0, "master volume 0..1")
	rootCmd.Flags().Bool("no-haptics", false, "disable vibration on release")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v = config.New(cfgFile)
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		if err := v.BindPFlag("log_level", f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("volume"); f != nil && f.Changed {
		if err := v.BindPFlag("audio.volume", f); err != nil {
			return err
		}
	}
	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}
	logger.SetLevel(game_log.LevelFromString(cfg.LogLevel))
	if used := v.ConfigFileUsed(); used != "" {
		logger.Infof("[CONFIG] loaded %s", used)
	}
	return nil
}

// app is the wired audio core shared by the window and the play command.
type app struct {
	session *audio.Session
	synth   *feedback.Synthesizer
}

func newApp(c config.Config) *app {
	session := audio.NewSession(c.Audio.SampleRate, logger, audio.WithVolume(c.Audio.Volume))
	synth := feedback.NewSynthesizer(session, audio.NewToneGenerator(session), logger)
	return &app{session: session, synth: synth}
}

// watchConfig applies log level and volume edits while running.
func (a *app) watchConfig() {
	if v.ConfigFileUsed() == "" {
		return
	}
	config.Watch(v, func(c config.Config) {
		logger.SetLevel(game_log.LevelFromString(c.LogLevel))
		a.session.SetVolume(c.Audio.Volume)
		logger.Infof("[CONFIG] reloaded: log_level=%s volume=%.2f", c.LogLevel, c.Audio.Volume)
	}, func(err error) {
		logger.Warnf("[CONFIG] ignoring change: %v", err)
	})
}

func runWindow(cmd *cobra.Command, _ []string) error {
	a := newApp(cfg)
	a.watchConfig()

	var haptics input.Haptics = input.NoHaptics{}
	noHaptics, _ := cmd.Flags().GetBool("no-haptics")
	if cfg.Haptics.Enabled && !noHaptics {
		haptics = input.DeviceHaptics()
	}
	ctrl := input.NewController(context.Background(), a.synth, haptics, logger)
	g := ui.New(ctrl, logger, func() string {
		return fmt.Sprintf("audio: %v", a.session.State())
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Answer Sound")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	ctrl.Wait()
	return nil
}
