package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ingyamilmolinar/answersound/core/feedback"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play correct|incorrect",
	Short: "Play a feedback sound without opening a window",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Int("repeat", 1, "number of times to play the sound")
	playCmd.Flags().Duration("gap", 50*time.Millisecond, "delay between repeats")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	event, err := feedback.ParseEvent(args[0])
	if err != nil {
		return err
	}
	repeat, _ := cmd.Flags().GetInt("repeat")
	gap, _ := cmd.Flags().GetDuration("gap")
	if repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
	}

	a := newApp(cfg)
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if !a.session.EnsureReady(ctx) {
		return errors.New("no audio output available")
	}

	pattern, _ := feedback.PatternFor(event)
	for i := 0; i < repeat; i++ {
		if i > 0 {
			time.Sleep(gap)
		}
		a.synth.Play(ctx, event)
	}
	// let the last burst ring out before the process exits
	time.Sleep(time.Duration(pattern.Length()*float64(time.Second)) + 100*time.Millisecond)
	logger.Debugf("[PLAY] %v x%d done", event, repeat)
	return nil
}
