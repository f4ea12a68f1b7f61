package audio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoDevice adapts an oto context to Device. The ready channel closes once
// the platform starts producing sound; in browsers that needs a user gesture.
type otoDevice struct {
	ctx        *oto.Context
	ready      chan struct{}
	sampleRate int

	mu     sync.Mutex
	player *oto.Player
	volume float64
}

func newOtoContext(sampleRate int) (*otoDevice, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &otoDevice{ctx: ctx, ready: ready, sampleRate: sampleRate, volume: 1}, nil
}

func (d *otoDevice) Start(src io.Reader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return
	}
	p := d.ctx.NewPlayer(src)
	// keep ~10ms buffered so button presses sound immediately
	p.SetBufferSize(d.sampleRate / 100 * 2)
	p.SetVolume(d.volume)
	p.Play()
	d.player = p
}

func (d *otoDevice) Suspended() bool {
	select {
	case <-d.ready:
		return false
	default:
		return true
	}
}

// Resume asks the platform to resume output and waits for the ready signal.
func (d *otoDevice) Resume(ctx context.Context) error {
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("resume audio context: %w", err)
	}
	select {
	case <-d.ready:
		return d.ctx.Err()
	case <-ctx.Done():
		return fmt.Errorf("waiting for audio context: %w", ctx.Err())
	}
}

func (d *otoDevice) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = v
	if d.player != nil {
		d.player.SetVolume(v)
	}
}
