//go:build !headless

package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams mono float32 PCM to the default sound device.
// oto allows one context per process, so create a single Player.
type Player struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	started bool
}

// NewPlayer opens the sound device at sampleRate.
func NewPlayer(sampleRate int, bufferSize time.Duration) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Start begins pulling from src, which must yield float32 LE mono samples.
func (p *Player) Start(src io.Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.player = p.ctx.NewPlayer(src)
	p.player.Play()
	p.started = true
}

// IsPlaying reports whether audio is being pulled.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && p.player.IsPlaying()
}

// Err returns the error the source returned, if playback stopped on one.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	return p.player.Err()
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	return err
}
