//go:build headless

package audio

import (
	"io"
	"time"
)

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails with ErrNoAudioDevice in headless builds.
func NewPlayer(sampleRate int, bufferSize time.Duration) (*Player, error) {
	return nil, ErrNoAudioDevice
}

// Start is a no-op.
func (p *Player) Start(src io.Reader) {}

// IsPlaying always reports false.
func (p *Player) IsPlaying() bool { return false }

// Err always returns nil.
func (p *Player) Err() error { return nil }

// Close is a no-op.
func (p *Player) Close() error { return nil }
