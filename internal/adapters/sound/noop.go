package sound

import (
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
)

// Noop is the silent fallback used when no audio device is available.
type Noop struct{}

var _ ports.AudioEffect = Noop{}

func (Noop) Play(domain.SoundType, float64) error { return nil }
func (Noop) PlayClip([]byte, float64) error       { return nil }
