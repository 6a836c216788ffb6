// Package sound synthesizes and plays the built-in alarm bursts and
// user-supplied WAV clips via oto.
package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
)

const (
	sampleRate   = 44100
	channelCount = 1
)

// Player implements ports.AudioEffect on the system audio device.
type Player struct {
	mu  sync.Mutex
	ctx *oto.Context
}

var _ ports.AudioEffect = (*Player)(nil)

// NewPlayer initializes the system audio context. Returns an error when
// no audio device is available.
func NewPlayer() (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Play synthesizes one burst of a built-in sound and starts it. Playback
// is asynchronous; the alarm controller re-triggers bursts on its repeat
// handle.
func (p *Player) Play(kind domain.SoundType, volume float64) error {
	var pcm []byte
	switch kind {
	case domain.SoundLight:
		pcm = lightBurst(volume)
	case domain.SoundSchool:
		pcm = schoolBellBurst(volume)
	case domain.SoundSiren:
		pcm = sirenBurst(volume)
	default:
		pcm = strongBurst(volume)
	}
	p.start(pcm)
	return nil
}

// PlayClip plays a user-supplied WAV payload once at the given volume.
// An empty payload is skipped without error.
func (p *Player) PlayClip(payload []byte, volume float64) error {
	if len(payload) == 0 {
		return nil
	}
	pcm, err := ExtractPCM(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSoundDecode, err)
	}
	p.start(scalePCM(pcm, volume))
	return nil
}

func (p *Player) start(pcm []byte) {
	p.mu.Lock()
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.mu.Unlock()

	player.Play()
	go func() {
		// Let the burst drain, then release the device handle.
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// ExtractPCM strips the WAV/RIFF framing and returns the raw 16-bit PCM
// data chunk. This is the decode step for uploaded custom sounds; an
// unusable payload surfaces here, once, at upload or first playback.
func ExtractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, fmt.Errorf("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, fmt.Errorf("data chunk not found in WAV")
}

// scalePCM applies a volume factor to 16-bit little-endian samples.
func scalePCM(pcm []byte, volume float64) []byte {
	if volume <= 0 || volume >= 1 {
		return pcm
	}
	out := make([]byte, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(pcm[i : i+2]))
		binary.LittleEndian.PutUint16(out[i:i+2], uint16(int16(float64(sample)*volume)))
	}
	return out
}
