// Package audio plays the looping finish alarm through faiface/beep.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/xvierd/doro/internal/ports"
)

// DeviceRate is the sample rate the speaker is opened at.
const DeviceRate beep.SampleRate = 44100

// ToneFileName is the file the built-in tone is written to in the temp dir.
const ToneFileName = "doro_alarm.wav"

var errNoSource = errors.New("no alarm source")

// output is where streamers end up; the speaker in production.
type output interface {
	Play(s beep.Streamer)
	Clear()
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(DeviceRate, DeviceRate.N(time.Second/10))
	})
	return speakerErr
}

// Player loops an alarm until stopped.
type Player struct {
	mu       sync.Mutex
	out      output
	rate     beep.SampleRate
	tonePath string
	playing  bool
	logger   *log.Logger
}

// Ensure Player implements ports.Alarm.
var _ ports.Alarm = (*Player)(nil)

// NewPlayer opens the audio device and writes the built-in tone. When the
// device cannot be opened the player stays silent for its whole life.
func NewPlayer(logger *log.Logger) *Player {
	p := &Player{rate: DeviceRate, logger: logger}

	if err := initSpeaker(); err != nil {
		logger.Warn("audio device unavailable, alarm disabled", "err", err)
		return p
	}
	p.out = speakerOutput{}

	tonePath := filepath.Join(os.TempDir(), ToneFileName)
	if err := WriteTone(tonePath); err != nil {
		logger.Warn("built-in alarm tone unavailable", "path", tonePath, "err", err)
	} else {
		p.tonePath = tonePath
	}

	return p
}

func newPlayer(out output, rate beep.SampleRate, tonePath string, logger *log.Logger) *Player {
	return &Player{out: out, rate: rate, tonePath: tonePath, logger: logger}
}

// Enabled reports whether an audio device is attached.
func (p *Player) Enabled() bool {
	return p.out != nil
}

// Playing reports whether an alarm is looping.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play stops current playback and loops path, or the built-in tone when
// path is empty or cannot be decoded.
func (p *Player) Play(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if p.out == nil {
		return
	}

	s, err := p.load(path)
	if err != nil {
		if path != "" {
			p.logger.Warn("alarm file unusable, using built-in tone", "path", path, "err", err)
		}
		s, err = p.load(p.tonePath)
		if err != nil {
			p.logger.Debug("no alarm to play", "err", err)
			return
		}
	}

	p.out.Play(s)
	p.playing = true
}

// Stop halts playback immediately.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if !p.playing {
		return
	}
	p.out.Clear()
	p.playing = false
}

// load decodes path into memory and returns an endless loop of it at the
// device rate.
func (p *Player) load(path string) (beep.Streamer, error) {
	if path == "" {
		return nil, errNoSource
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alarm file: %w", err)
	}
	defer func() { _ = f.Close() }()

	streamer, format, err := decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("alarm file %s is empty", filepath.Base(path))
	}

	loop := beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	if format.SampleRate == p.rate {
		return loop, nil
	}
	return beep.Resample(4, format.SampleRate, p.rate, loop), nil
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
}
