package audio

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Built-in alarm tone parameters.
const (
	ToneFrequency  = 880.0
	ToneLength     = 2 * time.Second
	TonePulseEvery = 500 * time.Millisecond
	TonePulseOn    = 100 * time.Millisecond
	ToneAmplitude  = 20000.0 / 32768.0
)

// ToneFormat is the PCM layout of the built-in tone: 16-bit mono at 44.1 kHz.
var ToneFormat = beep.Format{
	SampleRate:  44100,
	NumChannels: 1,
	Precision:   2,
}

// toneSample returns the tone's value at sample index i.
func toneSample(i int) float64 {
	rate := float64(ToneFormat.SampleRate)
	t := float64(i) / rate
	pulse := math.Mod(t, TonePulseEvery.Seconds())
	if pulse >= TonePulseOn.Seconds() {
		return 0
	}
	return ToneAmplitude * math.Sin(2*math.Pi*ToneFrequency*t)
}

// toneStreamer streams one pass of the built-in tone.
func toneStreamer() beep.Streamer {
	total := ToneFormat.SampleRate.N(ToneLength)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for n = 0; n < len(samples) && pos < total; n++ {
			v := toneSample(pos)
			samples[n][0] = v
			samples[n][1] = v
			pos++
		}
		return n, true
	})
}

// WriteTone encodes the built-in tone as a WAV file at path.
func WriteTone(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tone file: %w", err)
	}

	if err := wav.Encode(f, toneStreamer(), ToneFormat); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode tone: %w", err)
	}

	return f.Close()
}
