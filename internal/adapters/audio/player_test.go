package audio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	played  []beep.Streamer
	cleared int
}

func (f *fakeOutput) Play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) Clear()               { f.cleared++ }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// writeClick writes a short 22.05 kHz stereo WAV.
func writeClick(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "click.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	click := beep.Take(100, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.5}
		}
		return len(samples), true
	}))
	require.NoError(t, wav.Encode(f, click, format))
	require.NoError(t, f.Close())
	return path
}

func newTestPlayer(t *testing.T) (*Player, *fakeOutput, string) {
	t.Helper()
	dir := t.TempDir()
	tone := filepath.Join(dir, ToneFileName)
	require.NoError(t, WriteTone(tone))

	out := &fakeOutput{}
	return newPlayer(out, DeviceRate, tone, quietLogger()), out, dir
}

func TestPlayer_PlayBuiltInTone(t *testing.T) {
	p, out, _ := newTestPlayer(t)

	p.Play("")
	require.Len(t, out.played, 1)
	assert.True(t, p.Playing())

	// The tone loops past its two second length.
	buf := make([][2]float64, 44100*3)
	n, ok := out.played[0].Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n)
}

func TestPlayer_PlayCustomFileLoopsAndResamples(t *testing.T) {
	p, out, dir := newTestPlayer(t)
	click := writeClick(t, dir)

	p.Play(click)
	require.Len(t, out.played, 1)

	buf := make([][2]float64, 1000)
	n, ok := out.played[0].Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 1000, n)
}

func TestPlayer_MissingFileFallsBackToTone(t *testing.T) {
	p, out, dir := newTestPlayer(t)

	p.Play(filepath.Join(dir, "nope.mp3"))
	require.Len(t, out.played, 1)
	assert.True(t, p.Playing())
}

func TestPlayer_UndecodableFileFallsBackToTone(t *testing.T) {
	p, out, dir := newTestPlayer(t)
	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not audio"), 0o644))

	p.Play(bogus)
	require.Len(t, out.played, 1)
}

func TestPlayer_PlayStopsPrevious(t *testing.T) {
	p, out, _ := newTestPlayer(t)

	p.Play("")
	p.Play("")
	assert.Len(t, out.played, 2)
	assert.Equal(t, 1, out.cleared)
}

func TestPlayer_StopIsIdempotent(t *testing.T) {
	p, out, _ := newTestPlayer(t)

	p.Stop()
	assert.Equal(t, 0, out.cleared)

	p.Play("")
	p.Stop()
	p.Stop()
	assert.Equal(t, 1, out.cleared)
	assert.False(t, p.Playing())
}

func TestPlayer_NoToneIsSilent(t *testing.T) {
	out := &fakeOutput{}
	p := newPlayer(out, DeviceRate, "", quietLogger())

	p.Play("")
	assert.Empty(t, out.played)
	assert.False(t, p.Playing())
}

func TestPlayer_InertWithoutDevice(t *testing.T) {
	p := &Player{rate: DeviceRate, logger: quietLogger()}
	assert.False(t, p.Enabled())

	p.Play("")
	p.Stop()
	assert.False(t, p.Playing())
}
