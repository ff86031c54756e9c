package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/abc/internal/lesson"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestNewSystemPicksFirstAvailable(t *testing.T) {
	tests := []struct {
		goos      string
		available []string
		want      string
	}{
		{"darwin", []string{"say"}, "say"},
		{"linux", []string{"espeak", "espeak-ng"}, "espeak-ng"},
		{"linux", []string{"espeak"}, "espeak"},
		{"linux", []string{"spd-say"}, "spd-say"},
		{"windows", []string{"powershell"}, "powershell"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.want, func(t *testing.T) {
			stubLookPath(t, tt.available...)
			s, err := newSystem(tt.goos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestNewSystemUnavailable(t *testing.T) {
	stubLookPath(t)
	_, err := newSystem("linux")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestBackendArgs(t *testing.T) {
	assert.Equal(t, []string{"-r", "157", "-v", "Thomas", "A"}, sayBackend.args("A", "fr-FR", 0.9))
	assert.Equal(t, []string{"-r", "175", "-v", "Samantha", "B"}, sayBackend.args("B", "en_US", 1))
	assert.Equal(t, []string{"-r", "175", "C"}, sayBackend.args("C", "ja-JP", 1))
	assert.Equal(t, []string{"-r", "175", "D"}, sayBackend.args("D", "", 1))
	assert.Equal(t, []string{"-s", "175", "-v", "fr", "bonjour"}, espeakArgs("bonjour", "fr-FR", 1))
	assert.Equal(t, []string{"-s", "175", "hi"}, espeakArgs("hi", "", 0))
	assert.Equal(t, []string{"-w", "-r", "-50", "-l", "en", "B"}, spdBackend.args("B", "en_US", 0.5))

	args := powershellBackend.args("l'avion", "fr", 1)
	require.Len(t, args, 3)
	assert.Contains(t, args[2], "$s.Speak('l''avion')")
	assert.Contains(t, args[2], "$s.Rate = 0;")
}

func TestLanguagePrefix(t *testing.T) {
	assert.Equal(t, "fr", languagePrefix("fr-FR"))
	assert.Equal(t, "en", languagePrefix(" EN_us "))
	assert.Equal(t, "de", languagePrefix("de"))
	assert.Equal(t, "", languagePrefix(""))
}

func TestNewPlayer(t *testing.T) {
	stubLookPath(t, "aplay")
	p, err := newPlayer("linux")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/aplay", p.path)
	assert.Equal(t, []string{"-q"}, p.args)

	stubLookPath(t)
	_, err = newPlayer("darwin")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWriteWAV(t *testing.T) {
	var buf bytes.Buffer
	notes := []Note{{440, 0.1}}
	require.NoError(t, WriteWAV(&buf, notes))

	data := buf.Bytes()
	samples := int(0.1 * sampleRate)
	require.Len(t, data, 44+samples*2)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(36+samples*2), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(sampleRate), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint32(samples*2), binary.LittleEndian.Uint32(data[40:44]))

	// Faded in from silence.
	assert.Equal(t, int16(0), int16(binary.LittleEndian.Uint16(data[44:46])))
}

func TestMelody(t *testing.T) {
	success := Melody(lesson.ToneSuccess)
	require.Len(t, success, 3)
	assert.Less(t, success[0].Freq, success[2].Freq)

	retry := Melody(lesson.ToneRetry)
	require.NotEmpty(t, retry)
	assert.Less(t, retry[0].Freq, success[0].Freq)
}

func TestNopAndBell(t *testing.T) {
	ctx := context.Background()
	var n Nop
	assert.NoError(t, n.Speak(ctx, "A", "fr", 1))
	assert.NoError(t, n.Play(ctx, lesson.ToneSuccess))

	var buf bytes.Buffer
	b := Bell{W: &buf}
	require.NoError(t, b.Play(ctx, lesson.ToneRetry))
	require.NoError(t, b.Play(ctx, lesson.ToneSuccess))
	assert.Equal(t, "\a\a\a", buf.String())
}

var (
	_ lesson.TextToSpeech    = (*System)(nil)
	_ lesson.ToneSynthesizer = (*Player)(nil)
	_ lesson.TextToSpeech    = Nop{}
	_ lesson.ToneSynthesizer = Nop{}
	_ lesson.ToneSynthesizer = Bell{}
)
