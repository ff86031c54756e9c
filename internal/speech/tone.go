package speech

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"runtime"

	"github.com/f3rmion/abc/internal/lesson"
)

const sampleRate = 22050

// Note is one pure tone.
type Note struct {
	Freq     float64 // Hz
	Duration float64 // seconds
}

// Melody returns the notes played for a feedback tone.
func Melody(tone lesson.Tone) []Note {
	if tone == lesson.ToneSuccess {
		// C5, E5, G5
		return []Note{{523.25, 0.12}, {659.25, 0.12}, {783.99, 0.24}}
	}
	return []Note{{220, 0.15}, {196, 0.25}}
}

// WriteWAV encodes the notes as 16-bit mono PCM with a short fade at each
// note boundary so consecutive notes do not click.
func WriteWAV(w io.Writer, notes []Note) error {
	var samples []int16
	for _, n := range notes {
		count := int(n.Duration * sampleRate)
		fade := min(count/10, sampleRate/100)
		for i := 0; i < count; i++ {
			amp := 0.4
			if i < fade {
				amp *= float64(i) / float64(fade)
			} else if i >= count-fade {
				amp *= float64(count-i) / float64(fade)
			}
			v := amp * math.Sin(2*math.Pi*n.Freq*float64(i)/sampleRate)
			samples = append(samples, int16(v*math.MaxInt16))
		}
	}

	dataSize := uint32(len(samples) * 2)
	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [4]byte
		Subchunk1ID   [4]byte
		Subchunk1Size uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Subchunk2ID   [4]byte
		Subchunk2Size uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

func players(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"afplay"}}
	case "windows":
		return [][]string{{"powershell", "-NoProfile", "-Command"}}
	default:
		return [][]string{{"paplay"}, {"aplay", "-q"}}
	}
}

// Player plays tones through afplay, paplay, aplay or PowerShell.
type Player struct {
	path string
	args []string
	goos string
}

// NewPlayer picks the first audio player available on this platform.
func NewPlayer() (*Player, error) {
	return newPlayer(runtime.GOOS)
}

func newPlayer(goos string) (*Player, error) {
	for _, p := range players(goos) {
		if path, err := lookPath(p[0]); err == nil {
			return &Player{path: path, args: p[1:], goos: goos}, nil
		}
	}
	return nil, fmt.Errorf("tone player: %w", ErrUnavailable)
}

// Play implements lesson.ToneSynthesizer.
func (p *Player) Play(ctx context.Context, tone lesson.Tone) error {
	f, err := os.CreateTemp("", "abc-tone-*.wav")
	if err != nil {
		return fmt.Errorf("creating tone file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := WriteWAV(f, Melody(tone)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing tone file: %w", err)
	}

	args := append([]string(nil), p.args...)
	if p.goos == "windows" {
		args = append(args, fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", f.Name()))
	} else {
		args = append(args, f.Name())
	}
	if err := exec.CommandContext(ctx, p.path, args...).Run(); err != nil {
		return fmt.Errorf("playing %s tone: %w", tone, err)
	}
	return nil
}

// Nop is a silent speech and tone backend.
type Nop struct{}

// Speak does nothing.
func (Nop) Speak(context.Context, string, string, float64) error { return nil }

// Play does nothing.
func (Nop) Play(context.Context, lesson.Tone) error { return nil }

// Bell rings the terminal bell instead of playing audio.
type Bell struct {
	W io.Writer
}

// Play writes BEL for a retry and two for a success.
func (b Bell) Play(_ context.Context, tone lesson.Tone) error {
	bell := "\a"
	if tone == lesson.ToneSuccess {
		bell = "\a\a"
	}
	_, err := io.WriteString(b.W, bell)
	return err
}
