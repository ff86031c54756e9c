package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/gesture"
)

func TestParseStroke(t *testing.T) {
	want := gesture.Stroke{{X: 1, Y: 2}, {X: 3, Y: 4}}

	got, err := parseStroke([]byte(`[{"x":1,"y":2},{"x":3,"y":4}]`))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = parseStroke([]byte(`{"x":[1,3],"y":[2,4]}`))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = parseStroke([]byte(`{"x":[1,3],"y":[2]}`))
	assert.Error(t, err)

	_, err = parseStroke([]byte(`nope`))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("min_points", 25)
	viper.Set("lang", "en")
	viper.Set("no_voice", true)

	cfg := config.Default()
	applyOverrides(cfg)
	assert.Equal(t, 25, cfg.Gesture.MinTracePoints)
	assert.Equal(t, "en", cfg.Voice.Language)
	assert.False(t, cfg.Voice.Enabled)
}

func TestApplyOverridesKeepsSettings(t *testing.T) {
	t.Cleanup(viper.Reset)
	cfg := config.Default()
	want := *cfg
	applyOverrides(cfg)
	assert.Equal(t, want.Gesture, cfg.Gesture)
	assert.Equal(t, want.Voice, cfg.Voice)
}

func TestDBPath(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("config_dir", "/tmp/abc")
	assert.Equal(t, filepath.Join("/tmp/abc", "samples.db"), dbPath())

	viper.Set("db", ":memory:")
	assert.Equal(t, ":memory:", dbPath())
}

func TestInitWritesSettings(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	viper.Set("config_dir", dir)

	var out bytes.Buffer
	initCmd.SetOut(&out)
	require.NoError(t, runInit(initCmd, nil))
	assert.Contains(t, out.String(), "Created settings.yaml")

	_, err := os.Stat(filepath.Join(dir, config.SettingsFile))
	require.NoError(t, err)

	assert.Error(t, runInit(initCmd, nil), "refuses to overwrite without --force")
}

func TestRecognizeCommand(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("config_dir", t.TempDir())

	var points []byte
	points = append(points, '[')
	for i := range 20 {
		if i > 0 {
			points = append(points, ',')
		}
		points = append(points, []byte(`{"x":5,"y":`+string(rune('0'+i%10))+`}`)...)
	}
	points = append(points, ']')
	path := filepath.Join(t.TempDir(), "stroke.json")
	require.NoError(t, os.WriteFile(path, points, 0644))

	var out bytes.Buffer
	recognizeCmd.SetOut(&out)
	require.NoError(t, runRecognize(recognizeCmd, []string{"b", path}))
	assert.Equal(t, "B: no match\n", out.String())

	out.Reset()
	require.NoError(t, runRecognize(recognizeCmd, []string{"x", path}))
	assert.NotContains(t, out.String(), "too short")
}
