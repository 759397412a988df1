package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/anim"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), config)
	assert.Equal(t, defaultStepInterval, config.Interval())
}

func TestLoadConfig_Values(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
save_directory: ~/frames
log_level: debug
step_interval: 250ms
show_english: false
show_code: true
verify_replay: true
default_algorithm: treemap
`)
	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "frames"), config.SaveDirectory)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 250*time.Millisecond, config.Interval())
	assert.True(t, config.VerifyReplay)
	assert.Equal(t, "treemap", config.DefaultAlgorithm)
	assert.Equal(t, []int{anim.LayerDefault, anim.LayerAnnotation, anim.LayerCode}, config.Layers())
	assert.Equal(t, filepath.Join(home, "frames", "a.png"), config.GetSavePath("a.png"))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "step_interval: soon\n"))
	assert.ErrorContains(t, err, "step_interval")

	_, err = loadConfig(writeConfig(t, "show_code: [1, 2\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestConfig_Interval(t *testing.T) {
	config := defaultConfig()
	config.StepInterval = "1ms"
	assert.Equal(t, defaultStepInterval, config.Interval())
	config.StepInterval = "2s"
	assert.Equal(t, 2*time.Second, config.Interval())
}

func TestConfig_Layers(t *testing.T) {
	config := defaultConfig()
	assert.Equal(t, []int{anim.LayerDefault, anim.LayerAnnotation, anim.LayerEnglish}, config.Layers())
	config.ShowCode = true
	assert.Equal(t, []int{anim.LayerDefault, anim.LayerAnnotation, anim.LayerEnglish, anim.LayerCode}, config.Layers())
}

func TestNewLogger(t *testing.T) {
	config := defaultConfig()
	logger, closer, err := newLogger(config)
	require.NoError(t, err)
	logger.Info("discarded")
	require.NoError(t, closer.Close())

	config.LogDir = t.TempDir()
	logger, closer, err = newLogger(config)
	require.NoError(t, err)
	logger.Info("written", "key", "value")
	require.NoError(t, closer.Close())

	entries, err := os.ReadDir(config.LogDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(config.LogDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("Debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}
