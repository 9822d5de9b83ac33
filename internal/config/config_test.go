package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceexam/qconv/internal/corpus"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("base-dir", ".", "")
	fs.String("output", DefaultOutput, "")
	fs.Int("start-id", 1000, "")
	fs.Bool("dry-run", false, "")
	return fs
}

// inTempDir runs the test from an empty directory so no qconv.yaml is found.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, 1000, cfg.StartID)
	assert.Equal(t, 1000, cfg.ProtectedBelow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qconv.yaml"), []byte("base_dir: from-file\nstart_id: 2000\nlog_level: debug\n"), 0o644))
	t.Setenv("QCONV_START_ID", "3000")
	t.Setenv("QCONV_PROTECTED_BELOW", "500")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--start-id", "4000"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.BaseDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4000, cfg.StartID)
	assert.Equal(t, 500, cfg.ProtectedBelow)
	assert.Equal(t, "qconv.yaml", filepath.Base(cfg.File))
}

func TestLoad_UnsetFlagsDoNotMaskEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("QCONV_DRY_RUN", "true")

	cfg, err := Load("", testFlags())
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := inTempDir(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Output: "out.json", StartID: 10, ProtectedBelow: 1000, LogLevel: "info"}
	assert.ErrorIs(t, cfg.Validate(), corpus.ErrBadStartID)

	cfg = &Config{Output: "out.json", StartID: 1000, ProtectedBelow: 1000, LogLevel: "loud"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Output: " ", StartID: 1000, ProtectedBelow: 1000, LogLevel: "warn"}
	assert.Error(t, cfg.Validate())
}

func TestOutputPath(t *testing.T) {
	cfg := &Config{BaseDir: "/data", Output: DefaultOutput}
	assert.Equal(t, "/data/flutter_app/assets/questions.json", cfg.OutputPath())

	cfg.Output = "/abs/q.json"
	assert.Equal(t, "/abs/q.json", cfg.OutputPath())
}

func TestAssembler(t *testing.T) {
	cfg := &Config{BaseDir: "src", StartID: 1200, ProtectedBelow: 1000}
	ac := cfg.Assembler()
	assert.Equal(t, "src", ac.BaseDir)
	assert.Equal(t, 1200, ac.StartID)
	assert.Equal(t, 1000, ac.ProtectedBelow)
	assert.Len(t, ac.Validators, 2)
}
