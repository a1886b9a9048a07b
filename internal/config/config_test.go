package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jobsec/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_Returns_Defaults_When_No_Config_Exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)

	want := config.Config{
		Strings:      "strings.txt",
		Labels:       "labels.txt",
		Seed:         42,
		EffectiveCwd: dir,
		StringsAbs:   filepath.Join(dir, "strings.txt"),
		LabelsAbs:    filepath.Join(dir, "labels.txt"),
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func Test_Load_Applies_Layers_In_Precedence_Order_When_All_Are_Present(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")

	writeFile(t, filepath.Join(xdg, "jobsec", "config.json"), `{"strings": "global-strings.txt", "labels": "global-labels.txt", "seed": 1}`)
	writeFile(t, filepath.Join(dir, ".jobsec.json"), `{
		// project config wins over global
		"labels": "project-labels.txt",
		"seed": 2,
	}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	assert.Equal(t, "global-strings.txt", cfg.Strings)
	assert.Equal(t, "project-labels.txt", cfg.Labels)
	assert.Equal(t, uint32(2), cfg.Seed)
	assert.Equal(t, filepath.Join(xdg, "jobsec", "config.json"), cfg.Sources.Global)
	assert.Equal(t, filepath.Join(dir, ".jobsec.json"), cfg.Sources.Project)
}

func Test_Load_Uses_Home_Config_When_XDG_Is_Unset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")

	writeFile(t, filepath.Join(home, ".config", "jobsec", "config.json"), `{"seed": 7}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, uint32(7), cfg.Seed)
	assert.Equal(t, filepath.Join(home, ".config", "jobsec", "config.json"), cfg.Sources.Global)
}

func Test_Load_Prefers_Explicit_Config_When_Config_Path_Given(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, ".jobsec.json"), `{"seed": 2}`)
	writeFile(t, filepath.Join(dir, "custom.json"), `{"seed": 3, "strings": "/abs/strings.txt"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, ConfigPath: "custom.json"})
	require.NoError(t, err)

	assert.Equal(t, uint32(3), cfg.Seed)
	assert.Equal(t, "/abs/strings.txt", cfg.StringsAbs)
	assert.Equal(t, filepath.Join(dir, "custom.json"), cfg.Sources.Project)
}

func Test_Load_Applies_Overrides_When_Flags_Set(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".jobsec.json"), `{"seed": 2, "labels": "file-labels.txt"}`)

	strs := "flag-strings.txt"
	seed := uint32(0)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		Overrides:       config.Overrides{Strings: &strs, Seed: &seed},
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-strings.txt", cfg.Strings)
	assert.Equal(t, "file-labels.txt", cfg.Labels)
	assert.Equal(t, uint32(0), cfg.Seed, "explicit zero seed should override")
}

func Test_Load_Returns_Error_When_Config_Is_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		want    error
	}{
		{name: "BadJSON", content: `{"seed": `, want: config.ErrConfigInvalid},
		{name: "NegativeSeed", content: `{"seed": -1}`, want: config.ErrConfigInvalid},
		{name: "SeedTooLarge", content: `{"seed": 4294967296}`, want: config.ErrConfigInvalid},
		{name: "EmptyStrings", content: `{"strings": ""}`, want: config.ErrStringsPathEmpty},
		{name: "EmptyLabels", content: `{"labels": ""}`, want: config.ErrLabelsPathEmpty},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".jobsec.json"), testCase.content)

			_, err := config.Load(config.LoadInput{WorkDirOverride: dir})
			require.ErrorIs(t, err, testCase.want)
			assert.ErrorIs(t, err, config.ErrConfigInvalid)
		})
	}
}

func Test_Load_Returns_Error_When_Explicit_Config_Is_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := config.Load(config.LoadInput{WorkDirOverride: dir, ConfigPath: "nope.json"})
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
	assert.Contains(t, err.Error(), "nope.json")
}

func Test_Load_Returns_Error_When_Override_Is_Empty(t *testing.T) {
	t.Parallel()

	empty := ""

	_, err := config.Load(config.LoadInput{WorkDirOverride: t.TempDir(), Overrides: config.Overrides{Labels: &empty}})
	require.ErrorIs(t, err, config.ErrLabelsPathEmpty)
}
