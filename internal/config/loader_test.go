package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

const sampleConfig = `
[[scripts]]
name = "foo"
path = "/src/foo.rs"
build-type = "rustc"
`

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_SetupViperDefaults(t *testing.T) {
	viper.Reset()
	loader := NewLoader()
	loader.setupViperDefaults()

	assert.NotEmpty(t, viper.GetString("app_dir"))
	assert.Equal(t, filepath.Join(os.TempDir(), "scriptbin"), viper.GetString("tmp_dir"))
	assert.Equal(t, false, viper.GetBool("verbose"))
	assert.Equal(t, false, viper.GetBool("trace"))
}

func TestLoader_LoadForCommand_FromEnv(t *testing.T) {
	viper.Reset()

	root := t.TempDir()
	appDir := filepath.Join(root, "app")
	tmpDir := filepath.Join(root, "tmp")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(sampleConfig), 0o644))

	t.Setenv("SCRIPTBIN_HOME", appDir)
	t.Setenv("SCRIPTBIN_TMP", tmpDir)

	cfg, err := NewLoader().LoadForCommand(nil)
	require.NoError(t, err)

	assert.Equal(t, appDir, cfg.AppDir)
	assert.Equal(t, tmpDir, cfg.TmpDir)
	require.Len(t, cfg.Scripts, 1)
	assert.Equal(t, "foo", cfg.Scripts[0].Name)

	// layout was bootstrapped
	for _, dir := range []string{filepath.Join(appDir, "bin"), filepath.Join(appDir, "hash"), tmpDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestLoader_LoadForCommand_FlagsOverrideEnv(t *testing.T) {
	viper.Reset()

	root := t.TempDir()
	appDir := filepath.Join(root, "flagged")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("scripts:\n  - name: bar\n    path: /src/bar.hs\n    build-type: ghc\n"), 0o644))

	t.Setenv("SCRIPTBIN_HOME", filepath.Join(root, "from-env"))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("app-dir", "", "")
	cmd.Flags().String("tmp-dir", "", "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().Bool("trace", false, "")
	require.NoError(t, cmd.Flags().Set("app-dir", appDir))
	require.NoError(t, cmd.Flags().Set("tmp-dir", filepath.Join(root, "tmp")))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	cfg, err := NewLoader().LoadForCommand(cmd)
	require.NoError(t, err)

	assert.Equal(t, appDir, cfg.AppDir)
	assert.True(t, cfg.Verbose)
	require.Len(t, cfg.Scripts, 1)
	assert.Equal(t, "bar", cfg.Scripts[0].Name)
}

func TestLoader_LoadForCommand_MissingConfig(t *testing.T) {
	viper.Reset()

	appDir := filepath.Join(t.TempDir(), "app")
	t.Setenv("SCRIPTBIN_HOME", appDir)
	t.Setenv("SCRIPTBIN_TMP", filepath.Join(t.TempDir(), "tmp"))

	_, err := NewLoader().LoadForCommand(nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Config))
	assert.Contains(t, err.Error(), "unable to find config.toml in "+appDir)

	// the app dir is created so the user knows where the config goes
	_, statErr := os.Stat(appDir)
	assert.NoError(t, statErr)
}

func TestLoader_LoadForCommand_MalformedConfig(t *testing.T) {
	viper.Reset()

	appDir := t.TempDir()
	path := filepath.Join(appDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[scripts]\nname = "), 0o644))

	t.Setenv("SCRIPTBIN_HOME", appDir)
	t.Setenv("SCRIPTBIN_TMP", filepath.Join(t.TempDir(), "tmp"))

	_, err := NewLoader().LoadForCommand(nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Config))
	assert.Contains(t, err.Error(), "invalid config "+path)
}
