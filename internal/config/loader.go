package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/paths"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForCommand resolves the application directory from flags, environment
// and defaults, creates the directory layout, then reads the script registry
func (l *Loader) LoadForCommand(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.bindEnv()
	l.bindCommandFlags(cmd)

	appDir := viper.GetString("app_dir")
	if appDir == "" {
		return nil, errs.New(errs.Config, "application directory not set")
	}

	tmpDir := viper.GetString("tmp_dir")
	if err := paths.New(appDir, tmpDir).Init(); err != nil {
		return nil, err
	}

	if err := l.loadConfigFile(appDir); err != nil {
		return nil, err
	}

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	if appDir, err := paths.DefaultAppDir(); err == nil {
		viper.SetDefault("app_dir", appDir)
	}

	viper.SetDefault("tmp_dir", paths.DefaultTmpDir())
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("trace", DefaultTrace)
}

// bindEnv binds SCRIPTBIN_HOME and SCRIPTBIN_TMP
func (l *Loader) bindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	_ = viper.BindEnv("app_dir", EnvPrefix+"_HOME")
	_ = viper.BindEnv("tmp_dir", EnvPrefix+"_TMP")
}

// loadConfigFile reads config.<ext> from the application directory
func (l *Loader) loadConfigFile(appDir string) error {
	path := FindConfig(appDir)
	if path == "" {
		return errs.Errorf(errs.Config, "unable to find config.toml in %s", appDir)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errs.Wrap(err, errs.Config, "invalid config "+path)
	}

	return nil
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	_ = viper.BindPFlag("app_dir", cmd.Flags().Lookup("app-dir"))
	_ = viper.BindPFlag("tmp_dir", cmd.Flags().Lookup("tmp-dir"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("trace", cmd.Flags().Lookup("trace"))
}
