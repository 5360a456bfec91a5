package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/paths"
	"github.com/Norgate-AV/scriptbin/internal/script"
)

// Default configuration values
const (
	DefaultVerbose = false
	DefaultTrace   = false

	// EnvPrefix prefixes environment overrides, e.g. SCRIPTBIN_HOME
	EnvPrefix = "SCRIPTBIN"
)

// Holds the configuration options for scriptbin
type Config struct {
	// Application directory holding config, bin/ and hash/
	AppDir string

	// Root of the per-script scratch directories
	TmpDir string

	// Path of the config file the scripts were read from
	ConfigFile string

	// Build tool executables by build-type
	Tools map[string]string

	// Registered scripts in config order
	Scripts []script.Entry

	// Enable verbose output
	Verbose bool

	// Print root cause stack traces on failure
	Trace bool
}

// rawScript mirrors one [[scripts]] table
type rawScript struct {
	Name      string   `mapstructure:"name"`
	Path      string   `mapstructure:"path"`
	BuildType string   `mapstructure:"build-type"`
	BuildOpts []string `mapstructure:"build-opts"`
	BuildDeps []string `mapstructure:"build-deps"`
}

// Load builds a Config from the current viper state
func Load() (*Config, error) {
	cfg := &Config{
		AppDir:     viper.GetString("app_dir"),
		TmpDir:     viper.GetString("tmp_dir"),
		ConfigFile: viper.ConfigFileUsed(),
		Tools:      viper.GetStringMapString("tools"),
		Verbose:    viper.GetBool("verbose"),
		Trace:      viper.GetBool("trace"),
	}

	if cfg.TmpDir == "" {
		cfg.TmpDir = paths.DefaultTmpDir()
	}

	var raws []rawScript
	if err := viper.UnmarshalKey("scripts", &raws); err != nil {
		return nil, errs.Wrap(err, errs.Config, "invalid scripts table")
	}

	base := ""
	if cfg.ConfigFile != "" {
		base = filepath.Dir(cfg.ConfigFile)
	}

	for i, raw := range raws {
		entry, err := raw.entry(base)
		if err != nil {
			return nil, errs.Wrapf(err, "script #%d", i+1)
		}

		cfg.Scripts = append(cfg.Scripts, entry)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (r rawScript) entry(base string) (script.Entry, error) {
	if r.Name == "" {
		return script.Entry{}, errs.New(errs.Config, "missing name")
	}

	if r.Path == "" {
		return script.Entry{}, errs.Errorf(errs.Config, "%s: missing path", r.Name)
	}

	if r.BuildType == "" {
		return script.Entry{}, errs.Errorf(errs.Config, "%s: missing build-type", r.Name)
	}

	kind, err := script.ParseBuildKind(r.BuildType)
	if err != nil {
		return script.Entry{}, errs.Wrapf(err, "%s", r.Name)
	}

	path := r.Path
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}

	return script.Entry{
		Name:         r.Name,
		Path:         path,
		BuildKind:    kind,
		BuildOptions: nonNil(r.BuildOpts),
		BuildDeps:    nonNil(r.BuildDeps),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

func (c *Config) Validate() error {
	if c.AppDir == "" {
		return errs.New(errs.Config, "application directory not set")
	}

	if abs, err := filepath.Abs(c.AppDir); err == nil {
		c.AppDir = abs
	}

	if abs, err := filepath.Abs(c.TmpDir); err == nil {
		c.TmpDir = abs
	}

	for _, entry := range c.Scripts {
		if entry.Name != filepath.Base(entry.Name) || entry.Name == "." || entry.Name == ".." {
			return errs.Errorf(errs.Config, "invalid script name: %q", entry.Name)
		}
	}

	return nil
}

// Layout returns the directory layout described by the config
func (c *Config) Layout() paths.Layout {
	return paths.New(c.AppDir, c.TmpDir)
}
