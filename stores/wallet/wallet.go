// Package wallet reads the Sui client configuration (client.yaml) that names
// the active environment, the active address and the keystore file.
package wallet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/model"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigDir overrides the default configuration directory.
	EnvConfigDir = "SUI_CONFIG_DIR"

	defaultConfigSubDir = ".sui/sui_config"
)

type KeystoreConfig struct {
	File string `mapstructure:"File" yaml:"File"`
}

type Env struct {
	Alias string `mapstructure:"alias" yaml:"alias"`
	RPC   string `mapstructure:"rpc" yaml:"rpc"`
	WS    string `mapstructure:"ws" yaml:"ws,omitempty"`
}

// Config mirrors client.yaml.
type Config struct {
	Keystore      KeystoreConfig `mapstructure:"keystore" yaml:"keystore"`
	Envs          []Env          `mapstructure:"envs" yaml:"envs"`
	ActiveEnvName string         `mapstructure:"active_env" yaml:"active_env"`
	ActiveAddr    string         `mapstructure:"active_address" yaml:"active_address"`

	path string
}

// ConfigDir resolves the Sui configuration directory: override, then $SUI_CONFIG_DIR, then ~/.sui/sui_config.
func ConfigDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigurationError("cannot determine home directory for the sui config", err)
	}

	return filepath.Join(home, defaultConfigSubDir), nil
}

// ResolvePath returns name inside dir unless name is already absolute.
func ResolvePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(dir, name)
}

// Active is a loaded client configuration together with its directory and active address.
type Active struct {
	Dir     string
	Config  *Config
	Address string
}

// LoadActive resolves the configuration directory, loads clientConfig from it
// within timeout and resolves the active address.
func LoadActive(ctx context.Context, dirOverride, clientConfig string, timeout time.Duration) (*Active, error) {
	dir, err := ConfigDir(dirOverride)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg, err := Load(ctx, ResolvePath(dir, clientConfig))
	if err != nil {
		return nil, err
	}

	addr, err := cfg.ActiveAddress()
	if err != nil {
		return nil, err
	}

	return &Active{Dir: dir, Config: cfg, Address: addr}, nil
}

// Load reads the client configuration at path. ctx bounds the whole load.
func Load(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextError("loading wallet config %s", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigurationError("wallet config %s not found", path, err)
		}

		return nil, errors.NewConfigurationError("cannot access wallet config %s", path, err)
	}

	if info.IsDir() {
		return nil, errors.NewConfigurationError("wallet config %s is a directory", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err = v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigurationError("malformed wallet config %s", path, err)
	}

	cfg := &Config{path: path}
	if err = v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigurationError("malformed wallet config %s", path, err)
	}

	if err = ctx.Err(); err != nil {
		return nil, errors.NewContextError("loading wallet config %s", path, err)
	}

	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// ActiveAddress returns the configured active address in normalized form.
func (c *Config) ActiveAddress() (string, error) {
	if c.ActiveAddr == "" {
		return "", errors.NewConfigurationError("no active address configured in %s", c.path)
	}

	addr, err := model.NormalizeAddress(c.ActiveAddr)
	if err != nil {
		return "", errors.NewConfigurationError("malformed active address in %s", c.path, err)
	}

	return addr, nil
}

// ActiveEnv returns the environment named by active_env.
func (c *Config) ActiveEnv() (Env, bool) {
	for _, env := range c.Envs {
		if env.Alias == c.ActiveEnvName {
			return env, true
		}
	}

	return Env{}, false
}

// StringYAML returns the configuration in client.yaml form.
func (c *Config) StringYAML() string {
	strYAML, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Error marshalling to YAML: %v\n", err)
	}

	return string(strYAML)
}
