package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/poolkit/pkg/poolerrors"
)

// Load reads a YAML configuration file into cfg, substituting ${ENV_VAR}
// references first, then overlaying environment variables with the
// POOLBENCH_ prefix (POOLBENCH_POOL_CAPACITY overrides pool.capacity).
// An empty path loads defaults plus the environment overlay.
func Load(filePath string, cfg *Config) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("POOLBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindDefaults(v, Default()); err != nil {
		return err
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is provided by the operator
		if err != nil {
			return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", filePath)
		}
		content := substituteEnvVars(string(data))
		if err := v.ReadConfig(strings.NewReader(content)); err != nil {
			return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "failed to parse YAML").
				WithDetail("path", filePath)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "failed to decode configuration")
	}
	return nil
}

// Save writes a configuration to a YAML file.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "failed to marshal YAML")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "failed to write config file").
			WithDetail("path", filePath)
	}
	return nil
}

// bindDefaults seeds viper with the default configuration so keys absent
// from the file and environment resolve to sensible values.
func bindDefaults(v *viper.Viper, def *Config) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return poolerrors.Wrap(err, poolerrors.ErrorTypeInternal, "failed to encode defaults")
	}
	if err := v.MergeConfig(strings.NewReader(string(data))); err != nil {
		return poolerrors.Wrap(err, poolerrors.ErrorTypeInternal, "failed to seed defaults")
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
