package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RestConfig holds the settings of the REST API application
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,number"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	RSA      RSASettings      `mapstructure:"rsa"`
}

// Validate checks the RestConfig and all nested settings
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Port, "required,number"); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.RSA.Validate()
}

// InitializeRestConfig reads the YAML file at path, applies TOY_RSA_ prefixed
// environment overrides (e.g. TOY_RSA_DATABASE_DSN) and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("TOY_RSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setRestDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	rsa := DefaultRSASettings()
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "toy-rsa.db")
	v.SetDefault("rsa.p", rsa.P)
	v.SetDefault("rsa.q", rsa.Q)
	v.SetDefault("rsa.public_exponent", rsa.PublicExponent)
	v.SetDefault("rsa.codec", rsa.Codec)
}
