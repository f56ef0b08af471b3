package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel string
	OCR      OCRConfig
	Language LanguageConfig
	Output   OutputConfig
	S3       S3Config
}

// OCRConfig controls text recognition
type OCRConfig struct {
	Enabled  bool
	Language string
}

// LanguageConfig controls language detection over recognized text
type LanguageConfig struct {
	Enabled bool
}

// OutputConfig controls where the exported JSON document goes
type OutputConfig struct {
	Dir    string
	Stdout bool
}

// S3Config represents the optional S3 export target
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
		},
		Language: LanguageConfig{
			Enabled: true,
		},
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Load merges an optional config file and IMGMETA_* environment variables
// into the configuration. Values set explicitly on the command line keep
// precedence, so only keys whose flags were not changed are overridden.
func (c *Config) Load(path string, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".imgmeta")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("IMGMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	changed := func(name string) bool {
		return flags != nil && flags.Changed(name)
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) && !changed(key) {
			*dst = v.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) && !changed(key) {
			*dst = v.GetBool(key)
		}
	}

	setString("log-level", &c.LogLevel)
	setBool("ocr", &c.OCR.Enabled)
	setString("ocr-language", &c.OCR.Language)
	setBool("lang-detect", &c.Language.Enabled)
	setString("output-dir", &c.Output.Dir)
	setBool("stdout", &c.Output.Stdout)
	setString("s3-endpoint", &c.S3.Endpoint)
	setString("s3-region", &c.S3.Region)
	setString("s3-bucket", &c.S3.Bucket)
	setString("s3-access-key", &c.S3.AccessKey)
	setString("s3-secret-key", &c.S3.SecretKey)
	setBool("s3-use-ssl", &c.S3.UseSSL)
	setString("s3-prefix", &c.S3.Prefix)

	return nil
}
