package cfg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
)

// EnvGithubWebhookSecret is the name of the environment variable that
// overwrites the github_webhook_secret config option when it is not empty.
const EnvGithubWebhookSecret = "GITHUB_WEBHOOK_SECRET"

// DefaultMaxBodySize is the default for max_body_size, it is the payload
// size limit of GitHub.
const DefaultMaxBodySize = 25 * 1024 * 1024

// MaxMaxBodySize is the largest accepted value for max_body_size.
const MaxMaxBodySize = 1024 * 1024 * 1024

type Config struct {
	HTTPListenAddr            string `toml:"http_server_listen_addr"`
	HTTPSListenAddr           string `toml:"https_server_listen_addr"`
	HTTPSCertFile             string `toml:"https_ssl_cert_file"`
	HTTPSKeyFile              string `toml:"https_ssl_key_file"`
	HTTPGithubWebhookEndpoint string `toml:"github_webhook_endpoint"`
	GithubWebHookSecret       string `toml:"github_webhook_secret"`
	MaxBodySize               int64  `toml:"max_body_size"`
	HTTPHealthEndpoint        string `toml:"health_endpoint"`
	HTTPPingEndpoint          string `toml:"ping_endpoint"`
	HTTPMetricsEndpoint       string `toml:"metrics_endpoint"`
	LogFormat                 string `toml:"log_format"`
	LogTimeKey                string `toml:"log_time_key"`
	LogLevel                  string `toml:"log_level"`
}

// Default returns a Config with the default settings.
func Default() *Config {
	return &Config{
		HTTPListenAddr:            ":8085",
		HTTPGithubWebhookEndpoint: "/webhook",
		MaxBodySize:               DefaultMaxBodySize,
		HTTPHealthEndpoint:        "/health",
		HTTPPingEndpoint:          "/ping",
		HTTPMetricsEndpoint:       "/metrics",
		LogFormat:                 "logfmt",
		LogTimeKey:                "time_iso8601",
		LogLevel:                  "info",
	}
}

// Load reads a TOML configuration from reader.
// Options that are not set in the configuration have their default value.
// The webhook secret is overwritten by the value of the
// EnvGithubWebhookSecret environment variable if it is not empty.
func Load(reader io.Reader) (*Config, error) {
	result := Default()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, result); err != nil {
		return nil, err
	}

	if secret := os.Getenv(EnvGithubWebhookSecret); secret != "" {
		result.GithubWebHookSecret = secret
	}

	if err := result.validate(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Config) validate() error {
	if r.HTTPListenAddr == "" && r.HTTPSListenAddr == "" {
		return fmt.Errorf("http_server_listen_addr or https_server_listen_addr must be set")
	}

	if r.HTTPSListenAddr != "" && (r.HTTPSCertFile == "" || r.HTTPSKeyFile == "") {
		return fmt.Errorf("https_ssl_cert_file and https_ssl_key_file must be set when https_server_listen_addr is set")
	}

	if r.MaxBodySize <= 0 {
		return fmt.Errorf("max_body_size must be positive, is: %d", r.MaxBodySize)
	}

	if r.MaxBodySize > MaxMaxBodySize {
		return fmt.Errorf("max_body_size must not be bigger than %d, is: %d", MaxMaxBodySize, r.MaxBodySize)
	}

	for name, endpoint := range map[string]string{
		"github_webhook_endpoint": r.HTTPGithubWebhookEndpoint,
		"health_endpoint":         r.HTTPHealthEndpoint,
		"ping_endpoint":           r.HTTPPingEndpoint,
		"metrics_endpoint":        r.HTTPMetricsEndpoint,
	} {
		if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s must start with a '/', is: %q", name, endpoint)
		}
	}

	if r.HTTPGithubWebhookEndpoint == "" {
		return fmt.Errorf("github_webhook_endpoint must be set")
	}

	return nil
}

func (r *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(r)
}
