package config

import (
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// TargetConfig is one monitored endpoint as written in the config file.
// Entries without a URL are excluded from monitoring rather than rejected,
// so a target can be parked by blanking its URL.
type TargetConfig struct {
	Name           string        `mapstructure:"name"`
	URL            string        `mapstructure:"url"`
	ExpectedStatus int           `mapstructure:"expected_status"`
	BodySubstring  string        `mapstructure:"body_substring"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Targets       []TargetConfig `mapstructure:"targets"`
	CheckURLs     string         `mapstructure:"check_urls"` // comma-separated, env-friendly target list
	Retries       int            `mapstructure:"retries"`
	Cooldown      time.Duration  `mapstructure:"cooldown"`
	Timeout       time.Duration  `mapstructure:"timeout"` // default per-target timeout
	SlowThreshold time.Duration  `mapstructure:"slow_threshold"`
	StateFile     string         `mapstructure:"state_file"`
	WebhookURL    string         `mapstructure:"webhook_url"` // empty disables delivery
	ForceReport   bool           `mapstructure:"force_report"`
	LogDir        string         `mapstructure:"log_dir"`
	StatusAddr    string         `mapstructure:"status_addr"`
}

// Load reads the optional YAML config file (target list lives there), then
// lets environment variables override every scalar. The result is an
// immutable value handed to the runner; nothing reads the environment later.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig() // absent file is fine; env and defaults carry
	}

	v.SetDefault("check_urls", "")
	v.SetDefault("retries", 2)
	v.SetDefault("cooldown", "10s")
	v.SetDefault("timeout", "10s")
	v.SetDefault("slow_threshold", "2s")
	v.SetDefault("state_file", "state/statuswatch.json")
	v.SetDefault("webhook_url", "")
	v.SetDefault("force_report", false)
	v.SetDefault("log_dir", "logs")
	v.SetDefault("status_addr", "127.0.0.1:8081")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Retries, validation.Min(0)),
		validation.Field(&c.Cooldown, validation.By(nonNegativeDuration)),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
		validation.Field(&c.SlowThreshold, validation.By(nonNegativeDuration)),
		validation.Field(&c.StateFile, validation.Required),
		validation.Field(&c.WebhookURL, is.URL),
		validation.Field(&c.Targets, validation.Each(validation.By(validateTarget))),
	)
}

func validateTarget(value interface{}) error {
	tc, ok := value.(TargetConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a TargetConfig")
	}
	if tc.URL == "" {
		return nil // parked target
	}
	return validation.ValidateStruct(&tc,
		validation.Field(&tc.URL, is.URL),
		validation.Field(&tc.ExpectedStatus, validation.Min(0), validation.Max(599)),
		validation.Field(&tc.Timeout, validation.By(nonNegativeDuration)),
	)
}

func nonNegativeDuration(value interface{}) error {
	d, ok := value.(time.Duration)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a duration")
	}
	if d < 0 {
		return validation.NewError("validation_negative_duration", "must not be negative")
	}
	return nil
}

func positiveDuration(value interface{}) error {
	d, ok := value.(time.Duration)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a duration")
	}
	if d <= 0 {
		return validation.NewError("validation_nonpositive_duration", "must be positive")
	}
	return nil
}

// MonitoredTargets flattens the configured targets into domain values:
// file-defined targets first (skipping those without a URL), then any
// CHECK_URLS entries. Missing names and timeouts fall back to defaults.
func (c *Config) MonitoredTargets() []domain.Target {
	var out []domain.Target
	for _, tc := range c.Targets {
		if tc.URL == "" {
			continue
		}
		out = append(out, domain.Target{
			Name:           nameOrHost(tc.Name, tc.URL),
			URL:            tc.URL,
			ExpectedStatus: tc.ExpectedStatus,
			BodySubstring:  tc.BodySubstring,
			Timeout:        timeoutOrDefault(tc.Timeout, c.Timeout),
		})
	}
	for _, raw := range strings.Split(c.CheckURLs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		out = append(out, domain.Target{
			Name:    nameOrHost("", raw),
			URL:     raw,
			Timeout: c.Timeout,
		})
	}
	return out
}

func nameOrHost(name, raw string) string {
	if name != "" {
		return name
	}
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return raw
}

func timeoutOrDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
