package config

import (
	"os"
	"strings"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// Environment variable names.
const (
	EnvMetabaseAPIKey    = "METABASE_API_KEY"
	EnvMetabaseAuth      = "METABASE_AUTH_STRING"
	EnvMetabaseURL       = "METABASE_URL"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
)

// Config is the set of credentials and endpoints a run needs.
type Config struct {
	MetabaseAPIKey    string
	MetabaseAuth      string // base64 user:password for Basic auth
	MetabaseURL       string
	DiscordWebhookURL string
}

// LookupFunc reports the value of a variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// FromEnv builds a Config using lookup, or [os.LookupEnv] when lookup is nil.
// Unset or blank variables are reported together in a single MISSING_ENV
// error. URLs must be absolute http(s) URLs.
func FromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	get := func(key string) string {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		MetabaseAPIKey:    get(EnvMetabaseAPIKey),
		MetabaseAuth:      get(EnvMetabaseAuth),
		MetabaseURL:       get(EnvMetabaseURL),
		DiscordWebhookURL: get(EnvDiscordWebhookURL),
	}
	if len(missing) > 0 {
		return Config{}, errors.New(errors.ErrCodeMissingEnv,
			"missing environment variables: %s", strings.Join(missing, ", "))
	}

	if err := errors.ValidateURL(cfg.MetabaseURL); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvMetabaseURL)
	}
	if err := errors.ValidateURL(cfg.DiscordWebhookURL); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvDiscordWebhookURL)
	}
	return cfg, nil
}
