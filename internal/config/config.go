package config

import "time"

// Config holds runtime settings for the libmatch client.
//
// Fields:
//   - RemoteDSN: Postgres DSN of the remote store; empty means unconfigured,
//     in which case every operation falls back to local storage.
//   - LocalDSN: path/DSN of the local SQLite key-value database.
//   - SessionSecret: HMAC key for session tokens.
//   - SessionMaxAge: how long a session stays valid without a new login.
//   - S3*: object-storage settings for photo uploads.
type Config struct {
	RemoteDSN     string
	LocalDSN      string
	SessionSecret string
	SessionMaxAge time.Duration

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with development defaults. The session secret
// default is for development only and must be overridden in any real
// deployment.
func (c *Config) LoadDefaults() {
	c.RemoteDSN = ""
	c.LocalDSN = "libmatch.db"
	c.SessionSecret = "lib-match-dev-secret"
	c.SessionMaxAge = 24 * time.Hour
	c.S3Region = "us-east-1"
	c.S3Bucket = "libmatch-photos"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
